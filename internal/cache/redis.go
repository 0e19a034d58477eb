package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "joshem:cache:"

// Redis backs the cache with a box-local Redis, for kiosk deployments where
// several terminals on one machine share a warm cache.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, ctx: context.Background()}
}

func (c *Redis) Get(key string) ([]byte, bool) {
	value, err := c.client.Get(c.ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *Redis) Set(key string, value []byte) error {
	return c.client.Set(c.ctx, redisKeyPrefix+key, value, 0).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}

var _ Cache = (*Redis)(nil)
