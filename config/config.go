package config

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// Config carries every knob for the server and the client store. All values
// come from the environment; the defaults match a single-box deployment.
type Config struct {
	ServerAddr string `envconfig:"SERVER_ADDR" default:":3000"`

	// Remote store persistence: "file" keeps the original db.json layout,
	// "postgres" stores each collection as a jsonb document.
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"file"`
	DataFile      string `envconfig:"DATA_FILE" default:"data/db.json"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"joshem"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`

	KafkaBroker string `envconfig:"KAFKA_BROKER"`
	KafkaTopic  string `envconfig:"KAFKA_TOPIC" default:"site-updates"`

	// Client store settings.
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:3000"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"1500ms"`
	HealthInterval time.Duration `envconfig:"HEALTH_INTERVAL" default:"15s"`

	CacheDriver string `envconfig:"CACHE_DRIVER" default:"sqlite"`
	CachePath   string `envconfig:"CACHE_PATH" default:"data/cache.db"`
	RedisHost   string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort   string `envconfig:"REDIS_PORT" default:"6379"`
}

func MustLoad() Config {
	var cfg Config
	if err := envconfig.Process("joshem", &cfg); err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	return cfg
}

func MustOpenPostgres(cfg Config) *sqlx.DB {
	connStr := "host=" + cfg.DBHost + " port=" + cfg.DBPort + " user=" + cfg.DBUser +
		" password=" + cfg.DBPassword + " dbname=" + cfg.DBName + " sslmode=disable"

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	return client
}

// NewKafkaWriter returns nil when no broker is configured; callers treat a
// nil publisher as "events disabled".
func NewKafkaWriter(cfg Config) *kafka.Writer {
	if cfg.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
}
