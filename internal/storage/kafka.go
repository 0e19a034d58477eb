package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// UpdateEvent announces that a collection snapshot was replaced.
type UpdateEvent struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	Count      int       `json:"count"`
	Timestamp  time.Time `json:"timestamp"`
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishUpdate(ctx context.Context, event UpdateEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Collection),
		Value: payload,
	})
}
