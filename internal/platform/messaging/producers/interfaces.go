package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing ledger events to the event stream
type EventPublisher interface {
	PublishEvent(ctx context.Context, event Event) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
