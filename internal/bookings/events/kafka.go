package events

import (
	"context"
	"strconv"

	"classbook/pkg/kafka"
)

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher publishes booking events keyed by booking id, so every
// event for one booking lands on the same partition.
type KafkaPublisher struct {
	producer messagePublisher
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(event.BookingID, 10)).
		WithValue(event).
		WithEventType(event.Type).
		WithSource(Source).
		WithSchemaVersion(SchemaVersion).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
