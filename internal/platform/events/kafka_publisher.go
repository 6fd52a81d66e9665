package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher mirrors change events to a Kafka topic for external
// integrations and audit consumers. It is an optional sink: the hub works
// without it when no brokers are configured.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher writing to the given topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ Sink = (*KafkaPublisher)(nil)

// Deliver publishes one change event, keyed by table and entity id so
// per-entity ordering is preserved within a partition.
func (p *KafkaPublisher) Deliver(ctx context.Context, event domain.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Table + ":" + event.EntityID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
