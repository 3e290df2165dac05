package pubsub

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/islanddefense/w3g-platform/pkg/errs"
)

// writeTimeout bounds every producer publish, per spec.md §5's 1s
// producer-ack timeout.
const writeTimeout = 1 * time.Second

// Producer publishes envelopes to a single topic, keyed by a big-endian
// u64 so Kafka's partitioner preserves per-key ordering (spec.md §4.5).
type Producer[T any] struct {
	writer *kafka.Writer
}

// NewProducer dials the given brokers for publishing to topic, waiting
// for an ack from one broker (spec.md §5).
func NewProducer[T any](brokers []string, topic string) *Producer[T] {
	return &Producer[T]{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: writeTimeout,
		},
	}
}

// Publish encodes and writes msg keyed by key, aborting if no broker
// acks within writeTimeout.
func (p *Producer[T]) Publish(ctx context.Context, key uint64, msg Message[T]) error {
	payload, err := Encode(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	keyBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(keyBytes, key)

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: keyBytes, Value: payload}); err != nil {
		return errs.IO(err, "publish to %s", p.writer.Topic)
	}
	return nil
}

// Close releases the underlying writer's connections.
func (p *Producer[T]) Close() error {
	return p.writer.Close()
}
