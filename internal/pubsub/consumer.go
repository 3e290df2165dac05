package pubsub

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/islanddefense/w3g-platform/pkg/errs"
)

// Consumer reads envelopes for one topic as a member of a consumer
// group, sharing offsets with the rest of the group and falling back
// to the earliest offset for a group with no committed position
// (spec.md §4.5).
type Consumer[T any] struct {
	reader *kafka.Reader
}

// NewConsumer joins groupID on topic across brokers.
func NewConsumer[T any](brokers []string, topic, groupID string) *Consumer[T] {
	return &Consumer[T]{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			Topic:       topic,
			GroupID:     groupID,
			StartOffset: kafka.FirstOffset,
		}),
	}
}

// Fetch blocks until one message arrives or ctx is done. The returned
// ack must be called once the message has been fully handled; only
// then is its offset committed, giving at-least-once delivery (a crash
// between Fetch and ack redelivers the message on restart).
func (c *Consumer[T]) Fetch(ctx context.Context) (msg Message[T], key uint64, ack func(context.Context) error, err error) {
	km, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return Message[T]{}, 0, nil, errs.IO(err, "consume from %s", c.reader.Config().Topic)
	}

	ack = func(ctx context.Context) error {
		if err := c.reader.CommitMessages(ctx, km); err != nil {
			return errs.IO(err, "commit offset on %s", c.reader.Config().Topic)
		}
		return nil
	}

	msg, err = Decode[T](km.Value)
	if err != nil {
		// A malformed message shouldn't wedge the partition: ack and
		// move on, surfacing the decode error for the caller to log.
		_ = ack(ctx)
		return Message[T]{}, keyToUint64(km.Key), nil, err
	}
	return msg, keyToUint64(km.Key), ack, nil
}

// Close releases the underlying reader's connections.
func (c *Consumer[T]) Close() error {
	return c.reader.Close()
}

func keyToUint64(key []byte) uint64 {
	var v uint64
	for _, b := range key {
		v = v<<8 | uint64(b)
	}
	return v
}
