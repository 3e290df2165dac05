package pubsub

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const loopbackRetryInterval = 5 * time.Second

// WaitUntilReady publishes a self-addressed sentinel on TopicLoopback
// and waits to consume it back, proving the broker round-trip works
// before a worker's main loop begins. It retries every 5s on failure
// and never gives up; per spec.md §7 it is the caller's job to decide
// what "never ready" means for that process (the deliberate sole
// panic-on-failure exception names this call).
func WaitUntilReady(ctx context.Context, brokers []string) error {
	groupID := "loopback-" + uuid.NewString()
	producer := NewProducer[string](brokers, TopicLoopback)
	defer producer.Close()
	consumer := NewConsumer[string](brokers, TopicLoopback, groupID)
	defer consumer.Close()

	sentinel := uuid.NewString()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := probe(ctx, producer, consumer, sentinel); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(loopbackRetryInterval):
		}
	}
}

func probe(ctx context.Context, producer *Producer[string], consumer *Consumer[string], sentinel string) error {
	if err := producer.Publish(ctx, 0, Message[string]{Data: sentinel}); err != nil {
		return err
	}

	for {
		msg, _, ack, err := consumer.Fetch(ctx)
		if err != nil {
			return err
		}
		if ack != nil {
			_ = ack(ctx)
		}
		if msg.Data == sentinel {
			return nil
		}
	}
}
