// Command outcome consumes decoded replays from id-replay-response,
// extracts the game result, and republishes it on id-result-response
// (spec.md §4.2/§6).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/islanddefense/w3g-platform/internal/config"
	"github.com/islanddefense/w3g-platform/internal/logging"
	"github.com/islanddefense/w3g-platform/internal/pubsub"
	"github.com/islanddefense/w3g-platform/internal/worker"
	"github.com/islanddefense/w3g-platform/pkg/model"
	"github.com/islanddefense/w3g-platform/pkg/outcome"
	"github.com/islanddefense/w3g-platform/pkg/w3g"
)

// replayEnvelope mirrors the id-replay-response payload: the externally
// resolved roster in display order plus the decoded replay AST.
type replayEnvelope struct {
	Players []model.Player `codec:"players"`
	Replay  *w3g.Replay    `codec:"replay"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New(cfg.LogFilter).Named("outcome")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pubsub.WaitUntilReady(ctx, cfg.KafkaURIs); err != nil {
		panic(err)
	}

	consumer := pubsub.NewConsumer[replayEnvelope](cfg.KafkaURIs, pubsub.TopicReplayResponse, "outcome")
	defer consumer.Close()
	producer := pubsub.NewProducer[model.GameResult](cfg.KafkaURIs, pubsub.TopicResultResponse)
	defer producer.Close()

	worker.Run(ctx, log, nil, func(ctx context.Context) (bool, error) {
		msg, key, ack, err := consumer.Fetch(ctx)
		if err != nil {
			return false, err
		}

		gameLog := logging.WithMessageKey(log, key)

		if msg.Data.Replay != nil && len(msg.Data.Replay.Desyncs) > 0 {
			gameLog.Warnw("replay contains desyncs", "count", len(msg.Data.Replay.Desyncs))
		}

		result, err := process(msg.Data)
		if err != nil {
			gameLog.Warnw("extract failed", "error", err)
			_ = ack(ctx)
			return true, nil
		}

		if err := producer.Publish(ctx, key, pubsub.Message[model.GameResult]{Data: result}); err != nil {
			return true, err
		}
		return true, ack(ctx)
	})
}

func process(env replayEnvelope) (model.GameResult, error) {
	bySlot, err := outcome.SlotMap(env.Replay, env.Players)
	if err != nil {
		return model.GameResult{}, err
	}
	return outcome.Extract(env.Replay, bySlot)
}
