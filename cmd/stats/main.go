// Command stats owns the player-stats collection: it applies validated
// match results to ratings, answers ad-hoc stats lookups, and serves
// the leaderboard query, all over the pub/sub fabric (spec.md §4.8/§6).
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/islanddefense/w3g-platform/internal/config"
	"github.com/islanddefense/w3g-platform/internal/logging"
	"github.com/islanddefense/w3g-platform/internal/pubsub"
	"github.com/islanddefense/w3g-platform/internal/store"
	"github.com/islanddefense/w3g-platform/internal/worker"
	"github.com/islanddefense/w3g-platform/pkg/model"
	"github.com/islanddefense/w3g-platform/pkg/rating"
)

type idStatsRequest map[uint32]model.Player

type idStats map[uint32]model.PlayerStats

type leaderboardRequest uint32

type leaderboardResponse struct {
	Builders []model.LeaderboardEntry `codec:"builders"`
	Titans   []model.LeaderboardEntry `codec:"titans"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New(cfg.LogFilter).Named("stats")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pubsub.WaitUntilReady(ctx, cfg.KafkaURIs); err != nil {
		panic(err)
	}

	db, err := store.Dial(ctx, cfg.MongoHost, cfg.MongoPort, cfg.MongoDB)
	if err != nil {
		panic(err)
	}
	repo := store.NewPlayerStatsRepo(db, cfg.MongoCollection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Errorw("index creation failed", "error", err)
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); runResultLoop(ctx, log, cfg, repo) }()
	go func() { defer wg.Done(); runStatsRequestLoop(ctx, log, cfg, repo) }()
	go func() { defer wg.Done(); runLeaderboardLoop(ctx, log, cfg, repo) }()
	wg.Wait()
}

func runResultLoop(ctx context.Context, log *zap.SugaredLogger, cfg config.Config, repo *store.PlayerStatsRepo) {
	consumer := pubsub.NewConsumer[model.GameResult](cfg.KafkaURIs, pubsub.TopicResultResponse, "stats")
	defer consumer.Close()

	worker.Run(ctx, log, nil, func(ctx context.Context) (bool, error) {
		msg, key, ack, err := consumer.Fetch(ctx)
		if err != nil {
			return false, err
		}
		gameLog := logging.WithMessageKey(log, key)

		result := msg.Data
		if !result.Valid() {
			gameLog.Warnw("discarding result with an empty team")
			return true, ack(ctx)
		}

		statsMap, err := repo.Get(ctx, append(append([]model.Player{}, result.Builders...), result.Titans...))
		if err != nil {
			return true, err
		}
		rating.Update(result.Builders, result.Titans, result.Winner, statsMap)
		if err := repo.Upsert(ctx, statsMap); err != nil {
			return true, err
		}
		return true, ack(ctx)
	})
}

func runStatsRequestLoop(ctx context.Context, log *zap.SugaredLogger, cfg config.Config, repo *store.PlayerStatsRepo) {
	consumer := pubsub.NewConsumer[idStatsRequest](cfg.KafkaURIs, pubsub.TopicStatsRequest, "stats")
	defer consumer.Close()
	producer := pubsub.NewProducer[idStats](cfg.KafkaURIs, pubsub.TopicLobbyStatsResponse)
	defer producer.Close()

	worker.Run(ctx, log, nil, func(ctx context.Context) (bool, error) {
		msg, key, ack, err := consumer.Fetch(ctx)
		if err != nil {
			return false, err
		}

		ids := make([]uint32, 0, len(msg.Data))
		roster := make([]model.Player, 0, len(msg.Data))
		for id, p := range msg.Data {
			ids = append(ids, id)
			roster = append(roster, p)
		}

		statsMap, err := repo.Get(ctx, roster)
		if err != nil {
			return true, err
		}

		resp := make(idStats, len(ids))
		for i, id := range ids {
			name, realm := roster[i].NormalizedKey()
			resp[id] = *statsMap[name+"@"+realm]
		}

		topic, _, ok := pubsub.PopDestination(msg)
		if !ok {
			log.Warnw("stats request with no reply destination")
			return true, ack(ctx)
		}
		replyProducer := pubsub.NewProducer[idStats](cfg.KafkaURIs, topic)
		defer replyProducer.Close()
		if err := replyProducer.Publish(ctx, key, pubsub.Message[idStats]{Data: resp}); err != nil {
			return true, err
		}
		return true, ack(ctx)
	})
}

func runLeaderboardLoop(ctx context.Context, log *zap.SugaredLogger, cfg config.Config, repo *store.PlayerStatsRepo) {
	consumer := pubsub.NewConsumer[leaderboardRequest](cfg.KafkaURIs, pubsub.TopicLeaderboardRequest, "stats")
	defer consumer.Close()

	worker.Run(ctx, log, nil, func(ctx context.Context) (bool, error) {
		msg, key, ack, err := consumer.Fetch(ctx)
		if err != nil {
			return false, err
		}

		lb, err := repo.Leaderboard(ctx, int(msg.Data))
		if err != nil {
			return true, err
		}

		topic, _, ok := pubsub.PopDestination(msg)
		if !ok {
			topic = pubsub.TopicLeaderboardResponse
		}
		replyProducer := pubsub.NewProducer[leaderboardResponse](cfg.KafkaURIs, topic)
		defer replyProducer.Close()
		resp := leaderboardResponse{Builders: lb.Builders, Titans: lb.Titans}
		if err := replyProducer.Publish(ctx, key, pubsub.Message[leaderboardResponse]{Data: resp}); err != nil {
			return true, err
		}
		return true, ack(ctx)
	})
}
