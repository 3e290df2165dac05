// Command router is the only synchronous consumer of the stats
// service: it republishes leaderboard and lobby requests every 5s,
// commits the responses into triple buffers, and serves the latest
// committed snapshot over HTTP (spec.md §4.6).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/islanddefense/w3g-platform/internal/config"
	"github.com/islanddefense/w3g-platform/internal/logging"
	"github.com/islanddefense/w3g-platform/internal/projection"
	"github.com/islanddefense/w3g-platform/internal/pubsub"
	"github.com/islanddefense/w3g-platform/pkg/model"
	"github.com/islanddefense/w3g-platform/pkg/rating"

	"go.uber.org/zap"
)

const (
	refreshInterval = 5 * time.Second
	leaderboardSize = 10
	requestedBotID  = 0
	httpAddr        = ":8080"
)

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
	log := logging.New(cfg.LogFilter).Named("router")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pubsub.WaitUntilReady(ctx, cfg.KafkaURIs); err != nil {
		panic(err)
	}

	leaderboardBuf := &projection.TripleBuffer[model.Leaderboard]{}
	lobbyBuf := &projection.TripleBuffer[model.Lobby]{}

	go runLeaderboardRefresh(ctx, log, cfg, leaderboardBuf)
	go runLobbyRefresh(ctx, log, cfg, lobbyBuf)

	serveHTTP(ctx, httpAddr, leaderboardBuf, lobbyBuf)
}

func runLeaderboardRefresh(ctx context.Context, log *zap.SugaredLogger, cfg config.Config, buf *projection.TripleBuffer[model.Leaderboard]) {
	producer := pubsub.NewProducer[uint32](cfg.KafkaURIs, pubsub.TopicLeaderboardRequest)
	defer producer.Close()
	consumer := pubsub.NewConsumer[leaderboardResponse](cfg.KafkaURIs, pubsub.TopicLeaderboardResponse, "router")
	defer consumer.Close()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := producer.Publish(ctx, 0, pubsub.Message[uint32]{Data: leaderboardSize}); err != nil {
			log.Errorw("publish leaderboard_request failed", "error", err)
			continue
		}

		reqCtx, cancel := context.WithTimeout(ctx, refreshInterval)
		msg, _, ack, err := consumer.Fetch(reqCtx)
		cancel()
		if err != nil {
			continue
		}
		buf.Commit(model.Leaderboard{Builders: msg.Data.Builders, Titans: msg.Data.Titans})
		_ = ack(ctx)
	}
}

func runLobbyRefresh(ctx context.Context, log *zap.SugaredLogger, cfg config.Config, buf *projection.TripleBuffer[model.Lobby]) {
	producer := pubsub.NewProducer[uint64](cfg.KafkaURIs, pubsub.TopicLobbyRequest)
	defer producer.Close()
	consumer := pubsub.NewConsumer[map[uint32]model.PlayerStats](cfg.KafkaURIs, pubsub.TopicLobbyStatsResponse, "router")
	defer consumer.Close()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := producer.Publish(ctx, requestedBotID, pubsub.Message[uint64]{Data: requestedBotID}); err != nil {
			log.Errorw("publish lobby_request failed", "error", err)
			continue
		}

		reqCtx, cancel := context.WithTimeout(ctx, refreshInterval)
		msg, _, ack, err := consumer.Fetch(reqCtx)
		cancel()
		if err != nil {
			continue
		}
		buf.Commit(lobbyFromStats(msg.Data))
		_ = ack(ctx)
	}
}

// lobbyFromStats turns the raw per-slot stats map into a Lobby
// projection, honoring the lobby worker's fixed slot-0-is-titan
// convention (see cmd/lobby).
func lobbyFromStats(slots map[uint32]model.PlayerStats) model.Lobby {
	var builders, titans []model.Player
	statsMap := make(map[string]*model.PlayerStats, len(slots))

	for slot, s := range slots {
		s := s
		name, realm := s.Player.NormalizedKey()
		statsMap[name+"@"+realm] = &s
		if slot == 0 {
			titans = append(titans, s.Player)
		} else {
			builders = append(builders, s.Player)
		}
	}

	return rating.ProjectLobby(builders, titans, statsMap)
}
