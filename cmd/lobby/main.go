// Command lobby answers id-lobby-request by scraping the live lobby
// roster for a bot and forwarding it to the stats service so the
// router can attach current ratings (spec.md §4.6/§9's "what-if" lobby
// path). It is the one place in this system that performs the
// multi-hop envelope redirect: it publishes the roster on
// id-stats-request with id-lobby-stats-response as the reply
// destination, so stats replies straight to the router.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/islanddefense/w3g-platform/internal/config"
	"github.com/islanddefense/w3g-platform/internal/logging"
	"github.com/islanddefense/w3g-platform/internal/pubsub"
	"github.com/islanddefense/w3g-platform/internal/scrape"
	"github.com/islanddefense/w3g-platform/internal/worker"
	"github.com/islanddefense/w3g-platform/pkg/model"
)

// titanSlot is the fixed lobby-slot convention this system relies on
// until roles are actually assigned at game start: the first roster
// entry returned by the lobby scrape is always the titan slot, every
// other entry is a builder. Router and lobby agree on this convention
// independently; see DESIGN.md.
const titanSlot uint32 = 0

const lobbyFetchTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New(cfg.LogFilter).Named("lobby")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pubsub.WaitUntilReady(ctx, cfg.KafkaURIs); err != nil {
		panic(err)
	}

	scraper := scrape.NewClient(lobbyFetchTimeout)
	consumer := pubsub.NewConsumer[uint64](cfg.KafkaURIs, pubsub.TopicLobbyRequest, "lobby")
	defer consumer.Close()
	producer := pubsub.NewProducer[map[uint32]model.Player](cfg.KafkaURIs, pubsub.TopicStatsRequest)
	defer producer.Close()

	worker.Run(ctx, log, nil, func(ctx context.Context) (bool, error) {
		msg, key, ack, err := consumer.Fetch(ctx)
		if err != nil {
			return false, err
		}

		botID := msg.Data
		roster, err := scraper.LobbyRoster(ctx, lobbyURL(cfg.ReplayPath, botID))
		if err != nil {
			log.Warnw("lobby scrape failed", "bot_id", botID, "error", err)
			return true, ack(ctx)
		}

		slots := make(map[uint32]model.Player, len(roster))
		for i, p := range roster {
			if realm, ok := scrape.NormalizeRealm(p.Realm); ok {
				p.Realm = realm
			} else if p.Realm != "" {
				log.Warnw("unrecognized realm passed through", "realm", p.Realm)
			}
			slots[uint32(i)] = p
		}

		out := pubsub.Message[map[uint32]model.Player]{
			Data:         slots,
			Destinations: []string{pubsub.TopicLobbyStatsResponse},
		}
		if err := producer.Publish(ctx, key, out); err != nil {
			return true, err
		}
		return true, ack(ctx)
	})
}

func lobbyURL(base string, botID uint64) string {
	return fmt.Sprintf("%s/lobby/%d", base, botID)
}
