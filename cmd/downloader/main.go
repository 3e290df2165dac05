// Command downloader walks the replay-index pages, fetches and decodes
// every new replay, and republishes the roster and decoded AST on
// id-replay-response, recording its progress in a durable ledger so a
// restart resumes instead of reprocessing (spec.md §4.4).
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/islanddefense/w3g-platform/internal/config"
	"github.com/islanddefense/w3g-platform/internal/logging"
	"github.com/islanddefense/w3g-platform/internal/pubsub"
	"github.com/islanddefense/w3g-platform/internal/scrape"
	"github.com/islanddefense/w3g-platform/internal/store"
	"github.com/islanddefense/w3g-platform/pkg/errs"
	"github.com/islanddefense/w3g-platform/pkg/model"
	"github.com/islanddefense/w3g-platform/pkg/w3g"
)

const (
	maxIndexPages   = 250
	emptyPageSleep  = 5 * time.Second
	fetchTimeout    = 30 * time.Second
)

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
	log := logging.New(cfg.LogFilter).Named("downloader")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pubsub.WaitUntilReady(ctx, cfg.KafkaURIs); err != nil {
		panic(err)
	}

	db, err := store.Dial(ctx, cfg.MongoHost, cfg.MongoPort, cfg.MongoDB)
	if err != nil {
		panic(err)
	}
	ledger := store.NewReplayLedger(db)

	scraper := scrape.NewClient(fetchTimeout)
	httpClient := &http.Client{Timeout: fetchTimeout}
	producer := pubsub.NewProducer[replayEnvelope](cfg.KafkaURIs, pubsub.TopicReplayResponse)
	defer producer.Close()

	for {
		if ctx.Err() != nil {
			return
		}
		n, err := ingestOnePass(ctx, log, cfg, scraper, httpClient, ledger, producer)
		if err != nil {
			log.Errorw("ingest pass failed", "error", err)
		}
		if n == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(emptyPageSleep):
			}
		}
	}
}

// ingestOnePass walks the index pages once, ingests every new id it
// finds, and returns how many it ingested.
func ingestOnePass(ctx context.Context, log *zap.SugaredLogger, cfg config.Config, scraper *scrape.Client, httpClient *http.Client, ledger *store.ReplayLedger, producer *pubsub.Producer[replayEnvelope]) (int, error) {
	minSeen, maxSeen, haveBounds, err := ledger.Bounds(ctx)
	if err != nil {
		return 0, err
	}

	ingested := 0
	for page := 1; page <= maxIndexPages; page++ {
		ids, err := scraper.ReplayIndexIDs(ctx, cfg.ReplayPath, page)
		if err != nil {
			log.Warnw("index page fetch failed", "page", page, "error", err)
			continue
		}

		for _, id := range ids {
			if haveBounds && id >= minSeen && id <= maxSeen {
				continue
			}
			seen, err := ledger.Seen(ctx, id)
			if err != nil {
				log.Errorw("ledger lookup failed", "game_id", id, "error", err)
				continue
			}
			if seen {
				continue
			}

			gameLog := logging.WithGameID(log, id)
			if err := ingestOne(ctx, gameLog, cfg, scraper, httpClient, ledger, producer, id); err != nil {
				gameLog.Warnw("ingest failed", "error", err)
				continue
			}
			ingested++
		}
	}
	return ingested, nil
}

func ingestOne(ctx context.Context, log *zap.SugaredLogger, cfg config.Config, scraper *scrape.Client, httpClient *http.Client, ledger *store.ReplayLedger, producer *pubsub.Producer[replayEnvelope], id int64) error {
	roster, err := scraper.GameRoster(ctx, gamePageURL(cfg.ReplayPath, id))
	if err != nil {
		return err
	}
	for i, p := range roster {
		if realm, ok := scrape.NormalizeRealm(p.Realm); ok {
			roster[i].Realm = realm
		} else if p.Realm != "" {
			log.Warnw("unrecognized realm passed through", "realm", p.Realm)
		}
	}

	data, err := fetchReplayBytes(ctx, httpClient, replayBinaryURL(cfg.ReplayPath, id))
	if err != nil {
		return err
	}

	replay, err := w3g.Decode(data)
	if err != nil {
		_ = ledger.Record(ctx, store.LedgerEntry{GameID: id, WasParsed: false, WasSentOverPubsub: false})
		return err
	}

	if err := producer.Publish(ctx, uint64(id), pubsub.Message[replayEnvelope]{
		Data: replayEnvelope{Players: roster, Replay: replay},
	}); err != nil {
		_ = ledger.Record(ctx, store.LedgerEntry{GameID: id, WasParsed: true, WasSentOverPubsub: false})
		return err
	}

	return ledger.Record(ctx, store.LedgerEntry{GameID: id, WasParsed: true, WasSentOverPubsub: true})
}

func fetchReplayBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.IO(err, "build replay request for %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errs.IO(err, "fetch replay %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errs.IO(nil, "fetch replay %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.IO(err, "read replay body from %s", url)
	}
	return data, nil
}

func gamePageURL(base string, id int64) string {
	return fmt.Sprintf("%s/game/%d", base, id)
}

func replayBinaryURL(base string, id int64) string {
	return fmt.Sprintf("%s/replay/%d.w3g", base, id)
}
