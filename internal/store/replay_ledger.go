package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/islanddefense/w3g-platform/pkg/errs"
)

// LedgerEntry records one replay id's ingest progress, surviving
// downloader restarts (spec.md §4.4/§6).
type LedgerEntry struct {
	GameID           int64 `bson:"game_id"`
	WasParsed        bool  `bson:"was_parsed"`
	WasSentOverPubsub bool `bson:"was_sent_over_pubsub"`
}

// ReplayLedger is the downloader's durable record of which replay ids
// it has already seen, parsed and published.
type ReplayLedger struct {
	coll *mongo.Collection
}

// NewReplayLedger wraps the "replays" collection.
func NewReplayLedger(db *mongo.Database) *ReplayLedger {
	return &ReplayLedger{coll: db.Collection("replays")}
}

// Bounds returns the minimum and maximum game ids already recorded, or
// ok=false if the ledger is empty (a fresh deployment with nothing
// ingested yet).
func (l *ReplayLedger) Bounds(ctx context.Context) (min, max int64, ok bool, err error) {
	var lo, hi LedgerEntry

	errLo := l.coll.FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "game_id", Value: 1}})).Decode(&lo)
	if errLo == mongo.ErrNoDocuments {
		return 0, 0, false, nil
	}
	if errLo != nil {
		return 0, 0, false, errs.Storage(errLo, "read ledger min bound")
	}

	errHi := l.coll.FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "game_id", Value: -1}})).Decode(&hi)
	if errHi != nil {
		return 0, 0, false, errs.Storage(errHi, "read ledger max bound")
	}

	return lo.GameID, hi.GameID, true, nil
}

// Seen reports whether gameID has already been recorded.
func (l *ReplayLedger) Seen(ctx context.Context, gameID int64) (bool, error) {
	err := l.coll.FindOne(ctx, bson.D{{Key: "game_id", Value: gameID}}).Err()
	switch err {
	case nil:
		return true, nil
	case mongo.ErrNoDocuments:
		return false, nil
	default:
		return false, errs.Storage(err, "check ledger for game %d", gameID)
	}
}

// Record upserts the ingest state for gameID.
func (l *ReplayLedger) Record(ctx context.Context, entry LedgerEntry) error {
	_, err := l.coll.ReplaceOne(ctx,
		bson.D{{Key: "game_id", Value: entry.GameID}},
		entry,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errs.Storage(err, "record ledger entry for game %d", entry.GameID)
	}
	return nil
}
