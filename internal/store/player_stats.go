package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/islanddefense/w3g-platform/pkg/errs"
	"github.com/islanddefense/w3g-platform/pkg/model"
)

// PlayerStatsRepo persists the player-stats collection: one document
// per player, keyed by a case-insensitive match on name and an exact
// match on realm, with descending indexes on each side's rating for
// the leaderboard query (spec.md §6).
type PlayerStatsRepo struct {
	coll *mongo.Collection
}

// NewPlayerStatsRepo wraps the named collection. EnsureIndexes should
// be called once at startup.
func NewPlayerStatsRepo(db *mongo.Database, collection string) *PlayerStatsRepo {
	return &PlayerStatsRepo{coll: db.Collection(collection)}
}

// EnsureIndexes creates the two non-unique descending rating indexes
// the leaderboard query relies on.
func (r *PlayerStatsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "builder_stats.rating.mu", Value: -1}},
			Options: options.Index().SetName("builders_rating"),
		},
		{
			Keys:    bson.D{{Key: "titan_stats.rating.mu", Value: -1}},
			Options: options.Index().SetName("titans_rating"),
		},
	})
	if err != nil {
		return errs.Storage(err, "create player-stats indexes")
	}
	return nil
}

// filterFor builds the case-insensitive-name, exact-realm match the
// repo uses for both lookups and upserts.
func filterFor(p model.Player) bson.D {
	return bson.D{
		{Key: "player.name", Value: bson.D{{Key: "$regex", Value: "^" + regexp.QuoteMeta(p.Name) + "$"}, {Key: "$options", Value: "i"}}},
		{Key: "player.realm", Value: p.Realm},
	}
}

// Get resolves a roster of players to their stored stats, creating a
// default record in memory (but not persisting it) for anyone not yet
// seen.
func (r *PlayerStatsRepo) Get(ctx context.Context, players []model.Player) (map[string]*model.PlayerStats, error) {
	out := make(map[string]*model.PlayerStats, len(players))
	for _, p := range players {
		name, realm := p.NormalizedKey()
		key := name + "@" + realm

		var doc model.PlayerStats
		err := r.coll.FindOne(ctx, filterFor(p)).Decode(&doc)
		switch err {
		case nil:
			out[key] = &doc
		case mongo.ErrNoDocuments:
			fresh := model.NewPlayerStats(p)
			out[key] = &fresh
		default:
			return nil, errs.Storage(err, "lookup player stats for %s", key)
		}
	}
	return out, nil
}

// Upsert replace-one's every entry in stats into the collection, atomic
// per document (spec.md §5).
func (r *PlayerStatsRepo) Upsert(ctx context.Context, stats map[string]*model.PlayerStats) error {
	for key, s := range stats {
		_, err := r.coll.ReplaceOne(ctx, filterFor(s.Player), s, options.Replace().SetUpsert(true))
		if err != nil {
			return errs.Storage(err, "upsert player stats for %s", key)
		}
	}
	return nil
}

// Leaderboard returns the topN players per side, sorted by mu
// descending, using the indexes from EnsureIndexes.
func (r *PlayerStatsRepo) Leaderboard(ctx context.Context, topN int) (model.Leaderboard, error) {
	builders, err := r.topBySide(ctx, "builder_stats.rating.mu", topN)
	if err != nil {
		return model.Leaderboard{}, err
	}
	titans, err := r.topBySide(ctx, "titan_stats.rating.mu", topN)
	if err != nil {
		return model.Leaderboard{}, err
	}
	return model.Leaderboard{Builders: builders, Titans: titans}, nil
}

func (r *PlayerStatsRepo) topBySide(ctx context.Context, sortField string, topN int) ([]model.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}})
	if topN > 0 {
		opts.SetLimit(int64(topN))
	}

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errs.Storage(err, "query leaderboard by %s", sortField)
	}
	defer cur.Close(ctx)

	var entries []model.LeaderboardEntry
	for cur.Next(ctx) {
		var doc model.PlayerStats
		if err := cur.Decode(&doc); err != nil {
			return nil, errs.Storage(err, "decode leaderboard entry")
		}
		side := doc.BuilderStats
		if sortField == "titan_stats.rating.mu" {
			side = doc.TitanStats
		}
		entries = append(entries, model.LeaderboardEntry{Player: doc.Player, Rating: side.Rating, Stats: side})
	}
	if err := cur.Err(); err != nil {
		return nil, errs.Storage(err, "iterate leaderboard by %s", sortField)
	}
	return entries, nil
}
