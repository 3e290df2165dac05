// Package store persists player ratings and the downloader's ingest
// ledger in MongoDB (spec.md §6).
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/islanddefense/w3g-platform/pkg/errs"
)

// Dial connects to the Mongo deployment named by host/port and returns
// the database handle the repos build their collections from.
func Dial(ctx context.Context, host string, port int, db string) (*mongo.Database, error) {
	uri := fmt.Sprintf("mongodb://%s:%d", host, port)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Storage(err, "connect to mongo at %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errs.Storage(err, "ping mongo at %s", uri)
	}
	return client.Database(db), nil
}
