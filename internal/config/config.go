// Package config loads worker configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/islanddefense/w3g-platform/pkg/errs"
)

// Config holds every environment-derived setting a worker might need.
// Individual binaries read only the fields relevant to them.
type Config struct {
	KafkaURIs       []string
	MongoHost       string
	MongoPort       int
	MongoDB         string
	MongoCollection string
	ReplayPath      string
	LogFilter       string
}

func init() {
	// Best-effort: a missing .env is normal outside local development.
	_ = godotenv.Load()
}

// Load reads the configuration required by spec.md §6 from the
// environment. Missing required variables produce a ConfigError; there
// is nothing sensible to retry against, so callers should log and exit.
func Load() (Config, error) {
	var cfg Config
	var missing []string

	kafka, ok := os.LookupEnv("KAFKA_URIS")
	if !ok || kafka == "" {
		missing = append(missing, "KAFKA_URIS")
	} else {
		cfg.KafkaURIs = strings.Split(kafka, ",")
	}

	cfg.MongoHost, ok = os.LookupEnv("MONGO_HOST")
	if !ok || cfg.MongoHost == "" {
		missing = append(missing, "MONGO_HOST")
	}

	portStr, ok := os.LookupEnv("MONGO_PORT")
	if !ok || portStr == "" {
		missing = append(missing, "MONGO_PORT")
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errs.Config(err, "MONGO_PORT %q is not an integer", portStr)
		}
		cfg.MongoPort = port
	}

	cfg.MongoDB, ok = os.LookupEnv("MONGO_DB")
	if !ok || cfg.MongoDB == "" {
		missing = append(missing, "MONGO_DB")
	}

	cfg.MongoCollection, ok = os.LookupEnv("MONGO_COLLECTION")
	if !ok || cfg.MongoCollection == "" {
		missing = append(missing, "MONGO_COLLECTION")
	}

	cfg.ReplayPath = os.Getenv("REPLAY_PATH")
	cfg.LogFilter = os.Getenv("ISLAND_LOG")

	if len(missing) > 0 {
		return Config{}, errs.Config(nil, "missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
