// Command importcards loads a JSON card file into the catalog.
//
// The file holds an array of {"id", "name", "color", "imagePath"} objects.
// Cards that already exist are updated in place. When a Redis address is
// given, cached plans of every user whose lists hold an imported card are
// invalidated so renamed cards show up immediately.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage/sqlite"
	"github.com/mmynk/cardplanner/pkg/logging"
)

type cardRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	ImagePath string `json:"imagePath"`
}

func main() {
	dbPath := flag.String("db", envOr("DB_PATH", "./data/cardplanner.db"), "SQLite database path")
	file := flag.String("file", "", "JSON card file to import")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "log level")
	redisAddr := flag.String("redis", os.Getenv("REDIS_ADDR"), "Redis address of the plan cache; empty skips invalidation")
	flag.Parse()

	logger := logging.Setup(*logLevel)

	if *file == "" {
		logger.Error("Missing -file")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	var plans cache.PlanCache = cache.Noop{}
	if *redisAddr != "" {
		db, err := strconv.Atoi(envOr("REDIS_DB", "0"))
		if err != nil {
			logger.Error("Invalid REDIS_DB", "error", err)
			os.Exit(2)
		}
		redisCache, client, err := cache.Connect(ctx, cache.Options{
			Addr:     *redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       db,
		})
		if err != nil {
			logger.Error("Plan cache unavailable", "addr", *redisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		plans = redisCache
	}

	n, err := run(ctx, *dbPath, *file, plans)
	if err != nil {
		logger.Error("Import failed", "file", *file, "error", err)
		os.Exit(1)
	}
	logger.Info("Cards imported", "count", n, "database", *dbPath)
}

func run(ctx context.Context, dbPath, file string, plans cache.PlanCache) (int, error) {
	cards, err := readCards(file)
	if err != nil {
		return 0, err
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	if err := store.UpsertCards(ctx, cards); err != nil {
		return 0, fmt.Errorf("failed to upsert cards: %w", err)
	}

	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	users, err := store.UsersWithCards(ctx, ids)
	if err != nil {
		return len(cards), fmt.Errorf("cards imported, but affected users could not be listed: %w", err)
	}
	for _, userID := range users {
		if err := plans.Invalidate(ctx, userID); err != nil {
			slog.Warn("Plan cache invalidation failed", "user_id", userID, "error", err)
		}
	}
	slog.Debug("Plan caches invalidated", "users", len(users))

	return len(cards), nil
}

// readCards decodes the card file and rejects records without an ID or name.
func readCards(path string) ([]*models.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []cardRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cards := make([]*models.Card, 0, len(records))
	for i, r := range records {
		if r.ID == "" || r.Name == "" {
			return nil, fmt.Errorf("record %d: %w", i, errInvalidRecord)
		}
		cards = append(cards, &models.Card{
			ID:        r.ID,
			Name:      r.Name,
			Color:     r.Color,
			ImagePath: r.ImagePath,
		})
	}
	slog.Debug("Card file read", "path", path, "cards", len(cards))
	return cards, nil
}

var errInvalidRecord = errors.New("card needs an id and a name")

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
