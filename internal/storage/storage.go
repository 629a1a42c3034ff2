// Package storage opens the sheet and encounter stores a binary was configured for.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pf2e-sheet/internal/config"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets"
)

const pingTimeout = 5 * time.Second

// Stores are the repositories for one storage driver
type Stores struct {
	Sheets     sheets.Repository
	Encounters encounters.Repository

	// Redis is set only for the redis driver
	Redis redis.UniversalClient

	closers []func() error
}

// Memory returns process local stores
func Memory() *Stores {
	return &Stores{
		Sheets:     sheets.NewInMemoryRepository(),
		Encounters: encounters.NewInMemoryRepository(),
	}
}

// Open connects the stores for the configured driver. SQLite only holds
// sheets; encounters stay in memory with it.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		log.Println("Using in-memory repositories")
		return Memory(), nil

	case config.StorageRedis:
		client, err := NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Println("Using Redis for persistence")

		return &Stores{
			Sheets:     sheets.NewRedis(client),
			Encounters: encounters.NewRedis(client),
			Redis:      client,
			closers:    []func() error{client.Close},
		}, nil

	case config.StorageSQLite:
		db, err := sheets.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Printf("Using SQLite at %s for sheets", cfg.SQLite.Path)

		return &Stores{
			Sheets:     sheets.NewSQLiteRepository(&sheets.SQLiteRepoConfig{DB: db}),
			Encounters: encounters.NewInMemoryRepository(),
			closers:    []func() error{db.Close},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewRedisClient builds a client from REDIS_URL or the individual settings
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// Close releases every connection the stores hold
func (s *Stores) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
