// Package store persists statements, cached analytics summaries and
// industry benchmarks in Postgres via pgx.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the shared connection pool from the database URL in
// the environment variable named by cfg.Database.URLEnv. Safe to call more
// than once; only the first call connects.
func InitDB(ctx context.Context, cfg *Config) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv(cfg.Database.URLEnv)
		if dbURL == "" {
			err = fmt.Errorf("%s environment variable not set", cfg.Database.URLEnv)
			return
		}

		poolCfg, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}
		if cfg.Database.MaxConns > 0 {
			poolCfg.MaxConns = cfg.Database.MaxConns
		}

		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return
		}
		if cfg.Database.BootstrapSchema {
			err = bootstrapSchema(ctx, pool)
		}
	})
	return err
}

// GetPool returns the shared connection pool, nil before InitDB.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the shared connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
