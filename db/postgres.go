package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nadit/nadit-backend/config"
	"github.com/nadit/nadit-backend/logger"
	"github.com/nadit/nadit-backend/store"
	"github.com/nadit/nadit-backend/store/postgres"
)

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (store.Database, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	// DATABASE_NAME selects the database, overriding the URL path.
	poolConfig.ConnConfig.Database = cfg.Name

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if cfg.AutoMigrate {
		if err := RunMigrations(pool); err != nil {
			// The table may already exist; inserts will report their own errors.
			logger.GetLogger().Errorw("Failed to run migrations", "error", err)
		}
	}

	return postgres.NewFeedbackStore(pool, cfg.Name), nil
}
