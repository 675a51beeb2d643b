package storage

import (
	"context"
	"fmt"
	"log/slog"

	"SiteWatch/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgres(ctx context.Context, cfg *config.DatabaseConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		log.Error("Failed to open connection to postgres", "error", err)
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		log.Error("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	log.Info("Successfully connected to postgres database")
	return pool, nil
}

// EnsureSchema создает таблицы, если их еще нет
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	query := `CREATE TABLE IF NOT EXISTS sites (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		position BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure sites table: %w", err)
	}
	return nil
}
