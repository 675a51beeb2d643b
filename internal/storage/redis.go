package storage

import (
	"context"
	"fmt"
	"log/slog"

	"SiteWatch/internal/config"
	"SiteWatch/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.RedisConfig, log *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(cfg.GetRedisOptions())

	ctx, cancel := context.WithTimeout(context.Background(), constants.StorageTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis")
	return client, nil
}
