package storage

import (
	"context"
	"fmt"

	"SiteWatch/internal/domain"

	"github.com/redis/go-redis/v9"
)

const statusKey = "site:statuses"

type statusStore struct {
	client *redis.Client
}

func NewStatusStore(client *redis.Client) StatusStore {
	return &statusStore{client: client}
}

func (s *statusStore) Load(ctx context.Context) (domain.Snapshot, error) {
	values, err := s.client.HGetAll(ctx, statusKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load status snapshot: %w", err)
	}

	snapshot := make(domain.Snapshot, len(values))
	for url, value := range values {
		status := domain.Status(value)
		if !status.Valid() || status == domain.StatusUnknown {
			// Незнакомые значения пропускаем
			continue
		}
		snapshot[url] = status
	}
	return snapshot, nil
}

func (s *statusStore) Replace(ctx context.Context, snapshot domain.Snapshot) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, statusKey)
	if len(snapshot) > 0 {
		pipe.HSet(ctx, statusKey, flatten(snapshot)...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace status snapshot: %w", err)
	}
	return nil
}

func (s *statusStore) Merge(ctx context.Context, snapshot domain.Snapshot) error {
	if len(snapshot) == 0 {
		return nil
	}

	if err := s.client.HSet(ctx, statusKey, flatten(snapshot)...).Err(); err != nil {
		return fmt.Errorf("failed to merge status snapshot: %w", err)
	}
	return nil
}

func flatten(snapshot domain.Snapshot) []interface{} {
	pairs := make([]interface{}, 0, len(snapshot)*2)
	for url, status := range snapshot {
		if status == domain.StatusUnknown {
			continue
		}
		pairs = append(pairs, url, string(status))
	}
	return pairs
}
