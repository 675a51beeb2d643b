package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const denyKey = "uncheckable:domains"

type denyStore struct {
	client *redis.Client
}

func NewDenyStore(client *redis.Client) DenyStore {
	return &denyStore{client: client}
}

func (s *denyStore) Load(ctx context.Context) ([]string, error) {
	hostnames, err := s.client.SMembers(ctx, denyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load denylist: %w", err)
	}
	return hostnames, nil
}

func (s *denyStore) Add(ctx context.Context, hostname string) error {
	if err := s.client.SAdd(ctx, denyKey, hostname).Err(); err != nil {
		return fmt.Errorf("failed to add %s to denylist: %w", hostname, err)
	}
	return nil
}

func (s *denyStore) Remove(ctx context.Context, hostname string) error {
	if err := s.client.SRem(ctx, denyKey, hostname).Err(); err != nil {
		return fmt.Errorf("failed to remove %s from denylist: %w", hostname, err)
	}
	return nil
}
