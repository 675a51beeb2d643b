package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// redisNotifier publishes notifications on a pub/sub channel so UI
// processes on the same machine can subscribe.
type redisNotifier struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisNotifier(client *redis.Client, channel string, logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisNotifier{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (r *redisNotifier) Notify(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.logger.Error("failed to publish notification",
			"channel", r.channel,
			"id", n.ID,
			"error", err,
		)
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
