package notify

import (
	"context"
	"log/slog"
)

type logNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &logNotifier{logger: logger}
}

func (l *logNotifier) Notify(_ context.Context, n Notification) error {
	l.logger.Info("notification",
		"id", n.ID,
		"kind", n.Kind,
		"title", n.Title,
		"message", n.Message,
	)
	return nil
}
