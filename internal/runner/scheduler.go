package runner

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler fires a batch cycle at a fixed interval, plus once at startup.
type Scheduler struct {
	runner   *Runner
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(runner *Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the periodic loop in a goroutine. It stops when ctx is
// canceled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.runner.RunAll(ctx); err != nil {
		s.logger.Error("initial check cycle failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			if err := s.runner.RunAll(ctx); err != nil {
				s.logger.Error("check cycle failed", "error", err)
			}
		}
	}
}
