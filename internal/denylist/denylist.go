package denylist

import (
	"context"
	"log/slog"

	"SiteWatch/internal/notify"
	"SiteWatch/internal/storage"
	"SiteWatch/pkg/validator"
)

// List is the in-memory mirror of the persisted set of hostnames known to
// be unprobeable. Lookups during a check cycle are synchronous against the
// mirror; callers reload at the start of a cycle rather than trusting a
// possibly-stale copy.
type List struct {
	store     storage.DenyStore
	notifier  notify.Notifier
	logger    *slog.Logger
	hostnames map[string]bool
}

func New(store storage.DenyStore, notifier notify.Notifier, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	return &List{
		store:     store,
		notifier:  notifier,
		logger:    logger,
		hostnames: make(map[string]bool),
	}
}

// Reload replaces the mirror with the persisted copy. Called at the start
// of each batch cycle so denials recorded by a concurrent single-site
// check are not missed.
func (l *List) Reload(ctx context.Context) error {
	hostnames, err := l.store.Load(ctx)
	if err != nil {
		return err
	}

	mirror := make(map[string]bool, len(hostnames))
	for _, hostname := range hostnames {
		mirror[hostname] = true
	}
	l.hostnames = mirror
	return nil
}

func (l *List) IsDenied(hostname string) bool {
	return l.hostnames[hostname]
}

// Deny records raw as unprobeable. Accepts a bare hostname or a full URL;
// for URLs only http/https hostnames are extracted, anything else is kept
// as a literal hostname. Re-denying an already-known hostname is a no-op
// for both storage and notification.
func (l *List) Deny(ctx context.Context, raw string) {
	hostname := validator.Hostname(raw)
	if hostname == "" {
		return
	}

	if l.hostnames[hostname] {
		return
	}
	l.hostnames[hostname] = true

	if err := l.store.Add(ctx, hostname); err != nil {
		l.logger.Error("failed to persist denylist entry", "hostname", hostname, "error", err)
	}

	l.logger.Info("domain marked unsupported", "hostname", hostname)

	if l.notifier != nil {
		if err := l.notifier.Notify(ctx, notify.DomainUnsupported(hostname)); err != nil {
			l.logger.Error("failed to send denial notification", "hostname", hostname, "error", err)
		}
	}
}

// Remove prunes a hostname, used when its owning site is deleted.
func (l *List) Remove(ctx context.Context, hostname string) {
	hostname = validator.Hostname(hostname)
	if hostname == "" {
		return
	}

	delete(l.hostnames, hostname)
	if err := l.store.Remove(ctx, hostname); err != nil {
		l.logger.Error("failed to prune denylist entry", "hostname", hostname, "error", err)
	}
}
