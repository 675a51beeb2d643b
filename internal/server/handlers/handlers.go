package handlers

import (
	"log/slog"

	"SiteWatch/internal/denylist"
	"SiteWatch/internal/notify"
	"SiteWatch/internal/resolver"
	"SiteWatch/internal/runner"
	"SiteWatch/internal/storage"
)

type Handlers struct {
	runner   *runner.Runner
	sites    storage.SiteStore
	statuses storage.StatusStore
	denylist *denylist.List
	resolver *resolver.Checker
	notifier notify.Notifier
	hub      *notify.Hub
	logger   *slog.Logger
}

func NewHandlers(
	run *runner.Runner,
	sites storage.SiteStore,
	statuses storage.StatusStore,
	deny *denylist.List,
	dns *resolver.Checker,
	notifier notify.Notifier,
	hub *notify.Hub,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handlers{
		runner:   run,
		sites:    sites,
		statuses: statuses,
		denylist: deny,
		resolver: dns,
		notifier: notifier,
		hub:      hub,
		logger:   logger,
	}
}
