package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"SiteWatch/internal/domain"
	"SiteWatch/internal/notify"
	"SiteWatch/internal/storage"
)

type SiteChecker interface {
	Check(ctx context.Context, site domain.Site) domain.Status
}

type Denylist interface {
	Reload(ctx context.Context) error
}

// Result is the single-site check response shape.
type Result struct {
	Success bool          `json:"success"`
	Status  domain.Status `json:"status,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Runner drives check cycles over the site list. One mutex serializes
// overlapping cycles: a periodic tick and a manual check-all never race on
// the snapshot.
type Runner struct {
	mu sync.Mutex

	checker  SiteChecker
	sites    storage.SiteStore
	statuses storage.StatusStore
	denylist Denylist
	notifier notify.Notifier
	logger   *slog.Logger

	// lastKnown is the in-memory status mirror the single-site path
	// merges into. Batch cycles rebuild it wholesale.
	lastKnown domain.Snapshot
}

func New(
	checker SiteChecker,
	sites storage.SiteStore,
	statuses storage.StatusStore,
	denylist Denylist,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		checker:   checker,
		sites:     sites,
		statuses:  statuses,
		denylist:  denylist,
		notifier:  notifier,
		logger:    logger,
		lastKnown: make(domain.Snapshot),
	}
}

// RunAll checks every site in list order, strictly sequentially, then
// replaces the persisted snapshot with the fresh one. The persisted
// baseline and denylist are reloaded first so a concurrent single-site
// check's writes are not lost.
func (r *Runner) RunAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.denylist.Reload(ctx); err != nil {
		// A stale mirror still checks correctly, just less efficiently.
		r.logger.Error("failed to reload denylist, using in-memory copy", "error", err)
	}

	baseline, err := r.statuses.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load status baseline: %w", err)
	}

	sites, err := r.sites.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	next := make(domain.Snapshot, len(sites))
	for _, site := range sites {
		status := r.checker.Check(ctx, site)
		r.maybeNotifyRecovery(ctx, site, baseline.Get(site.URL), status)
		next[site.URL] = status

		r.logger.Debug("site checked",
			"url", site.URL,
			"status", status,
			"previous", baseline.Get(site.URL),
		)
	}

	if err := r.statuses.Replace(ctx, next); err != nil {
		return fmt.Errorf("failed to persist status snapshot: %w", err)
	}
	r.lastKnown = next

	r.logger.Info("check cycle completed", "sites", len(sites))
	return nil
}

// RunOne checks a single site by exact URL. Unlike RunAll it diffs against
// and merges into the in-memory last-known map rather than reloading the
// persisted baseline.
func (r *Runner) RunOne(ctx context.Context, url string) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	site, err := r.sites.GetByURL(ctx, url)
	if err != nil {
		r.logger.Error("failed to look up site", "url", url, "error", err)
		return Result{Success: false, Error: "Failed to look up site"}
	}
	if site == nil {
		return Result{Success: false, Error: "Site not found"}
	}

	previous := r.lastKnown.Get(url)
	status := r.checker.Check(ctx, *site)
	r.maybeNotifyRecovery(ctx, *site, previous, status)

	r.lastKnown[url] = status
	if err := r.statuses.Merge(ctx, r.lastKnown); err != nil {
		r.logger.Error("failed to persist single-site status", "url", url, "error", err)
	}

	return Result{Success: true, Status: status}
}

// LastKnown returns a copy of the in-memory status mirror.
func (r *Runner) LastKnown() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastKnown.Clone()
}

// A recovery fires on the literal down -> up transition only. unknown -> up
// and unsupported -> up stay silent.
func (r *Runner) maybeNotifyRecovery(ctx context.Context, site domain.Site, previous, current domain.Status) {
	if previous != domain.StatusDown || current != domain.StatusUp {
		return
	}

	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, notify.SiteRecovered(site.Name, site.URL)); err != nil {
		r.logger.Error("failed to send recovery notification", "url", site.URL, "error", err)
	}
}
