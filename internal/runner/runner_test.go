package runner

import (
	"context"
	"strings"
	"testing"

	"SiteWatch/internal/domain"
	"SiteWatch/internal/notify"
	"SiteWatch/internal/storage"
)

type fakeChecker struct {
	statuses map[string]domain.Status
	calls    int
}

func (f *fakeChecker) Check(_ context.Context, site domain.Site) domain.Status {
	f.calls++
	if status, ok := f.statuses[site.URL]; ok {
		return status
	}
	return domain.StatusDown
}

type fakeSiteStore struct {
	sites []domain.Site
}

func (f *fakeSiteStore) Create(_ context.Context, site *domain.Site) error {
	for _, existing := range f.sites {
		if existing.URL == site.URL {
			return storage.ErrDuplicateSite
		}
	}
	f.sites = append(f.sites, *site)
	return nil
}

func (f *fakeSiteStore) GetByURL(_ context.Context, url string) (*domain.Site, error) {
	for _, site := range f.sites {
		if site.URL == url {
			copied := site
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSiteStore) List(_ context.Context) ([]domain.Site, error) {
	return append([]domain.Site(nil), f.sites...), nil
}

func (f *fakeSiteStore) Delete(_ context.Context, url string) error {
	kept := f.sites[:0]
	for _, site := range f.sites {
		if site.URL != url {
			kept = append(kept, site)
		}
	}
	f.sites = kept
	return nil
}

type fakeStatusStore struct {
	persisted    domain.Snapshot
	replaceCalls int
	mergeCalls   int
}

func newFakeStatusStore(persisted domain.Snapshot) *fakeStatusStore {
	if persisted == nil {
		persisted = make(domain.Snapshot)
	}
	return &fakeStatusStore{persisted: persisted}
}

func (f *fakeStatusStore) Load(_ context.Context) (domain.Snapshot, error) {
	return f.persisted.Clone(), nil
}

func (f *fakeStatusStore) Replace(_ context.Context, snapshot domain.Snapshot) error {
	f.replaceCalls++
	f.persisted = snapshot.Clone()
	return nil
}

func (f *fakeStatusStore) Merge(_ context.Context, snapshot domain.Snapshot) error {
	f.mergeCalls++
	for url, status := range snapshot {
		f.persisted[url] = status
	}
	return nil
}

type fakeDenylist struct {
	reloads int
}

func (f *fakeDenylist) Reload(_ context.Context) error {
	f.reloads++
	return nil
}

type recordingNotifier struct {
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func newTestRunner(
	checker *fakeChecker,
	sites *fakeSiteStore,
	statuses *fakeStatusStore,
) (*Runner, *fakeDenylist, *recordingNotifier) {
	deny := &fakeDenylist{}
	notifier := &recordingNotifier{}
	return New(checker, sites, statuses, deny, notifier, nil), deny, notifier
}

func TestRunAllPersistsSnapshot(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]domain.Status{
		"https://a.example": domain.StatusUp,
		"https://b.example": domain.StatusUnsupported,
	}}
	sites := &fakeSiteStore{sites: []domain.Site{
		domain.NewSite("A", "https://a.example"),
		domain.NewSite("B", "https://b.example"),
	}}
	// The persisted baseline still holds an entry for a deleted site.
	statuses := newFakeStatusStore(domain.Snapshot{
		"https://gone.example": domain.StatusUp,
	})

	run, deny, _ := newTestRunner(checker, sites, statuses)
	if err := run.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if deny.reloads != 1 {
		t.Errorf("expected the denylist to be reloaded once, got %d", deny.reloads)
	}
	if statuses.replaceCalls != 1 {
		t.Errorf("expected one snapshot replace, got %d", statuses.replaceCalls)
	}

	want := domain.Snapshot{
		"https://a.example": domain.StatusUp,
		"https://b.example": domain.StatusUnsupported,
	}
	if len(statuses.persisted) != len(want) {
		t.Errorf("replace must drop stale entries, got %v", statuses.persisted)
	}
	for url, status := range want {
		if statuses.persisted[url] != status {
			t.Errorf("persisted[%s] = %s, want %s", url, statuses.persisted[url], status)
		}
	}
}

func TestRecoveryNotifiesOnlyOnDownToUp(t *testing.T) {
	cases := []struct {
		previous   domain.Status
		current    domain.Status
		wantNotify bool
	}{
		{domain.StatusDown, domain.StatusUp, true},
		{domain.StatusUp, domain.StatusUp, false},
		{domain.StatusUnsupported, domain.StatusUp, false},
		{domain.StatusDown, domain.StatusDown, false},
		{domain.StatusUnknown, domain.StatusUp, false},
	}

	for _, tc := range cases {
		checker := &fakeChecker{statuses: map[string]domain.Status{
			"https://example.com": tc.current,
		}}
		sites := &fakeSiteStore{sites: []domain.Site{domain.NewSite("Example", "https://example.com")}}

		baseline := domain.Snapshot{}
		if tc.previous != domain.StatusUnknown {
			baseline["https://example.com"] = tc.previous
		}
		statuses := newFakeStatusStore(baseline)

		run, _, notifier := newTestRunner(checker, sites, statuses)
		if err := run.RunAll(context.Background()); err != nil {
			t.Fatalf("RunAll failed: %v", err)
		}

		if tc.wantNotify {
			if len(notifier.sent) != 1 {
				t.Errorf("%s -> %s: expected exactly one notification, got %d", tc.previous, tc.current, len(notifier.sent))
				continue
			}
			n := notifier.sent[0]
			if n.Kind != notify.KindSiteRecovered {
				t.Errorf("expected a recovery notification, got %s", n.Kind)
			}
			if n.Message == "" || !strings.Contains(n.Message, "Example") {
				t.Errorf("recovery message must carry the site name, got %q", n.Message)
			}
		} else if len(notifier.sent) != 0 {
			t.Errorf("%s -> %s: expected no notification, got %d", tc.previous, tc.current, len(notifier.sent))
		}
	}
}

func TestRunAllIsIdempotent(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]domain.Status{
		"https://example.com": domain.StatusUp,
	}}
	sites := &fakeSiteStore{sites: []domain.Site{domain.NewSite("Example", "https://example.com")}}
	statuses := newFakeStatusStore(domain.Snapshot{"https://example.com": domain.StatusDown})

	run, _, notifier := newTestRunner(checker, sites, statuses)

	if err := run.RunAll(context.Background()); err != nil {
		t.Fatalf("first RunAll failed: %v", err)
	}
	first := statuses.persisted.Clone()

	if err := run.RunAll(context.Background()); err != nil {
		t.Fatalf("second RunAll failed: %v", err)
	}

	if len(first) != len(statuses.persisted) || first["https://example.com"] != statuses.persisted["https://example.com"] {
		t.Errorf("two runs with stable outcomes must persist the same snapshot: %v vs %v", first, statuses.persisted)
	}

	// Only the first run crossed down -> up.
	if len(notifier.sent) != 1 {
		t.Errorf("expected exactly one recovery across both runs, got %d", len(notifier.sent))
	}
}

func TestRunOneSiteNotFound(t *testing.T) {
	run, _, _ := newTestRunner(&fakeChecker{}, &fakeSiteStore{}, newFakeStatusStore(nil))

	result := run.RunOne(context.Background(), "https://missing.example")
	if result.Success {
		t.Error("expected failure for an unknown url")
	}
	if result.Error != "Site not found" {
		t.Errorf("expected %q, got %q", "Site not found", result.Error)
	}
}

func TestRunOneMergesIntoMemoryBaseline(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]domain.Status{
		"https://example.com": domain.StatusUp,
	}}
	sites := &fakeSiteStore{sites: []domain.Site{domain.NewSite("Example", "https://example.com")}}
	// The persisted copy says down, but the single-site path diffs
	// against the in-memory mirror, which has no entry yet.
	statuses := newFakeStatusStore(domain.Snapshot{"https://example.com": domain.StatusDown})

	run, _, notifier := newTestRunner(checker, sites, statuses)

	result := run.RunOne(context.Background(), "https://example.com")
	if !result.Success || result.Status != domain.StatusUp {
		t.Fatalf("expected a successful up result, got %+v", result)
	}

	if len(notifier.sent) != 0 {
		t.Error("unknown -> up (in-memory baseline) must not notify, even though the persisted baseline was down")
	}
	if statuses.mergeCalls != 1 || statuses.replaceCalls != 0 {
		t.Errorf("single-site path must merge, not replace (merge=%d, replace=%d)", statuses.mergeCalls, statuses.replaceCalls)
	}
	if statuses.persisted["https://example.com"] != domain.StatusUp {
		t.Errorf("merged status not persisted: %v", statuses.persisted)
	}
}

func TestRunOneNotifiesAfterBatchBaseline(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]domain.Status{
		"https://example.com": domain.StatusDown,
	}}
	sites := &fakeSiteStore{sites: []domain.Site{domain.NewSite("Example", "https://example.com")}}
	statuses := newFakeStatusStore(nil)

	run, _, notifier := newTestRunner(checker, sites, statuses)

	// Batch cycle records down in the in-memory mirror.
	if err := run.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	checker.statuses["https://example.com"] = domain.StatusUp
	result := run.RunOne(context.Background(), "https://example.com")
	if !result.Success || result.Status != domain.StatusUp {
		t.Fatalf("expected a successful up result, got %+v", result)
	}

	if len(notifier.sent) != 1 || notifier.sent[0].Kind != notify.KindSiteRecovered {
		t.Fatalf("expected one recovery notification, got %+v", notifier.sent)
	}
}
