package notify

import (
	"context"
	"fmt"
	"time"

	"SiteWatch/pkg/uuidutil"
)

const (
	KindDomainUnsupported = "domain-unsupported"
	KindSiteRecovered     = "site-recovered"
	KindSiteAdded         = "site-added"
)

// Notification is a fire-and-forget user-facing alert. The ID is derived
// deterministically from the kind and subject so delivery surfaces can
// collapse duplicates.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

func DomainUnsupported(hostname string) Notification {
	return Notification{
		ID:        uuidutil.Deterministic(KindDomainUnsupported + ":" + hostname),
		Kind:      KindDomainUnsupported,
		Title:     "Domain cannot be checked",
		Message:   fmt.Sprintf("%s cannot be checked automatically and will be skipped.", hostname),
		CreatedAt: time.Now(),
	}
}

func SiteRecovered(name, url string) Notification {
	return Notification{
		ID:        uuidutil.Deterministic(KindSiteRecovered + ":" + url),
		Kind:      KindSiteRecovered,
		Title:     "Site is back up",
		Message:   fmt.Sprintf("%s is reachable again.", name),
		CreatedAt: time.Now(),
	}
}

func SiteAdded(hostname string) Notification {
	return Notification{
		ID:        uuidutil.Deterministic(KindSiteAdded + ":" + hostname),
		Kind:      KindSiteAdded,
		Title:     "Site added",
		Message:   fmt.Sprintf("%s is now being watched.", hostname),
		CreatedAt: time.Now(),
	}
}

// Multi fans a notification out to every notifier, best effort.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var firstErr error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
