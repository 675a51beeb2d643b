package storage

import (
	"context"
	"errors"

	"SiteWatch/internal/domain"
)

var ErrDuplicateSite = errors.New("site already exists")

// SiteStore интерфейс для работы со списком сайтов
type SiteStore interface {
	Create(ctx context.Context, site *domain.Site) error
	GetByURL(ctx context.Context, url string) (*domain.Site, error)
	List(ctx context.Context) ([]domain.Site, error)
	Delete(ctx context.Context, url string) error
}

// StatusStore persists the last-known status per site URL.
type StatusStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	// Replace swaps the whole snapshot: entries absent from the new one
	// are dropped.
	Replace(ctx context.Context, snapshot domain.Snapshot) error
	// Merge writes the given entries without touching the rest.
	Merge(ctx context.Context, snapshot domain.Snapshot) error
}

// DenyStore persists hostnames known to be unprobeable.
type DenyStore interface {
	Load(ctx context.Context) ([]string, error)
	Add(ctx context.Context, hostname string) error
	Remove(ctx context.Context, hostname string) error
}
