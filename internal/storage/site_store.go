package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SiteWatch/internal/domain"
	"SiteWatch/pkg/uuidutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type siteStore struct {
	pool *pgxpool.Pool
}

func NewSiteStore(pool *pgxpool.Pool) SiteStore {
	return &siteStore{pool: pool}
}

// Создаем новый сайт
func (s *siteStore) Create(ctx context.Context, site *domain.Site) error {
	if site.ID == "" {
		site.ID = uuidutil.New()
	}
	if site.CreatedAt.IsZero() {
		site.CreatedAt = time.Now()
	}

	query := `INSERT INTO sites (id, name, url, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, query,
		site.ID,
		site.Name,
		site.URL,
		site.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateSite
	}

	return err
}

// Возвращает сайт по точному URL
func (s *siteStore) GetByURL(ctx context.Context, url string) (*domain.Site, error) {
	query := `SELECT id, name, url, created_at FROM sites WHERE url = $1`

	var site domain.Site
	err := s.pool.QueryRow(ctx, query, url).Scan(
		&site.ID,
		&site.Name,
		&site.URL,
		&site.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return &site, err
}

// Возвращаем список сайтов в пользовательском порядке
func (s *siteStore) List(ctx context.Context) ([]domain.Site, error) {
	query := `
		SELECT id, name, url, created_at
		FROM sites
		ORDER BY position ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sites: failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []domain.Site
	for rows.Next() {
		var site domain.Site
		err := rows.Scan(
			&site.ID,
			&site.Name,
			&site.URL,
			&site.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list sites: failed to scan row: %w", err)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: row iteration error: %w", err)
	}

	return sites, nil
}

// Удаляет сайт по URL
func (s *siteStore) Delete(ctx context.Context, url string) error {
	query := `DELETE FROM sites WHERE url = $1`
	_, err := s.pool.Exec(ctx, query, url)
	return err
}
