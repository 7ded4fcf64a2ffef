package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gottaspeak/backend/internal/domain"
)

// Single row keyed by a fixed identifier, mirroring the "site" singleton.
const siteConfigKey = "site"

// SiteConfigRepository stores the singleton site configuration.
type SiteConfigRepository interface {
	Get(ctx context.Context) (*domain.SiteConfig, error)
	Upsert(ctx context.Context, cfg *domain.SiteConfig) error
}

type siteConfigRepository struct {
	pool *pgxpool.Pool
}

// NewSiteConfigRepository instantiates repository.
func NewSiteConfigRepository(pool *pgxpool.Pool) SiteConfigRepository {
	return &siteConfigRepository{pool: pool}
}

// Get returns the stored configuration, or defaults when no row exists.
func (r *siteConfigRepository) Get(ctx context.Context) (*domain.SiteConfig, error) {
	const query = `
        SELECT sayright_url, lesson_join_url, support_email, languages, updated_at
        FROM site_config WHERE id=$1`
	var cfg domain.SiteConfig
	err := r.pool.QueryRow(ctx, query, siteConfigKey).Scan(
		&cfg.SayrightURL,
		&cfg.LessonJoinURL,
		&cfg.SupportEmail,
		&cfg.Languages,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		defaults := domain.DefaultSiteConfig()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *siteConfigRepository) Upsert(ctx context.Context, cfg *domain.SiteConfig) error {
	const query = `
        INSERT INTO site_config (id, sayright_url, lesson_join_url, support_email, languages)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE
        SET sayright_url=EXCLUDED.sayright_url, lesson_join_url=EXCLUDED.lesson_join_url,
            support_email=EXCLUDED.support_email, languages=EXCLUDED.languages, updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		siteConfigKey,
		cfg.SayrightURL,
		cfg.LessonJoinURL,
		cfg.SupportEmail,
		cfg.Languages,
	).Scan(&cfg.UpdatedAt)
}
