package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gottaspeak/backend/internal/domain"
)

// SupportMailRepository logs support-channel mail and its delivery outcome.
type SupportMailRepository interface {
	Create(ctx context.Context, m *domain.SupportMail) error
	UpdateStatus(ctx context.Context, id string, status domain.SupportMailStatus, sendError string) error
}

type supportMailRepository struct {
	pool *pgxpool.Pool
}

// NewSupportMailRepository instantiates repository.
func NewSupportMailRepository(pool *pgxpool.Pool) SupportMailRepository {
	return &supportMailRepository{pool: pool}
}

func (r *supportMailRepository) Create(ctx context.Context, m *domain.SupportMail) error {
	const query = `
        INSERT INTO support_mails (direction, recipients, from_addr, subject, body, status, send_error)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		m.Direction,
		m.To,
		m.From,
		m.Subject,
		m.Text,
		m.Status,
		m.Error,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *supportMailRepository) UpdateStatus(ctx context.Context, id string, status domain.SupportMailStatus, sendError string) error {
	const query = `
        UPDATE support_mails SET status=$2, send_error=$3, updated_at=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id, status, sendError)
	return err
}
