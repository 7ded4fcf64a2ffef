package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gottaspeak/backend/internal/domain"
)

// LessonLinkRepository encapsulates standalone lesson link persistence.
type LessonLinkRepository interface {
	Create(ctx context.Context, link *domain.LessonLink) error
	GetByRoom(ctx context.Context, room string) (*domain.LessonLink, error)
}

type lessonLinkRepository struct {
	pool *pgxpool.Pool
}

// NewLessonLinkRepository instantiates repository.
func NewLessonLinkRepository(pool *pgxpool.Pool) LessonLinkRepository {
	return &lessonLinkRepository{pool: pool}
}

func (r *lessonLinkRepository) Create(ctx context.Context, link *domain.LessonLink) error {
	const query = `
        INSERT INTO lesson_links (room, url, participants, created_by, expires_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query,
		link.Room,
		link.URL,
		link.Participants,
		link.CreatedBy,
		link.ExpiresAt,
	).Scan(&link.ID, &link.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrRoomTaken
		}
		return err
	}
	return nil
}

func (r *lessonLinkRepository) GetByRoom(ctx context.Context, room string) (*domain.LessonLink, error) {
	const query = `
        SELECT id, room, url, participants, created_by, expires_at, created_at
        FROM lesson_links WHERE room=$1`
	var link domain.LessonLink
	if err := r.pool.QueryRow(ctx, query, room).Scan(
		&link.ID,
		&link.Room,
		&link.URL,
		&link.Participants,
		&link.CreatedBy,
		&link.ExpiresAt,
		&link.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &link, nil
}
