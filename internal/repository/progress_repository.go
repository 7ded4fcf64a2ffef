package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gottaspeak/backend/internal/domain"
)

// ProgressRepository encapsulates per-(user, material) study records.
type ProgressRepository interface {
	Upsert(ctx context.Context, progress *domain.Progress) error
	GetByUserMaterial(ctx context.Context, userID, materialID string) (*domain.Progress, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Progress, error)
}

type progressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository instantiates repository.
func NewProgressRepository(pool *pgxpool.Pool) ProgressRepository {
	return &progressRepository{pool: pool}
}

func (r *progressRepository) Upsert(ctx context.Context, progress *domain.Progress) error {
	const query = `
        INSERT INTO progress (user_id, material_id, status, difficulty, last_visited_at)
        VALUES ($1,$2,$3,$4,NOW())
        ON CONFLICT (user_id, material_id) DO UPDATE
        SET status=EXCLUDED.status, difficulty=EXCLUDED.difficulty,
            last_visited_at=NOW(), updated_at=NOW()
        RETURNING id, last_visited_at, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		progress.UserID,
		progress.MaterialID,
		progress.Status,
		progress.Difficulty,
	).Scan(&progress.ID, &progress.LastVisitedAt, &progress.CreatedAt, &progress.UpdatedAt)
}

func (r *progressRepository) GetByUserMaterial(ctx context.Context, userID, materialID string) (*domain.Progress, error) {
	const query = `
        SELECT id, user_id, material_id, status, difficulty, last_visited_at, created_at, updated_at
        FROM progress WHERE user_id=$1 AND material_id=$2`
	var progress domain.Progress
	if err := r.pool.QueryRow(ctx, query, userID, materialID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.MaterialID,
		&progress.Status,
		&progress.Difficulty,
		&progress.LastVisitedAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	const query = `
        SELECT id, user_id, material_id, status, difficulty, last_visited_at, created_at, updated_at
        FROM progress WHERE user_id=$1 ORDER BY last_visited_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Progress
	for rows.Next() {
		var progress domain.Progress
		if err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.MaterialID,
			&progress.Status,
			&progress.Difficulty,
			&progress.LastVisitedAt,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, progress)
	}
	return result, rows.Err()
}
