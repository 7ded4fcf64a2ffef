package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gottaspeak/backend/internal/domain"
)

// MessageRepository encapsulates per-user message logs.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (user_id, text, direction)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		message.UserID,
		message.Text,
		message.Direction,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, text, direction, created_at
        FROM messages WHERE user_id=$1
        ORDER BY created_at ASC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.UserID,
			&message.Text,
			&message.Direction,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}
