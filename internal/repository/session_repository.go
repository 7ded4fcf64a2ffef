package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gottaspeak/backend/internal/domain"
)

// ErrRoomTaken signals a room uniqueness violation on insert. Not retried
// here; the caller decides whether to retry with a fresh room.
var ErrRoomTaken = errors.New("room already taken")

const uniqueViolation = "23505"

// SessionRepository encapsulates session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ListByParticipant(ctx context.Context, userID string) ([]domain.Session, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository instantiates repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO sessions (room, course_level, unit, lesson, created_by, starts_at, expires_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, query,
		session.Room,
		session.CourseLevel,
		session.Unit,
		session.Lesson,
		session.CreatedBy,
		session.StartsAt,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrRoomTaken
		}
		return err
	}

	const insertParticipant = `
        INSERT INTO session_participants (session_id, position, user_id, display_name, role)
        VALUES ($1,$2,$3,$4,$5)`
	for i, p := range session.Participants {
		if _, err := tx.Exec(ctx, insertParticipant, session.ID, i, p.UserID, p.DisplayName, p.Role); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	const query = `
        SELECT id, room, course_level, unit, lesson, created_by, starts_at, expires_at, created_at
        FROM sessions WHERE id=$1`
	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Room,
		&session.CourseLevel,
		&session.Unit,
		&session.Lesson,
		&session.CreatedBy,
		&session.StartsAt,
		&session.ExpiresAt,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}

	participants, err := r.participantsFor(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	session.Participants = participants
	return &session, nil
}

func (r *sessionRepository) participantsFor(ctx context.Context, sessionID string) ([]domain.Participant, error) {
	const query = `
        SELECT user_id, display_name, role
        FROM session_participants WHERE session_id=$1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.Role); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *sessionRepository) ListByParticipant(ctx context.Context, userID string) ([]domain.Session, error) {
	const query = `
        SELECT DISTINCT s.id, s.room, s.course_level, s.unit, s.lesson, s.created_by,
               s.starts_at, s.expires_at, s.created_at
        FROM sessions s
        JOIN session_participants p ON p.session_id = s.id
        WHERE p.user_id = $1
        ORDER BY s.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanSessions(rows pgx.Rows) ([]domain.Session, error) {
	var result []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(
			&session.ID,
			&session.Room,
			&session.CourseLevel,
			&session.Unit,
			&session.Lesson,
			&session.CreatedBy,
			&session.StartsAt,
			&session.ExpiresAt,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, session)
	}
	return result, rows.Err()
}
