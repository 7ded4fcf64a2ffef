package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/auth"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// SessionService coordinates video-lesson session workflows.
type SessionService struct {
	sessions   repository.SessionRepository
	rooms      *RoomNamer
	defaultTTL int
}

// NewSessionService constructs the service. defaultTTLMinutes is used when a
// create request carries no ttl; zero or negative falls back to the token
// default.
func NewSessionService(sessions repository.SessionRepository, rooms *RoomNamer, defaultTTLMinutes int) *SessionService {
	if defaultTTLMinutes <= 0 {
		defaultTTLMinutes = auth.DefaultTTLMinutes
	}
	return &SessionService{sessions: sessions, rooms: rooms, defaultTTL: defaultTTLMinutes}
}

// ParticipantInput describes one explicit participant.
type ParticipantInput struct {
	UserID      *string
	DisplayName string
	Role        domain.ParticipantRole
}

// SessionCreateInput describes session creation payload. Either Participants
// is supplied verbatim, or a teacher participant plus one student per
// StudentIDs entry is synthesized.
type SessionCreateInput struct {
	CourseLevel  string
	Unit         int
	Lesson       int
	TeacherID    *string
	DisplayName  string
	StudentIDs   []string
	Participants []ParticipantInput
	StartsAt     *time.Time
	TTLMinutes   *int
}

// SessionSummary is the listing/creation projection: no participant detail,
// no createdBy.
type SessionSummary struct {
	ID          string
	Room        string
	CourseLevel string
	Unit        int
	Lesson      int
	ExpiresAt   *time.Time
}

// CreateSession validates input, assembles participants, names a room and
// persists the session.
func (s *SessionService) CreateSession(ctx context.Context, input SessionCreateInput) (*domain.Session, error) {
	if strings.TrimSpace(input.CourseLevel) == "" {
		return nil, apperrors.NewValidationError("courseLevel is required", nil)
	}
	if input.Unit <= 0 || input.Lesson <= 0 {
		return nil, apperrors.NewValidationError("unit and lesson must be positive integers", nil)
	}

	ttl := s.defaultTTL
	if input.TTLMinutes != nil {
		if *input.TTLMinutes < auth.MinTTLMinutes || *input.TTLMinutes > auth.MaxTTLMinutes {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("ttlMinutes must be between %d and %d", auth.MinTTLMinutes, auth.MaxTTLMinutes), nil)
		}
		ttl = *input.TTLMinutes
	}

	participants, err := assembleParticipants(input)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.Generate()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	expiresAt := time.Now().Add(time.Duration(ttl) * time.Minute)
	createdBy := ""
	if input.TeacherID != nil {
		createdBy = *input.TeacherID
	}

	session := &domain.Session{
		Room:         room,
		CourseLevel:  input.CourseLevel,
		Unit:         input.Unit,
		Lesson:       input.Lesson,
		Participants: participants,
		CreatedBy:    createdBy,
		StartsAt:     input.StartsAt,
		ExpiresAt:    &expiresAt,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrRoomTaken) {
			return nil, apperrors.NewConflict("room identifier collision, retry the request", nil)
		}
		return nil, err
	}
	return session, nil
}

// GetSession fetches a session by id. Malformed ids are a validation error,
// well-formed-but-absent ids are not found.
func (s *SessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	if err := validateSessionID(id); err != nil {
		return nil, err
	}
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("session", nil)
		}
		return nil, err
	}
	return session, nil
}

// ListSessions returns summaries of every session the user participates in,
// most recently created first.
func (s *SessionService) ListSessions(ctx context.Context, userID string) ([]SessionSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	sessions, err := s.sessions.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]SessionSummary, 0, len(sessions))
	for i := range sessions {
		summaries = append(summaries, Summarize(&sessions[i]))
	}
	return summaries, nil
}

// Summarize projects a session to its summary form.
func Summarize(session *domain.Session) SessionSummary {
	return SessionSummary{
		ID:          session.ID,
		Room:        session.Room,
		CourseLevel: session.CourseLevel,
		Unit:        session.Unit,
		Lesson:      session.Lesson,
		ExpiresAt:   session.ExpiresAt,
	}
}

func assembleParticipants(input SessionCreateInput) ([]domain.Participant, error) {
	if len(input.Participants) > 0 {
		participants := make([]domain.Participant, 0, len(input.Participants))
		for _, p := range input.Participants {
			if strings.TrimSpace(p.DisplayName) == "" {
				return nil, apperrors.NewValidationError("participant displayName is required", nil)
			}
			if !domain.ValidRole(p.Role) {
				return nil, apperrors.NewValidationError("participant role must be teacher or student", nil)
			}
			participants = append(participants, domain.Participant{
				UserID:      p.UserID,
				DisplayName: p.DisplayName,
				Role:        p.Role,
			})
		}
		return participants, nil
	}

	var participants []domain.Participant
	if input.TeacherID != nil && *input.TeacherID != "" {
		name := input.DisplayName
		if strings.TrimSpace(name) == "" {
			name = "Teacher"
		}
		participants = append(participants, domain.Participant{
			UserID:      input.TeacherID,
			DisplayName: name,
			Role:        domain.RoleTeacher,
		})
	}
	for i, studentID := range input.StudentIDs {
		id := studentID
		participants = append(participants, domain.Participant{
			UserID:      &id,
			DisplayName: fmt.Sprintf("Student %d", i+1),
			Role:        domain.RoleStudent,
		})
	}
	return participants, nil
}

func validateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewValidationError("invalid session id", nil)
	}
	return nil
}
