package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// NoteService coordinates learner note workflows.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService constructs the service.
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// NoteCreateInput describes note creation payload.
type NoteCreateInput struct {
	UserID     string
	MaterialID *string
	Content    string
	IsPinned   bool
}

// NoteUpdateInput carries partial updates.
type NoteUpdateInput struct {
	Content  *string
	IsPinned *bool
}

// CreateNote validates and persists a note.
func (s *NoteService) CreateNote(ctx context.Context, input NoteCreateInput) (*domain.Note, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.NewValidationError("content is required", nil)
	}
	if input.MaterialID != nil {
		if _, err := uuid.Parse(*input.MaterialID); err != nil {
			return nil, apperrors.NewValidationError("invalid material id", nil)
		}
	}

	note := &domain.Note{
		UserID:     input.UserID,
		MaterialID: input.MaterialID,
		Content:    input.Content,
		IsPinned:   input.IsPinned,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote applies a partial update, enforcing ownership.
func (s *NoteService) UpdateNote(ctx context.Context, userID, id string, input NoteUpdateInput) (*domain.Note, error) {
	note, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, apperrors.NewValidationError("content must not be empty", nil)
		}
		note.Content = *input.Content
	}
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}
	if err := s.notes.Update(ctx, note); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("note", nil)
		}
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note, enforcing ownership.
func (s *NoteService) DeleteNote(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("note", nil)
		}
		return err
	}
	return nil
}

// ListNotes returns the user's notes, pinned first.
func (s *NoteService) ListNotes(ctx context.Context, userID string, limit, offset int) ([]domain.Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	return s.notes.ListByUser(ctx, userID, limit, offset)
}

func (s *NoteService) getOwned(ctx context.Context, userID, id string) (*domain.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationError("invalid note id", nil)
	}
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("note", nil)
		}
		return nil, err
	}
	if note.UserID != userID {
		return nil, apperrors.NewForbidden("note belongs to another user")
	}
	return note, nil
}
