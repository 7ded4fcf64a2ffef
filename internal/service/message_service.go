package service

import (
	"context"
	"strings"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// MessageService keeps the per-user teacher/student message log.
type MessageService struct {
	messages repository.MessageRepository
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// MessageCreateInput describes one new message.
type MessageCreateInput struct {
	UserID    string
	Text      string
	Direction *domain.MessageDirection
}

// CreateMessage validates and persists a message.
func (s *MessageService) CreateMessage(ctx context.Context, input MessageCreateInput) (*domain.Message, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.NewValidationError("text is required", nil)
	}
	direction := domain.DirectionFromUser
	if input.Direction != nil {
		if *input.Direction != domain.DirectionFromUser && *input.Direction != domain.DirectionFromTeacher {
			return nil, apperrors.NewValidationError("invalid direction", nil)
		}
		direction = *input.Direction
	}

	message := &domain.Message{
		UserID:    input.UserID,
		Text:      input.Text,
		Direction: direction,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages returns a user's messages in chronological order.
func (s *MessageService) ListMessages(ctx context.Context, userID string, limit, offset int) ([]domain.Message, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	return s.messages.ListByUser(ctx, userID, limit, offset)
}
