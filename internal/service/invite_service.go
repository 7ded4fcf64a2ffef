package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/auth"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// InviteService mints shareable invite links carrying a capability token for
// a single session.
type InviteService struct {
	sessions    repository.SessionRepository
	tokens      *auth.SessionTokenService
	frontendURL string
	defaultTTL  int
}

// NewInviteService constructs the service. defaultTTLMinutes applies when a
// request carries no ttl; zero or negative falls back to the token default.
func NewInviteService(sessions repository.SessionRepository, tokens *auth.SessionTokenService, frontendURL string, defaultTTLMinutes int) *InviteService {
	if defaultTTLMinutes <= 0 {
		defaultTTLMinutes = auth.DefaultTTLMinutes
	}
	return &InviteService{sessions: sessions, tokens: tokens, frontendURL: frontendURL, defaultTTL: defaultTTLMinutes}
}

// InviteCreateInput describes an invite request.
type InviteCreateInput struct {
	SessionID   string
	UserID      *string
	DisplayName string
	Role        domain.ParticipantRole
	TTLMinutes  *int
}

// InviteResult is the minted invite.
type InviteResult struct {
	SessionID        string
	Token            string
	Link             string
	ExpiresInMinutes int
}

// CreateInvite verifies the session exists, signs a token and embeds it in a
// frontend link. Exactly one token is minted per request; several may be
// outstanding for the same session.
func (s *InviteService) CreateInvite(ctx context.Context, input InviteCreateInput) (*InviteResult, error) {
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("role must be teacher or student", nil)
	}
	ttl := s.defaultTTL
	if input.TTLMinutes != nil {
		if *input.TTLMinutes < auth.MinTTLMinutes || *input.TTLMinutes > auth.MaxTTLMinutes {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("ttlMinutes must be between %d and %d", auth.MinTTLMinutes, auth.MaxTTLMinutes), nil)
		}
		ttl = *input.TTLMinutes
	}

	if _, err := s.sessions.GetByID(ctx, input.SessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("session", nil)
		}
		return nil, err
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = "Guest"
	}

	token, effectiveTTL, err := s.tokens.Issue(input.SessionID, input.Role, displayName, input.UserID, ttl)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	base := strings.TrimRight(s.frontendURL, "/")
	link := fmt.Sprintf("%s/live/%s?t=%s", base, input.SessionID, token)

	return &InviteResult{
		SessionID:        input.SessionID,
		Token:            token,
		Link:             link,
		ExpiresInMinutes: effectiveTTL,
	}, nil
}
