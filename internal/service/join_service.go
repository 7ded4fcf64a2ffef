package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/auth"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// JoinService resolves ready-to-use meeting URLs for both join paths: a
// bearer presenting a capability token, and a trusted caller asserting its
// own identity.
type JoinService struct {
	sessions   repository.SessionRepository
	tokens     *auth.SessionTokenService
	siteConfig *SiteConfigService
	logger     *zap.Logger
}

// NewJoinService constructs the service.
func NewJoinService(sessions repository.SessionRepository, tokens *auth.SessionTokenService, siteConfig *SiteConfigService, logger *zap.Logger) *JoinService {
	return &JoinService{sessions: sessions, tokens: tokens, siteConfig: siteConfig, logger: logger}
}

// SessionView is the session projection returned to a joiner.
type SessionView struct {
	ID          string
	Room        string
	CourseLevel string
	Unit        int
	Lesson      int
	ExpiresAt   *time.Time
}

// IdentityView is who the joiner is, as resolved by the chosen trust path.
type IdentityView struct {
	Role        domain.ParticipantRole
	DisplayName string
	UserID      *string
}

// JoinResult bundles the resolved call URL with both views.
type JoinResult struct {
	URL     string
	Session SessionView
	Me      IdentityView
}

// JoinWithToken authorizes a bearer via its capability token and resolves the
// call URL. All token failure modes collapse to one generic unauthorized
// error; the distinction is kept in logs.
func (s *JoinService) JoinWithToken(ctx context.Context, sessionID, token string) (*JoinResult, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("missing or invalid token")
	}
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	claims, err := s.tokens.Verify(token, sessionID)
	if err != nil {
		s.logger.Info("join token rejected",
			zap.String("session_id", sessionID),
			zap.NamedError("reason", err))
		return nil, apperrors.NewUnauthorized("missing or invalid token")
	}

	displayName := claims.DisplayName
	if displayName == "" {
		displayName = "Guest"
	}
	role := claims.Role
	if role == "" {
		role = domain.RoleStudent
	}
	return s.resolve(ctx, sessionID, role, displayName, claims.UserID)
}

// JoinAuthenticated resolves the call URL for a trusted caller asserting
// role and display name directly, with no token involved.
func (s *JoinService) JoinAuthenticated(ctx context.Context, sessionID string, userID *string, displayName string, role domain.ParticipantRole) (*JoinResult, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = "Guest"
	}
	if role == "" {
		role = domain.RoleStudent
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("role must be teacher or student", nil)
	}
	return s.resolve(ctx, sessionID, role, displayName, userID)
}

func (s *JoinService) resolve(ctx context.Context, sessionID string, role domain.ParticipantRole, displayName string, userID *string) (*JoinResult, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("session", nil)
		}
		return nil, err
	}

	// Session expiry is re-derived from expiresAt, never from store absence:
	// the reaper is best-effort and a token may outlive the session.
	if session.Expired(time.Now()) {
		return nil, apperrors.NewSessionExpired()
	}

	base := strings.TrimRight(s.siteConfig.LessonJoinURL(ctx), "/")
	callURL := base + "/" + session.Room + "#userInfo.displayName=" + encodeDisplayName(displayName)

	return &JoinResult{
		URL: callURL,
		Session: SessionView{
			ID:          session.ID,
			Room:        session.Room,
			CourseLevel: session.CourseLevel,
			Unit:        session.Unit,
			Lesson:      session.Lesson,
			ExpiresAt:   session.ExpiresAt,
		},
		Me: IdentityView{
			Role:        role,
			DisplayName: displayName,
			UserID:      userID,
		},
	}, nil
}

// encodeDisplayName percent-encodes for a URL fragment; spaces become %20,
// not "+".
func encodeDisplayName(name string) string {
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
