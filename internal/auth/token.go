package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/gottaspeak/backend/internal/domain"
)

// Token TTL bounds in minutes: 5 minutes to 7 days.
const (
	MinTTLMinutes     = 5
	MaxTTLMinutes     = 7 * 24 * 60
	DefaultTTLMinutes = 24 * 60
)

// Verification failure modes. All of them collapse to one generic 401 at the
// HTTP boundary; they stay distinct here for logging and tests.
var (
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrSessionMismatch = errors.New("token does not match session")
)

// SessionClaims is the capability a join token carries.
type SessionClaims struct {
	SessionID   string                 `json:"sessionId"`
	UserID      *string                `json:"userId,omitempty"`
	DisplayName string                 `json:"displayName"`
	Role        domain.ParticipantRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionTokenService signs and verifies stateless join tokens. The secret is
// process-wide configuration, injected once at construction.
type SessionTokenService struct {
	secret []byte
}

// NewSessionTokenService builds a new service.
func NewSessionTokenService(secret string) *SessionTokenService {
	return &SessionTokenService{secret: []byte(secret)}
}

// ClampTTL forces ttlMinutes into [MinTTLMinutes, MaxTTLMinutes], defaulting
// when zero or negative.
func ClampTTL(ttlMinutes int) int {
	if ttlMinutes <= 0 {
		return DefaultTTLMinutes
	}
	if ttlMinutes < MinTTLMinutes {
		return MinTTLMinutes
	}
	if ttlMinutes > MaxTTLMinutes {
		return MaxTTLMinutes
	}
	return ttlMinutes
}

// Issue signs a join token for the session. Returns the encoded token and the
// effective TTL in minutes after clamping.
func (s *SessionTokenService) Issue(sessionID string, role domain.ParticipantRole, displayName string, userID *string, ttlMinutes int) (string, int, error) {
	ttl := ClampTTL(ttlMinutes)
	now := time.Now()
	claims := &SessionClaims{
		SessionID:   sessionID,
		UserID:      userID,
		DisplayName: displayName,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttl) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	encoded, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return encoded, ttl, nil
}

// Verify checks signature and expiry, then that the token was minted for
// expectedSessionID.
func (s *SessionTokenService) Verify(tokenStr, expectedSessionID string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.SessionID != expectedSessionID {
		return nil, ErrSessionMismatch
	}
	return claims, nil
}
