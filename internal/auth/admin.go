package auth

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// AdminGuard protects mutating admin routes with a shared token. The token is
// stored bcrypt-hashed in configuration; the plaintext travels in the
// X-Admin-Token header.
type AdminGuard struct {
	tokenHash []byte
}

// NewAdminGuard constructs the guard.
func NewAdminGuard(tokenHash string) *AdminGuard {
	return &AdminGuard{tokenHash: []byte(tokenHash)}
}

// Handle rejects requests without a matching admin token.
func (g *AdminGuard) Handle(c *fiber.Ctx) error {
	if len(g.tokenHash) == 0 {
		return apperrors.NewUnauthorized("admin access not configured")
	}
	token := c.Get("X-Admin-Token")
	if token == "" {
		return apperrors.NewUnauthorized("missing admin token")
	}
	if err := bcrypt.CompareHashAndPassword(g.tokenHash, []byte(token)); err != nil {
		return apperrors.NewUnauthorized("invalid admin token")
	}
	return c.Next()
}
