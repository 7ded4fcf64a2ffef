package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func adminTestApp(t *testing.T, guard *AdminGuard) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/admin", guard.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAdminGuardAcceptsValidToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	app := adminTestApp(t, NewAdminGuard(string(hash)))

	req := httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("X-Admin-Token", "s3cret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAdminGuardRejectsBadToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	app := adminTestApp(t, NewAdminGuard(string(hash)))

	for name, token := range map[string]string{
		"wrong":   "nope",
		"missing": "",
	} {
		req := httptest.NewRequest("POST", "/admin", nil)
		if token != "" {
			req.Header.Set("X-Admin-Token", token)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: test: %v", name, err)
		}
		if resp.StatusCode == fiber.StatusOK {
			t.Fatalf("%s: request passed the guard", name)
		}
	}
}

func TestAdminGuardRejectsWhenUnconfigured(t *testing.T) {
	app := adminTestApp(t, NewAdminGuard(""))

	req := httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("X-Admin-Token", "anything")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.StatusCode == fiber.StatusOK {
		t.Fatal("unconfigured guard let the request through")
	}
}
