package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gottaspeak/backend/internal/auth"
	"github.com/gottaspeak/backend/internal/domain"
)

func TestCreateInviteLink(t *testing.T) {
	repo := newFakeSessionRepo()
	tokens := auth.NewSessionTokenService("test-secret")
	svc := NewInviteService(repo, tokens, "http://localhost:5173/", 0)

	expires := time.Now().Add(time.Hour)
	session := repo.add(&domain.Session{Room: "gs-sess-x", ExpiresAt: &expires})

	result, err := svc.CreateInvite(context.Background(), InviteCreateInput{
		SessionID:   session.ID,
		DisplayName: "Kasia",
		Role:        domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	prefix := fmt.Sprintf("http://localhost:5173/live/%s?t=", session.ID)
	if !strings.HasPrefix(result.Link, prefix) {
		t.Errorf("link = %q, want prefix %q", result.Link, prefix)
	}
	if result.Link != prefix+result.Token {
		t.Errorf("link does not embed the minted token")
	}
	if result.ExpiresInMinutes != auth.DefaultTTLMinutes {
		t.Errorf("expiresInMinutes = %d, want %d", result.ExpiresInMinutes, auth.DefaultTTLMinutes)
	}

	claims, err := tokens.Verify(result.Token, session.ID)
	if err != nil {
		t.Fatalf("verify minted token: %v", err)
	}
	if claims.DisplayName != "Kasia" || claims.Role != domain.RoleStudent {
		t.Errorf("claims = %+v", claims)
	}
}

func TestCreateInviteDefaultsDisplayName(t *testing.T) {
	repo := newFakeSessionRepo()
	tokens := auth.NewSessionTokenService("test-secret")
	svc := NewInviteService(repo, tokens, "http://localhost:5173", 0)

	expires := time.Now().Add(time.Hour)
	session := repo.add(&domain.Session{Room: "gs-sess-y", ExpiresAt: &expires})

	result, err := svc.CreateInvite(context.Background(), InviteCreateInput{
		SessionID: session.ID,
		Role:      domain.RoleTeacher,
		TTLMinutes: func() *int {
			v := 30
			return &v
		}(),
	})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if result.ExpiresInMinutes != 30 {
		t.Errorf("expiresInMinutes = %d, want 30", result.ExpiresInMinutes)
	}

	claims, err := tokens.Verify(result.Token, session.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.DisplayName != "Guest" {
		t.Errorf("displayName = %q, want Guest", claims.DisplayName)
	}
}

func TestCreateInviteConfiguredDefaultTTL(t *testing.T) {
	repo := newFakeSessionRepo()
	tokens := auth.NewSessionTokenService("test-secret")
	svc := NewInviteService(repo, tokens, "http://localhost:5173", 90)

	expires := time.Now().Add(time.Hour)
	session := repo.add(&domain.Session{Room: "gs-sess-d", ExpiresAt: &expires})

	result, err := svc.CreateInvite(context.Background(), InviteCreateInput{
		SessionID: session.ID,
		Role:      domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if result.ExpiresInMinutes != 90 {
		t.Errorf("expiresInMinutes = %d, want 90", result.ExpiresInMinutes)
	}
}

func TestCreateInviteValidation(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewInviteService(repo, auth.NewSessionTokenService("test-secret"), "http://localhost:5173", 0)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour)
	session := repo.add(&domain.Session{Room: "gs-sess-z", ExpiresAt: &expires})

	cases := []struct {
		name  string
		input InviteCreateInput
		code  string
	}{
		{"malformed id", InviteCreateInput{SessionID: "nope", Role: domain.RoleStudent}, "VALIDATION_FAILED"},
		{"bad role", InviteCreateInput{SessionID: session.ID, Role: "observer"}, "VALIDATION_FAILED"},
		{"ttl below range", InviteCreateInput{SessionID: session.ID, Role: domain.RoleStudent, TTLMinutes: intPtr(4)}, "VALIDATION_FAILED"},
		{"ttl above range", InviteCreateInput{SessionID: session.ID, Role: domain.RoleStudent, TTLMinutes: intPtr(10081)}, "VALIDATION_FAILED"},
		{"unknown session", InviteCreateInput{SessionID: uuid.NewString(), Role: domain.RoleStudent}, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateInvite(ctx, tc.input)
			if code := errCode(t, err); code != tc.code {
				t.Fatalf("code = %q, want %q", code, tc.code)
			}
		})
	}
}
