package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// fakeSessionRepo is an in-memory SessionRepository for service tests.
type fakeSessionRepo struct {
	sessions  map[string]*domain.Session
	listed    []domain.Session
	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	session.ID = uuid.NewString()
	session.CreatedAt = time.Now()
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return session, nil
}

func (f *fakeSessionRepo) ListByParticipant(_ context.Context, _ string) ([]domain.Session, error) {
	return f.listed, nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeSessionRepo) add(session *domain.Session) *domain.Session {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	session.CreatedAt = time.Now()
	f.sessions[session.ID] = session
	return session
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	return apperrors.ToDomainError(err).Code
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateSessionSynthesizesParticipants(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, NewRoomNamer(), 0)

	before := time.Now()
	session, err := svc.CreateSession(context.Background(), SessionCreateInput{
		CourseLevel: "B1",
		Unit:        2,
		Lesson:      5,
		TeacherID:   strPtr("t1"),
		StudentIDs:  []string{"s1", "s2"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := []struct {
		userID string
		name   string
		role   domain.ParticipantRole
	}{
		{"t1", "Teacher", domain.RoleTeacher},
		{"s1", "Student 1", domain.RoleStudent},
		{"s2", "Student 2", domain.RoleStudent},
	}
	if len(session.Participants) != len(want) {
		t.Fatalf("participants = %d, want %d", len(session.Participants), len(want))
	}
	for i, w := range want {
		p := session.Participants[i]
		if p.UserID == nil || *p.UserID != w.userID {
			t.Errorf("participant %d userId = %v, want %q", i, p.UserID, w.userID)
		}
		if p.DisplayName != w.name {
			t.Errorf("participant %d displayName = %q, want %q", i, p.DisplayName, w.name)
		}
		if p.Role != w.role {
			t.Errorf("participant %d role = %q, want %q", i, p.Role, w.role)
		}
	}

	if !strings.HasPrefix(session.Room, "gs-sess-") {
		t.Errorf("room = %q, missing prefix", session.Room)
	}
	if session.ExpiresAt == nil {
		t.Fatal("expiresAt is nil")
	}
	lower := before.Add(24 * time.Hour)
	upper := time.Now().Add(24 * time.Hour)
	if session.ExpiresAt.Before(lower) || session.ExpiresAt.After(upper) {
		t.Errorf("expiresAt = %v, want within [%v, %v]", session.ExpiresAt, lower, upper)
	}
	if session.CreatedBy != "t1" {
		t.Errorf("createdBy = %q, want t1", session.CreatedBy)
	}
}

func TestCreateSessionExplicitParticipants(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, NewRoomNamer(), 0)

	session, err := svc.CreateSession(context.Background(), SessionCreateInput{
		CourseLevel: "A2",
		Unit:        1,
		Lesson:      1,
		Participants: []ParticipantInput{
			{UserID: strPtr("u1"), DisplayName: "Ola", Role: domain.RoleTeacher},
			{DisplayName: "Guest Student", Role: domain.RoleStudent},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(session.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(session.Participants))
	}
	if session.Participants[1].UserID != nil {
		t.Errorf("anonymous participant should keep nil userId")
	}
	if session.Participants[0].DisplayName != "Ola" {
		t.Errorf("displayName = %q", session.Participants[0].DisplayName)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), NewRoomNamer(), 0)
	ctx := context.Background()

	cases := []struct {
		name  string
		input SessionCreateInput
	}{
		{"missing course level", SessionCreateInput{Unit: 1, Lesson: 1}},
		{"zero unit", SessionCreateInput{CourseLevel: "B1", Unit: 0, Lesson: 1}},
		{"zero lesson", SessionCreateInput{CourseLevel: "B1", Unit: 1, Lesson: 0}},
		{"ttl below range", SessionCreateInput{CourseLevel: "B1", Unit: 1, Lesson: 1, TTLMinutes: intPtr(4)}},
		{"ttl above range", SessionCreateInput{CourseLevel: "B1", Unit: 1, Lesson: 1, TTLMinutes: intPtr(10081)}},
		{"participant without name", SessionCreateInput{
			CourseLevel:  "B1",
			Unit:         1,
			Lesson:       1,
			Participants: []ParticipantInput{{DisplayName: "  ", Role: domain.RoleStudent}},
		}},
		{"participant with bad role", SessionCreateInput{
			CourseLevel:  "B1",
			Unit:         1,
			Lesson:       1,
			Participants: []ParticipantInput{{DisplayName: "Ola", Role: "observer"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSession(ctx, tc.input)
			if code := errCode(t, err); code != "VALIDATION_FAILED" {
				t.Fatalf("code = %q, want VALIDATION_FAILED", code)
			}
		})
	}
}

func TestCreateSessionCustomTTL(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), NewRoomNamer(), 0)

	session, err := svc.CreateSession(context.Background(), SessionCreateInput{
		CourseLevel: "B1",
		Unit:        1,
		Lesson:      1,
		TTLMinutes:  intPtr(30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	expected := time.Now().Add(30 * time.Minute)
	if diff := session.ExpiresAt.Sub(expected); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiresAt = %v, want ~%v", session.ExpiresAt, expected)
	}
}

func TestCreateSessionConfiguredDefaultTTL(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), NewRoomNamer(), 60)

	session, err := svc.CreateSession(context.Background(), SessionCreateInput{
		CourseLevel: "B1",
		Unit:        1,
		Lesson:      1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	expected := time.Now().Add(60 * time.Minute)
	if diff := session.ExpiresAt.Sub(expected); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiresAt = %v, want ~%v", session.ExpiresAt, expected)
	}
}

func TestCreateSessionRoomConflict(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.createErr = repository.ErrRoomTaken
	svc := NewSessionService(repo, NewRoomNamer(), 0)

	_, err := svc.CreateSession(context.Background(), SessionCreateInput{
		CourseLevel: "B1",
		Unit:        1,
		Lesson:      1,
	})
	if code := errCode(t, err); code != "CONFLICT" {
		t.Fatalf("code = %q, want CONFLICT", code)
	}
}

func TestGetSessionMalformedID(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), NewRoomNamer(), 0)
	_, err := svc.GetSession(context.Background(), "not-a-uuid")
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestGetSessionAbsent(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), NewRoomNamer(), 0)
	_, err := svc.GetSession(context.Background(), uuid.NewString())
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("code = %q, want NOT_FOUND", code)
	}
}

func TestListSessionsRequiresUserID(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), NewRoomNamer(), 0)
	_, err := svc.ListSessions(context.Background(), "  ")
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestListSessionsProjection(t *testing.T) {
	repo := newFakeSessionRepo()
	expires := time.Now().Add(time.Hour)
	repo.listed = []domain.Session{
		{
			ID:          uuid.NewString(),
			Room:        "gs-sess-abc-1",
			CourseLevel: "B1",
			Unit:        2,
			Lesson:      5,
			CreatedBy:   "t1",
			ExpiresAt:   &expires,
			Participants: []domain.Participant{
				{DisplayName: "Teacher", Role: domain.RoleTeacher},
			},
		},
	}
	svc := NewSessionService(repo, NewRoomNamer(), 0)

	summaries, err := svc.ListSessions(context.Background(), "t1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	got := summaries[0]
	if got.Room != "gs-sess-abc-1" || got.CourseLevel != "B1" || got.Unit != 2 || got.Lesson != 5 {
		t.Errorf("summary = %+v", got)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(expires) {
		t.Errorf("expiresAt = %v, want %v", got.ExpiresAt, expires)
	}
}
