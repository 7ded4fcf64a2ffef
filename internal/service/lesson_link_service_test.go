package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
)

type fakeLessonLinkRepo struct {
	byRoom map[string]*domain.LessonLink
	seq    int
}

func newFakeLessonLinkRepo() *fakeLessonLinkRepo {
	return &fakeLessonLinkRepo{byRoom: map[string]*domain.LessonLink{}}
}

func (f *fakeLessonLinkRepo) Create(_ context.Context, link *domain.LessonLink) error {
	if _, ok := f.byRoom[link.Room]; ok {
		return repository.ErrRoomTaken
	}
	f.seq++
	link.ID = fmt.Sprintf("link-%d", f.seq)
	link.CreatedAt = time.Now()
	stored := *link
	f.byRoom[link.Room] = &stored
	return nil
}

func (f *fakeLessonLinkRepo) GetByRoom(_ context.Context, room string) (*domain.LessonLink, error) {
	link, ok := f.byRoom[room]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	stored := *link
	return &stored, nil
}

func newLessonLinkFixture(lessonJoinURL string, defaultTTL int) (*LessonLinkService, *fakeLessonLinkRepo) {
	repo := newFakeLessonLinkRepo()
	siteConfig := NewSiteConfigService(&fakeSiteConfigRepo{
		cfg: domain.SiteConfig{LessonJoinURL: lessonJoinURL},
	}, nil, zap.NewNop())
	return NewLessonLinkService(repo, NewRoomNamer(), siteConfig, defaultTTL), repo
}

func TestCreateLessonLinkBuildsURL(t *testing.T) {
	svc, repo := newLessonLinkFixture("https://meet.example.com/", 0)

	teacher := "t-1"
	link, err := svc.CreateLessonLink(context.Background(), LessonLinkCreateInput{
		TeacherID:   &teacher,
		DisplayName: "Ola N",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if link.Room == "" {
		t.Fatal("room not generated")
	}
	want := "https://meet.example.com/" + link.Room + "#userInfo.displayName=Ola%20N"
	if link.URL != want {
		t.Errorf("url = %q, want %q", link.URL, want)
	}
	if link.CreatedBy != "t-1" {
		t.Errorf("createdBy = %q", link.CreatedBy)
	}
	if len(link.Participants) != 1 || link.Participants[0] != "t-1" {
		t.Errorf("participants = %v", link.Participants)
	}
	if link.ExpiresAt == nil {
		t.Fatal("expiresAt not set")
	}
	if _, ok := repo.byRoom[link.Room]; !ok {
		t.Error("link not persisted")
	}
}

func TestCreateLessonLinkDefaults(t *testing.T) {
	svc, _ := newLessonLinkFixture("", 0)

	link, err := svc.CreateLessonLink(context.Background(), LessonLinkCreateInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(link.URL, domain.DefaultLessonJoinURL+"/") {
		t.Errorf("url = %q, want default base", link.URL)
	}
	if !strings.HasSuffix(link.URL, "#userInfo.displayName=Guest") {
		t.Errorf("url = %q, want Guest display name", link.URL)
	}
	if link.CreatedBy != "" || len(link.Participants) != 0 {
		t.Errorf("createdBy = %q participants = %v, want empty", link.CreatedBy, link.Participants)
	}
}

func TestCreateLessonLinkTTL(t *testing.T) {
	svc, _ := newLessonLinkFixture("https://meet.example.com", 90)

	link, err := svc.CreateLessonLink(context.Background(), LessonLinkCreateInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := time.Now().Add(90 * time.Minute)
	if diff := link.ExpiresAt.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiresAt = %v, want ~%v", link.ExpiresAt, want)
	}

	bad := 4
	_, err = svc.CreateLessonLink(context.Background(), LessonLinkCreateInput{TTLMinutes: &bad})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestGetLessonLink(t *testing.T) {
	svc, _ := newLessonLinkFixture("https://meet.example.com", 0)

	created, err := svc.CreateLessonLink(context.Background(), LessonLinkCreateInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetLessonLink(context.Background(), created.Room)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.URL != created.URL {
		t.Errorf("url = %q, want %q", got.URL, created.URL)
	}

	_, err = svc.GetLessonLink(context.Background(), "no-such-room")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("code = %q, want NOT_FOUND", code)
	}

	_, err = svc.GetLessonLink(context.Background(), "  ")
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}
