package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/auth"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// LessonLinkService mints standalone room links outside the session flow.
// Creation is operator-only (admin guarded at the route); lookup by room is
// open, matching the historical unauthenticated join path.
type LessonLinkService struct {
	links      repository.LessonLinkRepository
	rooms      *RoomNamer
	siteConfig *SiteConfigService
	defaultTTL int
}

// NewLessonLinkService constructs the service. defaultTTLMinutes applies
// when a request carries no ttl; zero or negative falls back to the token
// default.
func NewLessonLinkService(links repository.LessonLinkRepository, rooms *RoomNamer, siteConfig *SiteConfigService, defaultTTLMinutes int) *LessonLinkService {
	if defaultTTLMinutes <= 0 {
		defaultTTLMinutes = auth.DefaultTTLMinutes
	}
	return &LessonLinkService{links: links, rooms: rooms, siteConfig: siteConfig, defaultTTL: defaultTTLMinutes}
}

// LessonLinkCreateInput describes a lesson link request.
type LessonLinkCreateInput struct {
	TeacherID   *string
	StudentID   *string
	DisplayName string
	TTLMinutes  *int
}

// CreateLessonLink names a room, resolves the call URL against the
// configured base and persists the link.
func (s *LessonLinkService) CreateLessonLink(ctx context.Context, input LessonLinkCreateInput) (*domain.LessonLink, error) {
	ttl := s.defaultTTL
	if input.TTLMinutes != nil {
		if *input.TTLMinutes < auth.MinTTLMinutes || *input.TTLMinutes > auth.MaxTTLMinutes {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("ttlMinutes must be between %d and %d", auth.MinTTLMinutes, auth.MaxTTLMinutes), nil)
		}
		ttl = *input.TTLMinutes
	}

	displayName := input.DisplayName
	if strings.TrimSpace(displayName) == "" {
		displayName = "Guest"
	}

	room, err := s.rooms.Generate()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	base := strings.TrimRight(s.siteConfig.LessonJoinURL(ctx), "/")
	callURL := base + "/" + room + "#userInfo.displayName=" + encodeDisplayName(displayName)

	var participants []string
	createdBy := ""
	if input.TeacherID != nil && *input.TeacherID != "" {
		participants = append(participants, *input.TeacherID)
		createdBy = *input.TeacherID
	}
	if input.StudentID != nil && *input.StudentID != "" {
		participants = append(participants, *input.StudentID)
	}

	expiresAt := time.Now().Add(time.Duration(ttl) * time.Minute)
	link := &domain.LessonLink{
		Room:         room,
		URL:          callURL,
		Participants: participants,
		CreatedBy:    createdBy,
		ExpiresAt:    &expiresAt,
	}
	if err := s.links.Create(ctx, link); err != nil {
		if errors.Is(err, repository.ErrRoomTaken) {
			return nil, apperrors.NewConflict("room identifier collision, retry the request", nil)
		}
		return nil, err
	}
	return link, nil
}

// GetLessonLink fetches a link by its room identifier.
func (s *LessonLinkService) GetLessonLink(ctx context.Context, room string) (*domain.LessonLink, error) {
	if strings.TrimSpace(room) == "" {
		return nil, apperrors.NewValidationError("room is required", nil)
	}
	link, err := s.links.GetByRoom(ctx, room)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lesson link", nil)
		}
		return nil, err
	}
	return link, nil
}
