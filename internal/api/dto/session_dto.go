package dto

import (
	"time"

	"github.com/gottaspeak/backend/internal/domain"
)

// ParticipantInput is one explicit participant in a create request.
type ParticipantInput struct {
	UserID      *string                `json:"userId"`
	DisplayName string                 `json:"displayName"`
	Role        domain.ParticipantRole `json:"role"`
}

// CreateSessionRequest payload.
type CreateSessionRequest struct {
	CourseLevel  string             `json:"courseLevel"`
	Unit         int                `json:"unit"`
	Lesson       int                `json:"lesson"`
	TeacherID    *string            `json:"teacherId"`
	DisplayName  string             `json:"displayName"`
	StudentIDs   []string           `json:"studentIds"`
	Participants []ParticipantInput `json:"participants"`
	StartsAt     *time.Time         `json:"startsAt"`
	TTLMinutes   *int               `json:"ttlMinutes"`
}

// SessionSummaryResponse is the create/list projection.
type SessionSummaryResponse struct {
	ID          string     `json:"id"`
	Room        string     `json:"room"`
	CourseLevel string     `json:"courseLevel"`
	Unit        int        `json:"unit"`
	Lesson      int        `json:"lesson"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// ParticipantResponse is one resolved participant.
type ParticipantResponse struct {
	UserID      *string                `json:"userId"`
	DisplayName string                 `json:"displayName"`
	Role        domain.ParticipantRole `json:"role"`
}

// SessionDetailResponse is the full session view.
type SessionDetailResponse struct {
	ID           string                `json:"id"`
	Room         string                `json:"room"`
	CourseLevel  string                `json:"courseLevel"`
	Unit         int                   `json:"unit"`
	Lesson       int                   `json:"lesson"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedBy    string                `json:"createdBy"`
	StartsAt     *time.Time            `json:"startsAt"`
	ExpiresAt    *time.Time            `json:"expiresAt"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// CreateSessionResponse includes the resolved participants.
type CreateSessionResponse struct {
	SessionSummaryResponse
	Participants []ParticipantResponse `json:"participants"`
}

// CreateInviteRequest payload.
type CreateInviteRequest struct {
	SessionID   string                 `json:"sessionId"`
	UserID      *string                `json:"userId"`
	DisplayName string                 `json:"displayName"`
	Role        domain.ParticipantRole `json:"role"`
	TTLMinutes  *int                   `json:"ttlMinutes"`
}

// InviteResponse is the minted invite.
type InviteResponse struct {
	SessionID        string `json:"sessionId"`
	Token            string `json:"token"`
	Link             string `json:"link"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
}

// AuthJoinRequest is the trusted, token-less join payload.
type AuthJoinRequest struct {
	UserID      *string                `json:"userId"`
	DisplayName string                 `json:"displayName"`
	Role        domain.ParticipantRole `json:"role"`
}

// JoinSessionView is the session slice returned to a joiner.
type JoinSessionView struct {
	ID          string     `json:"id"`
	Room        string     `json:"room"`
	CourseLevel string     `json:"courseLevel"`
	Unit        int        `json:"unit"`
	Lesson      int        `json:"lesson"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// JoinIdentityView is who the joiner is.
type JoinIdentityView struct {
	Role        domain.ParticipantRole `json:"role"`
	DisplayName string                 `json:"displayName"`
	UserID      *string                `json:"userId"`
}

// JoinResponse bundles the resolved call URL with both views.
type JoinResponse struct {
	URL     string           `json:"url"`
	Session JoinSessionView  `json:"session"`
	Me      JoinIdentityView `json:"me"`
}
