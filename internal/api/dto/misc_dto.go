package dto

import (
	"time"

	"github.com/gottaspeak/backend/internal/domain"
)

// CreateNoteRequest payload.
type CreateNoteRequest struct {
	UserID     string  `json:"userId"`
	MaterialID *string `json:"materialId"`
	Content    string  `json:"content"`
	IsPinned   bool    `json:"isPinned"`
}

// UpdateNoteRequest payload.
type UpdateNoteRequest struct {
	Content  *string `json:"content"`
	IsPinned *bool   `json:"isPinned"`
}

// NoteResponse view.
type NoteResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MaterialID *string   `json:"materialId"`
	Content    string    `json:"content"`
	IsPinned   bool      `json:"isPinned"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpsertProgressRequest payload.
type UpsertProgressRequest struct {
	UserID     string                     `json:"userId"`
	MaterialID string                     `json:"materialId"`
	Status     *domain.ProgressStatus     `json:"status"`
	Difficulty *domain.ProgressDifficulty `json:"difficulty"`
}

// ProgressResponse view.
type ProgressResponse struct {
	ID            string                    `json:"id"`
	UserID        string                    `json:"userId"`
	MaterialID    string                    `json:"materialId"`
	Status        domain.ProgressStatus     `json:"status"`
	Difficulty    domain.ProgressDifficulty `json:"difficulty"`
	LastVisitedAt time.Time                 `json:"lastVisitedAt"`
}

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	UserID    string                   `json:"userId"`
	Text      string                   `json:"text"`
	Direction *domain.MessageDirection `json:"direction"`
}

// MessageResponse view.
type MessageResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Text      string                  `json:"text"`
	Direction domain.MessageDirection `json:"direction"`
	CreatedAt time.Time               `json:"createdAt"`
}

// ContactRequest payload. Channel is "support" (default) or "hello".
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Channel string `json:"channel"`
}

// SiteConfigResponse is the public configuration view.
type SiteConfigResponse struct {
	SayrightURL   string   `json:"sayrightUrl"`
	LessonJoinURL string   `json:"lessonJoinUrl"`
	SupportEmail  string   `json:"supportEmail,omitempty"`
	Languages     []string `json:"languages"`
}

// UpdateSiteConfigRequest payload; nil fields are left alone.
type UpdateSiteConfigRequest struct {
	SayrightURL   *string  `json:"sayrightUrl"`
	LessonJoinURL *string  `json:"lessonJoinUrl"`
	SupportEmail  *string  `json:"supportEmail"`
	Languages     []string `json:"languages"`
}
