package dto

import (
	"time"

	"github.com/gottaspeak/backend/internal/domain"
)

// CreateMaterialRequest payload.
type CreateMaterialRequest struct {
	Title       string                   `json:"title"`
	Type        domain.MaterialType      `json:"type"`
	Slug        *string                  `json:"slug"`
	Kind        *domain.MaterialKind     `json:"kind"`
	Order       *int                     `json:"order"`
	Sections    []domain.MaterialSection `json:"sections"`
	Tags        []string                 `json:"tags"`
	IsPublished *bool                    `json:"isPublished"`
}

// UpdateMaterialRequest payload; nil fields are left alone.
type UpdateMaterialRequest struct {
	Title       *string                  `json:"title"`
	Slug        *string                  `json:"slug"`
	Kind        *domain.MaterialKind     `json:"kind"`
	Order       *int                     `json:"order"`
	Sections    []domain.MaterialSection `json:"sections"`
	Tags        []string                 `json:"tags"`
	IsPublished *bool                    `json:"isPublished"`
}

// MaterialResponse view.
type MaterialResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Type        domain.MaterialType      `json:"type"`
	Slug        string                   `json:"slug"`
	Kind        *domain.MaterialKind     `json:"kind"`
	Order       *int                     `json:"order"`
	Sections    []domain.MaterialSection `json:"sections"`
	Tags        []string                 `json:"tags"`
	IsPublished bool                     `json:"isPublished"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// MaterialPageResponse is one listing page.
type MaterialPageResponse struct {
	Items      []MaterialResponse `json:"items"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"totalPages"`
	SortBy     string             `json:"sortBy"`
	SortDir    string             `json:"sortDir"`
}
