package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// MaterialService coordinates learning material workflows.
type MaterialService struct {
	materials repository.MaterialRepository
}

// NewMaterialService constructs the service.
func NewMaterialService(materials repository.MaterialRepository) *MaterialService {
	return &MaterialService{materials: materials}
}

// MaterialCreateInput describes material creation payload.
type MaterialCreateInput struct {
	Title       string
	Type        domain.MaterialType
	Slug        *string
	Kind        *domain.MaterialKind
	Order       *int
	Sections    []domain.MaterialSection
	Tags        []string
	IsPublished *bool
}

// MaterialUpdateInput carries partial updates; nil fields are left alone.
type MaterialUpdateInput struct {
	Title       *string
	Slug        *string
	Kind        *domain.MaterialKind
	Order       *int
	Sections    []domain.MaterialSection
	Tags        []string
	IsPublished *bool
}

// MaterialListInput describes listing parameters.
type MaterialListInput struct {
	Type    *domain.MaterialType
	Search  *string
	Page    int
	Limit   int
	SortBy  string
	SortAsc bool
}

// MaterialPage is one page of materials plus paging metadata.
type MaterialPage struct {
	Items      []domain.Material
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// CreateMaterial slugifies the title (or supplied slug), de-dupes the slug
// within its type and persists the material.
func (s *MaterialService) CreateMaterial(ctx context.Context, input MaterialCreateInput) (*domain.Material, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if !domain.ValidMaterialType(input.Type) {
		return nil, apperrors.NewValidationError("type must be grammar, vocabulary or other", nil)
	}

	base := input.Title
	if input.Slug != nil && strings.TrimSpace(*input.Slug) != "" {
		base = *input.Slug
	}
	slug, err := s.ensureUniqueSlug(ctx, input.Type, Slugify(base))
	if err != nil {
		return nil, err
	}

	material := &domain.Material{
		Title:    strings.TrimSpace(input.Title),
		Type:     input.Type,
		Slug:     slug,
		Kind:     input.Kind,
		Order:    input.Order,
		Sections: input.Sections,
		Tags:     input.Tags,
	}
	if input.IsPublished != nil {
		material.IsPublished = *input.IsPublished
	}

	if err := s.materials.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// UpdateMaterial applies a partial update.
func (s *MaterialService) UpdateMaterial(ctx context.Context, id string, input MaterialUpdateInput) (*domain.Material, error) {
	material, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.NewValidationError("title must not be empty", nil)
		}
		material.Title = strings.TrimSpace(*input.Title)
	}
	if input.Slug != nil {
		slug := Slugify(*input.Slug)
		if slug == "" {
			slug = "material"
		}
		// An unchanged slug is not a collision with itself; only a slug
		// already held by another material conflicts.
		if slug != material.Slug {
			exists, err := s.materials.SlugExists(ctx, material.Type, slug)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperrors.NewConflict("slug already in use", map[string]any{"slug": slug})
			}
			material.Slug = slug
		}
	}
	if input.Kind != nil {
		material.Kind = input.Kind
	}
	if input.Order != nil {
		material.Order = input.Order
	}
	if input.Sections != nil {
		material.Sections = input.Sections
	}
	if input.Tags != nil {
		material.Tags = input.Tags
	}
	if input.IsPublished != nil {
		material.IsPublished = *input.IsPublished
	}

	if err := s.materials.Update(ctx, material); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("material", nil)
		}
		return nil, err
	}
	return material, nil
}

// DeleteMaterial removes a material.
func (s *MaterialService) DeleteMaterial(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewValidationError("invalid material id", nil)
	}
	if err := s.materials.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("material", nil)
		}
		return err
	}
	return nil
}

// GetMaterial fetches by (type, slug).
func (s *MaterialService) GetMaterial(ctx context.Context, materialType domain.MaterialType, slug string) (*domain.Material, error) {
	material, err := s.materials.GetByTypeSlug(ctx, materialType, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("material", nil)
		}
		return nil, err
	}
	return material, nil
}

// ListMaterials returns one page of materials.
func (s *MaterialService) ListMaterials(ctx context.Context, input MaterialListInput) (*MaterialPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := repository.MaterialFilter{
		Type:       input.Type,
		SearchTerm: input.Search,
		SortBy:     input.SortBy,
		SortAsc:    input.SortAsc,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	items, total, err := s.materials.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &MaterialPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *MaterialService) getByID(ctx context.Context, id string) (*domain.Material, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationError("invalid material id", nil)
	}
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("material", nil)
		}
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) ensureUniqueSlug(ctx context.Context, materialType domain.MaterialType, base string) (string, error) {
	if base == "" {
		base = "material"
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := s.materials.SlugExists(ctx, materialType, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Slugify lowercases, strips everything but letters, digits, spaces and
// hyphens, and collapses runs of whitespace/hyphens to single hyphens.
func Slugify(input string) string {
	lowered := strings.ToLower(strings.TrimSpace(input))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}
