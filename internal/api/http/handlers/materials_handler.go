package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// MaterialsHandler manages learning material endpoints.
type MaterialsHandler struct {
	service *service.MaterialService
}

// NewMaterialsHandler constructs handler.
func NewMaterialsHandler(materialService *service.MaterialService) *MaterialsHandler {
	return &MaterialsHandler{service: materialService}
}

// ListMaterials GET /materials.
func (h *MaterialsHandler) ListMaterials(c *fiber.Ctx) error {
	input := service.MaterialListInput{
		Page:    parseInt(c.Query("page"), 1),
		Limit:   parseInt(c.Query("limit"), 20),
		SortBy:  c.Query("sortBy", "createdAt"),
		SortAsc: strings.EqualFold(c.Query("sortDir"), "asc"),
	}
	if t := c.Query("type"); t != "" {
		mt := domain.MaterialType(t)
		input.Type = &mt
	}
	if search := c.Query("search"); search != "" {
		input.Search = &search
	}

	page, err := h.service.ListMaterials(c.UserContext(), input)
	if err != nil {
		return err
	}

	items := make([]dto.MaterialResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, materialResponse(&page.Items[i]))
	}
	sortDir := "desc"
	if input.SortAsc {
		sortDir = "asc"
	}
	return c.JSON(dto.MaterialPageResponse{
		Items:      items,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		SortBy:     input.SortBy,
		SortDir:    sortDir,
	})
}

// GetMaterial GET /materials/:type/:slug.
func (h *MaterialsHandler) GetMaterial(c *fiber.Ctx) error {
	material, err := h.service.GetMaterial(c.UserContext(),
		domain.MaterialType(c.Params("type")), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(materialResponse(material))
}

// CreateMaterial POST /materials.
func (h *MaterialsHandler) CreateMaterial(c *fiber.Ctx) error {
	var req dto.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	material, err := h.service.CreateMaterial(c.UserContext(), service.MaterialCreateInput{
		Title:       req.Title,
		Type:        req.Type,
		Slug:        req.Slug,
		Kind:        req.Kind,
		Order:       req.Order,
		Sections:    req.Sections,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(materialResponse(material))
}

// UpdateMaterial PATCH /materials/:id.
func (h *MaterialsHandler) UpdateMaterial(c *fiber.Ctx) error {
	var req dto.UpdateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	material, err := h.service.UpdateMaterial(c.UserContext(), c.Params("id"), service.MaterialUpdateInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Kind:        req.Kind,
		Order:       req.Order,
		Sections:    req.Sections,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}
	return c.JSON(materialResponse(material))
}

// DeleteMaterial DELETE /materials/:id.
func (h *MaterialsHandler) DeleteMaterial(c *fiber.Ctx) error {
	if err := h.service.DeleteMaterial(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func materialResponse(material *domain.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:          material.ID,
		Title:       material.Title,
		Type:        material.Type,
		Slug:        material.Slug,
		Kind:        material.Kind,
		Order:       material.Order,
		Sections:    material.Sections,
		Tags:        material.Tags,
		IsPublished: material.IsPublished,
		CreatedAt:   material.CreatedAt,
		UpdatedAt:   material.UpdatedAt,
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
