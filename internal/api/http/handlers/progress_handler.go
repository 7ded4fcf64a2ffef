package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// ProgressHandler manages study progress endpoints.
type ProgressHandler struct {
	service *service.ProgressService
}

// NewProgressHandler constructs handler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: progressService}
}

// RecordProgress POST /progress.
func (h *ProgressHandler) RecordProgress(c *fiber.Ctx) error {
	var req dto.UpsertProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.service.RecordProgress(c.UserContext(), service.ProgressUpsertInput{
		UserID:     req.UserID,
		MaterialID: req.MaterialID,
		Status:     req.Status,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return err
	}
	return c.JSON(progressResponse(record))
}

// ListProgress GET /progress?userId=.
func (h *ProgressHandler) ListProgress(c *fiber.Ctx) error {
	records, err := h.service.ListProgress(c.UserContext(), c.Query("userId"))
	if err != nil {
		return err
	}
	items := make([]dto.ProgressResponse, 0, len(records))
	for i := range records {
		items = append(items, progressResponse(&records[i]))
	}
	return c.JSON(items)
}

// GetProgress GET /progress/:materialId?userId=.
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	record, err := h.service.GetProgress(c.UserContext(), c.Query("userId"), c.Params("materialId"))
	if err != nil {
		return err
	}
	return c.JSON(progressResponse(record))
}

func progressResponse(record *domain.Progress) dto.ProgressResponse {
	return dto.ProgressResponse{
		ID:            record.ID,
		UserID:        record.UserID,
		MaterialID:    record.MaterialID,
		Status:        record.Status,
		Difficulty:    record.Difficulty,
		LastVisitedAt: record.LastVisitedAt,
	}
}
