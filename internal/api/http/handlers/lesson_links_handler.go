package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// LessonLinksHandler exposes standalone lesson link endpoints.
type LessonLinksHandler struct {
	links *service.LessonLinkService
}

// NewLessonLinksHandler constructs handler.
func NewLessonLinksHandler(links *service.LessonLinkService) *LessonLinksHandler {
	return &LessonLinksHandler{links: links}
}

// CreateLessonLink POST /lessons.
func (h *LessonLinksHandler) CreateLessonLink(c *fiber.Ctx) error {
	var req dto.CreateLessonLinkRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	link, err := h.links.CreateLessonLink(c.UserContext(), service.LessonLinkCreateInput{
		TeacherID:   req.TeacherID,
		StudentID:   req.StudentID,
		DisplayName: req.DisplayName,
		TTLMinutes:  req.TTLMinutes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(lessonLinkResponse(link))
}

// GetLessonLink GET /lessons/:room.
func (h *LessonLinksHandler) GetLessonLink(c *fiber.Ctx) error {
	link, err := h.links.GetLessonLink(c.UserContext(), c.Params("room"))
	if err != nil {
		return err
	}
	return c.JSON(lessonLinkResponse(link))
}

func lessonLinkResponse(link *domain.LessonLink) dto.LessonLinkResponse {
	return dto.LessonLinkResponse{
		Room:      link.Room,
		URL:       link.URL,
		ExpiresAt: link.ExpiresAt,
	}
}
