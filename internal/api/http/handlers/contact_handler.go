package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// ContactHandler accepts contact-form submissions.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{service: contactService}
}

// SendContactMessage POST /contact.
func (h *ContactHandler) SendContactMessage(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.SendContactMessage(c.UserContext(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Channel: req.Channel,
	}); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"ok": true})
}
