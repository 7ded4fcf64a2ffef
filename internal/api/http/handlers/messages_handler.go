package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// MessagesHandler manages per-user message log endpoints.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// CreateMessage POST /messages.
func (h *MessagesHandler) CreateMessage(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	message, err := h.service.CreateMessage(c.UserContext(), service.MessageCreateInput{
		UserID:    req.UserID,
		Text:      req.Text,
		Direction: req.Direction,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(messageResponse(message))
}

// ListMessages GET /messages?userId=.
func (h *MessagesHandler) ListMessages(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 100)
	messages, err := h.service.ListMessages(c.UserContext(), c.Query("userId"), limit, (page-1)*limit)
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, messageResponse(&messages[i]))
	}
	return c.JSON(items)
}

func messageResponse(message *domain.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        message.ID,
		UserID:    message.UserID,
		Text:      message.Text,
		Direction: message.Direction,
		CreatedAt: message.CreatedAt,
	}
}
