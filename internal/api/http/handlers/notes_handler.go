package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// NotesHandler manages learner note endpoints.
type NotesHandler struct {
	service *service.NoteService
}

// NewNotesHandler constructs handler.
func NewNotesHandler(noteService *service.NoteService) *NotesHandler {
	return &NotesHandler{service: noteService}
}

// ListNotes GET /notes?userId=.
func (h *NotesHandler) ListNotes(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 50)
	notes, err := h.service.ListNotes(c.UserContext(), c.Query("userId"), limit, (page-1)*limit)
	if err != nil {
		return err
	}
	items := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, noteResponse(&notes[i]))
	}
	return c.JSON(items)
}

// CreateNote POST /notes.
func (h *NotesHandler) CreateNote(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	note, err := h.service.CreateNote(c.UserContext(), service.NoteCreateInput{
		UserID:     req.UserID,
		MaterialID: req.MaterialID,
		Content:    req.Content,
		IsPinned:   req.IsPinned,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(noteResponse(note))
}

// UpdateNote PATCH /notes/:id.
func (h *NotesHandler) UpdateNote(c *fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	note, err := h.service.UpdateNote(c.UserContext(), c.Query("userId"), c.Params("id"), service.NoteUpdateInput{
		Content:  req.Content,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		return err
	}
	return c.JSON(noteResponse(note))
}

// DeleteNote DELETE /notes/:id.
func (h *NotesHandler) DeleteNote(c *fiber.Ctx) error {
	if err := h.service.DeleteNote(c.UserContext(), c.Query("userId"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func noteResponse(note *domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:         note.ID,
		UserID:     note.UserID,
		MaterialID: note.MaterialID,
		Content:    note.Content,
		IsPinned:   note.IsPinned,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}
