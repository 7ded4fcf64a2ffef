package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/service"
)

// CoursesHandler serves lesson content from the course catalog source.
type CoursesHandler struct {
	service *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courseService *service.CourseService) *CoursesHandler {
	return &CoursesHandler{service: courseService}
}

// GetLesson GET /courses/:level/units/:unit/lessons/:lesson.
func (h *CoursesHandler) GetLesson(c *fiber.Ctx) error {
	lesson, err := h.service.GetLesson(c.UserContext(),
		c.Params("level"), c.Params("unit"), c.Params("lesson"))
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}
