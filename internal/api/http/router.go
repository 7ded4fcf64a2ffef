package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/http/handlers"
	"github.com/gottaspeak/backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Sessions   *handlers.SessionsHandler
	Materials  *handlers.MaterialsHandler
	Notes      *handlers.NotesHandler
	Progress   *handlers.ProgressHandler
	Messages   *handlers.MessagesHandler
	Contact    *handlers.ContactHandler
	Lessons    *handlers.LessonLinksHandler
	Config     *handlers.ConfigHandler
	Courses    *handlers.CoursesHandler
	AdminGuard *auth.AdminGuard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	sessions := app.Group("/sessions")
	sessions.Post("/", cfg.Sessions.CreateSession)
	sessions.Get("/", cfg.Sessions.ListSessions)
	sessions.Post("/invite", cfg.Sessions.CreateInvite)
	sessions.Get("/:id", cfg.Sessions.GetSession)
	sessions.Get("/:id/join", cfg.Sessions.JoinWithToken)
	sessions.Post("/:id/join", cfg.Sessions.JoinAuthenticated)

	materials := app.Group("/materials")
	materials.Get("/", cfg.Materials.ListMaterials)
	materials.Get("/:type/:slug", cfg.Materials.GetMaterial)
	materials.Post("/", cfg.AdminGuard.Handle, cfg.Materials.CreateMaterial)
	materials.Patch("/:id", cfg.AdminGuard.Handle, cfg.Materials.UpdateMaterial)
	materials.Delete("/:id", cfg.AdminGuard.Handle, cfg.Materials.DeleteMaterial)

	notes := app.Group("/notes")
	notes.Get("/", cfg.Notes.ListNotes)
	notes.Post("/", cfg.Notes.CreateNote)
	notes.Patch("/:id", cfg.Notes.UpdateNote)
	notes.Delete("/:id", cfg.Notes.DeleteNote)

	progress := app.Group("/progress")
	progress.Get("/", cfg.Progress.ListProgress)
	progress.Post("/", cfg.Progress.RecordProgress)
	progress.Get("/:materialId", cfg.Progress.GetProgress)

	messages := app.Group("/messages")
	messages.Get("/", cfg.Messages.ListMessages)
	messages.Post("/", cfg.Messages.CreateMessage)

	lessons := app.Group("/lessons")
	lessons.Post("/", cfg.AdminGuard.Handle, cfg.Lessons.CreateLessonLink)
	lessons.Get("/:room", cfg.Lessons.GetLessonLink)

	app.Post("/contact", cfg.Contact.SendContactMessage)

	app.Get("/config", cfg.Config.GetPublicConfig)
	app.Patch("/config", cfg.AdminGuard.Handle, cfg.Config.UpdateConfig)

	app.Get("/courses/:level/units/:unit/lessons/:lesson", cfg.Courses.GetLesson)
}
