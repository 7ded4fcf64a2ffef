package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// SessionsHandler manages video-lesson session endpoints.
type SessionsHandler struct {
	sessions *service.SessionService
	invites  *service.InviteService
	joins    *service.JoinService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(sessions *service.SessionService, invites *service.InviteService, joins *service.JoinService) *SessionsHandler {
	return &SessionsHandler{sessions: sessions, invites: invites, joins: joins}
}

// CreateSession POST /sessions.
func (h *SessionsHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.SessionCreateInput{
		CourseLevel: req.CourseLevel,
		Unit:        req.Unit,
		Lesson:      req.Lesson,
		TeacherID:   req.TeacherID,
		DisplayName: req.DisplayName,
		StudentIDs:  req.StudentIDs,
		StartsAt:    req.StartsAt,
		TTLMinutes:  req.TTLMinutes,
	}
	for _, p := range req.Participants {
		input.Participants = append(input.Participants, service.ParticipantInput{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Role:        p.Role,
		})
	}

	session, err := h.sessions.CreateSession(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(createSessionResponse(session))
}

// ListSessions GET /sessions?userId=.
func (h *SessionsHandler) ListSessions(c *fiber.Ctx) error {
	summaries, err := h.sessions.ListSessions(c.UserContext(), c.Query("userId"))
	if err != nil {
		return err
	}
	items := make([]dto.SessionSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, summaryResponse(s))
	}
	return c.JSON(items)
}

// GetSession GET /sessions/:id.
func (h *SessionsHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessions.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sessionDetail(session))
}

// CreateInvite POST /sessions/invite.
func (h *SessionsHandler) CreateInvite(c *fiber.Ctx) error {
	var req dto.CreateInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	invite, err := h.invites.CreateInvite(c.UserContext(), service.InviteCreateInput{
		SessionID:   req.SessionID,
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		TTLMinutes:  req.TTLMinutes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.InviteResponse{
		SessionID:        invite.SessionID,
		Token:            invite.Token,
		Link:             invite.Link,
		ExpiresInMinutes: invite.ExpiresInMinutes,
	})
}

// JoinWithToken GET /sessions/:id/join?t=token.
func (h *SessionsHandler) JoinWithToken(c *fiber.Ctx) error {
	result, err := h.joins.JoinWithToken(c.UserContext(), c.Params("id"), c.Query("t"))
	if err != nil {
		return err
	}
	return c.JSON(joinResponse(result))
}

// JoinAuthenticated POST /sessions/:id/join.
func (h *SessionsHandler) JoinAuthenticated(c *fiber.Ctx) error {
	var req dto.AuthJoinRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	result, err := h.joins.JoinAuthenticated(c.UserContext(), c.Params("id"), req.UserID, req.DisplayName, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(joinResponse(result))
}

func summaryResponse(s service.SessionSummary) dto.SessionSummaryResponse {
	return dto.SessionSummaryResponse{
		ID:          s.ID,
		Room:        s.Room,
		CourseLevel: s.CourseLevel,
		Unit:        s.Unit,
		Lesson:      s.Lesson,
		ExpiresAt:   s.ExpiresAt,
	}
}

func createSessionResponse(session *domain.Session) dto.CreateSessionResponse {
	return dto.CreateSessionResponse{
		SessionSummaryResponse: summaryResponse(service.Summarize(session)),
		Participants:           participantResponses(session.Participants),
	}
}

func sessionDetail(session *domain.Session) dto.SessionDetailResponse {
	return dto.SessionDetailResponse{
		ID:           session.ID,
		Room:         session.Room,
		CourseLevel:  session.CourseLevel,
		Unit:         session.Unit,
		Lesson:       session.Lesson,
		Participants: participantResponses(session.Participants),
		CreatedBy:    session.CreatedBy,
		StartsAt:     session.StartsAt,
		ExpiresAt:    session.ExpiresAt,
		CreatedAt:    session.CreatedAt,
	}
}

func participantResponses(participants []domain.Participant) []dto.ParticipantResponse {
	resp := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, dto.ParticipantResponse{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Role:        p.Role,
		})
	}
	return resp
}

func joinResponse(result *service.JoinResult) dto.JoinResponse {
	return dto.JoinResponse{
		URL: result.URL,
		Session: dto.JoinSessionView{
			ID:          result.Session.ID,
			Room:        result.Session.Room,
			CourseLevel: result.Session.CourseLevel,
			Unit:        result.Session.Unit,
			Lesson:      result.Session.Lesson,
			ExpiresAt:   result.Session.ExpiresAt,
		},
		Me: dto.JoinIdentityView{
			Role:        result.Me.Role,
			DisplayName: result.Me.DisplayName,
			UserID:      result.Me.UserID,
		},
	}
}
