package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gottaspeak/backend/internal/api/dto"
	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/service"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// ConfigHandler serves the site configuration singleton.
type ConfigHandler struct {
	service *service.SiteConfigService
}

// NewConfigHandler constructs handler.
func NewConfigHandler(configService *service.SiteConfigService) *ConfigHandler {
	return &ConfigHandler{service: configService}
}

// GetPublicConfig GET /config.
func (h *ConfigHandler) GetPublicConfig(c *fiber.Ctx) error {
	cfg, err := h.service.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(siteConfigResponse(cfg))
}

// UpdateConfig PATCH /config.
func (h *ConfigHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.UpdateSiteConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	cfg, err := h.service.Update(c.UserContext(), service.SiteConfigUpdateInput{
		SayrightURL:   req.SayrightURL,
		LessonJoinURL: req.LessonJoinURL,
		SupportEmail:  req.SupportEmail,
		Languages:     req.Languages,
	})
	if err != nil {
		return err
	}
	return c.JSON(siteConfigResponse(cfg))
}

func siteConfigResponse(cfg *domain.SiteConfig) dto.SiteConfigResponse {
	return dto.SiteConfigResponse{
		SayrightURL:   cfg.SayrightURL,
		LessonJoinURL: cfg.LessonJoinURL,
		SupportEmail:  cfg.SupportEmail,
		Languages:     cfg.Languages,
	}
}
