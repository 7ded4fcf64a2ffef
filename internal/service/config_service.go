package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

const (
	siteConfigCacheKey = "site_config"
	siteConfigCacheTTL = time.Minute
)

// SiteConfigService serves the singleton site configuration with a Redis
// read-through cache; the join path reads it on every request.
type SiteConfigService struct {
	repo   repository.SiteConfigRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewSiteConfigService constructs the service. cache may be nil.
func NewSiteConfigService(repo repository.SiteConfigRepository, cache *redis.Client, logger *zap.Logger) *SiteConfigService {
	return &SiteConfigService{repo: repo, cache: cache, logger: logger}
}

// SiteConfigUpdateInput carries partial updates; nil fields are left alone.
type SiteConfigUpdateInput struct {
	SayrightURL   *string
	LessonJoinURL *string
	SupportEmail  *string
	Languages     []string
}

// Get returns the current site configuration, cached for up to a minute.
func (s *SiteConfigService) Get(ctx context.Context) (*domain.SiteConfig, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, siteConfigCacheKey).Bytes()
		if err == nil {
			var cfg domain.SiteConfig
			if err := json.Unmarshal(raw, &cfg); err == nil {
				return &cfg, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("site config cache read failed", zap.Error(err))
		}
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.fillCache(ctx, cfg)
	return cfg, nil
}

// Update applies a partial update and invalidates the cache.
func (s *SiteConfigService) Update(ctx context.Context, input SiteConfigUpdateInput) (*domain.SiteConfig, error) {
	if input.SayrightURL != nil && !validHTTPURL(*input.SayrightURL) {
		return nil, apperrors.NewValidationError("sayrightUrl must be a valid URL", nil)
	}
	if input.LessonJoinURL != nil && !validHTTPURL(*input.LessonJoinURL) {
		return nil, apperrors.NewValidationError("lessonJoinUrl must be a valid URL", nil)
	}
	if input.SupportEmail != nil && !strings.Contains(*input.SupportEmail, "@") {
		return nil, apperrors.NewValidationError("supportEmail must be a valid email", nil)
	}
	if input.Languages != nil && len(input.Languages) == 0 {
		return nil, apperrors.NewValidationError("languages must not be empty", nil)
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if input.SayrightURL != nil {
		cfg.SayrightURL = *input.SayrightURL
	}
	if input.LessonJoinURL != nil {
		cfg.LessonJoinURL = *input.LessonJoinURL
	}
	if input.SupportEmail != nil {
		cfg.SupportEmail = *input.SupportEmail
	}
	if input.Languages != nil {
		cfg.Languages = input.Languages
	}

	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, siteConfigCacheKey).Err(); err != nil {
			s.logger.Warn("site config cache invalidation failed", zap.Error(err))
		}
	}
	return cfg, nil
}

// LessonJoinURL returns the configured base meeting URL, falling back to the
// public default when unset or unreadable.
func (s *SiteConfigService) LessonJoinURL(ctx context.Context) string {
	cfg, err := s.Get(ctx)
	if err != nil || cfg.LessonJoinURL == "" {
		return domain.DefaultLessonJoinURL
	}
	return cfg.LessonJoinURL
}

func (s *SiteConfigService) fillCache(ctx context.Context, cfg *domain.SiteConfig) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, siteConfigCacheKey, raw, siteConfigCacheTTL).Err(); err != nil {
		s.logger.Warn("site config cache write failed", zap.Error(err))
	}
}

func validHTTPURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
