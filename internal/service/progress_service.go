package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/repository"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

// ProgressService tracks per-(user, material) study progress.
type ProgressService struct {
	progress repository.ProgressRepository
}

// NewProgressService constructs the service.
func NewProgressService(progress repository.ProgressRepository) *ProgressService {
	return &ProgressService{progress: progress}
}

// ProgressUpsertInput describes a progress update. Upserts are keyed by
// (userId, materialId).
type ProgressUpsertInput struct {
	UserID     string
	MaterialID string
	Status     *domain.ProgressStatus
	Difficulty *domain.ProgressDifficulty
}

// RecordProgress validates and upserts a progress record.
func (s *ProgressService) RecordProgress(ctx context.Context, input ProgressUpsertInput) (*domain.Progress, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	if _, err := uuid.Parse(input.MaterialID); err != nil {
		return nil, apperrors.NewValidationError("invalid material id", nil)
	}

	status := domain.ProgressInProgress
	if input.Status != nil {
		if !domain.ValidProgressStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid progress status", nil)
		}
		status = *input.Status
	}
	difficulty := domain.DifficultyMedium
	if input.Difficulty != nil {
		if !domain.ValidProgressDifficulty(*input.Difficulty) {
			return nil, apperrors.NewValidationError("invalid difficulty", nil)
		}
		difficulty = *input.Difficulty
	}

	record := &domain.Progress{
		UserID:     input.UserID,
		MaterialID: input.MaterialID,
		Status:     status,
		Difficulty: difficulty,
	}
	if err := s.progress.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetProgress fetches one record by (user, material).
func (s *ProgressService) GetProgress(ctx context.Context, userID, materialID string) (*domain.Progress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	if _, err := uuid.Parse(materialID); err != nil {
		return nil, apperrors.NewValidationError("invalid material id", nil)
	}
	record, err := s.progress.GetByUserMaterial(ctx, userID, materialID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("progress", nil)
		}
		return nil, err
	}
	return record, nil
}

// ListProgress returns all of a user's records, most recently visited first.
func (s *ProgressService) ListProgress(ctx context.Context, userID string) ([]domain.Progress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	return s.progress.ListByUser(ctx, userID)
}
