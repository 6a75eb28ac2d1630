package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

type outfitRepository interface {
	FindByID(ctx context.Context, id string) (*models.Outfit, error)
	List(ctx context.Context, filter models.OutfitFilter) ([]models.Outfit, int, error)
	Delete(ctx context.Context, id string) error
}

// OutfitService serves persisted outfits. Creation and replacement go
// through the composer, which is the only writer of outfit contents.
type OutfitService struct {
	repo   outfitRepository
	logger *zap.Logger
}

// NewOutfitService constructs an OutfitService.
func NewOutfitService(repo outfitRepository, logger *zap.Logger) *OutfitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutfitService{repo: repo, logger: logger}
}

// Get loads an outfit by id.
func (s *OutfitService) Get(ctx context.Context, id string) (*models.Outfit, error) {
	outfit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load outfit")
	}
	return outfit, nil
}

// List returns a user's outfits with pagination metadata.
func (s *OutfitService) List(ctx context.Context, filter models.OutfitFilter) ([]models.Outfit, *models.Pagination, error) {
	if filter.UserID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	outfits, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list outfits")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return outfits, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Delete removes an outfit by id.
func (s *OutfitService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete outfit")
	}
	return nil
}
