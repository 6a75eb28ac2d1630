package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

type wardrobeRepository interface {
	List(ctx context.Context, filter models.WardrobeFilter) ([]models.WardrobeItem, int, error)
	ListAll(ctx context.Context, userID string) ([]models.WardrobeItem, error)
}

// WardrobeServiceConfig tunes wardrobe view caching.
type WardrobeServiceConfig struct {
	CacheTTL time.Duration
}

// WardrobeService reads the catalogue and serves the slot-grouped view the
// composer UI renders. Items without a slot mapping are reported in an
// explicit unmapped bucket.
type WardrobeService struct {
	repo   wardrobeRepository
	cache  *CacheService
	logger *zap.Logger
	cfg    WardrobeServiceConfig
}

// NewWardrobeService constructs a WardrobeService.
func NewWardrobeService(repo wardrobeRepository, cache *CacheService, logger *zap.Logger, cfg WardrobeServiceConfig) *WardrobeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WardrobeService{repo: repo, cache: cache, logger: logger, cfg: cfg}
}

// List returns wardrobe items with pagination metadata.
func (s *WardrobeService) List(ctx context.Context, filter models.WardrobeFilter) ([]models.WardrobeItem, *models.Pagination, error) {
	if filter.UserID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list wardrobe")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 100
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Grouped returns the slot-partitioned wardrobe view, cached per user. The
// boolean reports whether the view came from cache.
func (s *WardrobeService) Grouped(ctx context.Context, userID string) (*models.SlottedWardrobe, bool, error) {
	if userID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}

	key := groupedWardrobeKey(userID)
	var cached models.SlottedWardrobe
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	items, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load wardrobe")
	}

	grouped := models.GroupBySlot(items)
	s.cache.Set(ctx, key, grouped, s.cfg.CacheTTL)
	return &grouped, false, nil
}

// InvalidateGrouped drops cached views after a catalogue write.
func (s *WardrobeService) InvalidateGrouped(ctx context.Context, userID string) {
	s.cache.Invalidate(ctx, groupedWardrobeKey(userID))
}

func groupedWardrobeKey(userID string) string {
	return fmt.Sprintf("wardrobe:grouped:%s", userID)
}
