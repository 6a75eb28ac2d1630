package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

type cacheRepoStub struct {
	entries map[string][]byte
	deleted []string
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{entries: map[string][]byte{}}
}

func (s *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = raw
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.deleted = append(s.deleted, pattern)
	for key := range s.entries {
		delete(s.entries, key)
	}
	return nil
}

type wardrobeListRepoStub struct {
	items []models.WardrobeItem
	calls int
}

func (s *wardrobeListRepoStub) List(ctx context.Context, filter models.WardrobeFilter) ([]models.WardrobeItem, int, error) {
	return s.items, len(s.items), nil
}

func (s *wardrobeListRepoStub) ListAll(ctx context.Context, userID string) ([]models.WardrobeItem, error) {
	s.calls++
	return s.items, nil
}

func TestWardrobeListRequiresUser(t *testing.T) {
	svc := NewWardrobeService(&wardrobeListRepoStub{}, nil, zap.NewNop(), WardrobeServiceConfig{})
	_, _, err := svc.List(context.Background(), models.WardrobeFilter{})
	require.Error(t, err)
}

func TestWardrobeListPagination(t *testing.T) {
	repo := &wardrobeListRepoStub{items: []models.WardrobeItem{garment("tee", "t-shirt")}}
	svc := NewWardrobeService(repo, nil, zap.NewNop(), WardrobeServiceConfig{})

	items, pagination, err := svc.List(context.Background(), models.WardrobeFilter{UserID: "u1", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestWardrobeGroupedUsesCache(t *testing.T) {
	repo := &wardrobeListRepoStub{items: []models.WardrobeItem{
		garment("tee", "t-shirt"),
		garment("umbrella", "umbrella"),
	}}
	cacheRepo := newCacheRepoStub()
	cacheSvc := NewCacheService(cacheRepo, NewMetricsService(), time.Minute, zap.NewNop(), true)
	svc := NewWardrobeService(repo, cacheSvc, zap.NewNop(), WardrobeServiceConfig{CacheTTL: time.Minute})

	grouped, hit, err := svc.Grouped(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, grouped.Slots[models.SlotTop], 1)
	require.Len(t, grouped.Unmapped["umbrella"], 1)
	assert.Equal(t, 1, repo.calls)

	grouped, hit, err = svc.Grouped(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, grouped.Slots[models.SlotTop], 1)
	assert.Equal(t, 1, repo.calls)

	svc.InvalidateGrouped(context.Background(), "u1")
	_, hit, err = svc.Grouped(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, repo.calls)
}

func TestWardrobeGroupedWithoutCache(t *testing.T) {
	repo := &wardrobeListRepoStub{items: []models.WardrobeItem{garment("tee", "t-shirt")}}
	cacheSvc := NewCacheService(nil, NewMetricsService(), time.Minute, zap.NewNop(), false)
	svc := NewWardrobeService(repo, cacheSvc, zap.NewNop(), WardrobeServiceConfig{})

	_, hit, err := svc.Grouped(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = svc.Grouped(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, repo.calls)
}
