package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/wardrobe-planner-api/internal/dto"
	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

type composerWardrobeReader interface {
	FindByID(ctx context.Context, id string) (*models.WardrobeItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.WardrobeItem, error)
}

type composerOutfitRepository interface {
	FindByID(ctx context.Context, id string) (*models.Outfit, error)
	Create(ctx context.Context, outfit *models.Outfit) error
	Replace(ctx context.Context, outfit *models.Outfit) error
}

type composerSession struct {
	ID        string
	UserID    string
	OutfitID  string
	Draft     models.OutfitDraft
	UpdatedAt time.Time
}

type draftStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]composerSession
}

func newDraftStore(ttl time.Duration) *draftStore {
	return &draftStore{
		ttl:   ttl,
		items: make(map[string]composerSession),
	}
}

func (s *draftStore) Save(session composerSession) composerSession {
	session.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.ID] = session
	return session
}

func (s *draftStore) Get(id string) (composerSession, bool) {
	s.mu.RLock()
	session, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return composerSession{}, false
	}
	if time.Since(session.UpdatedAt) > s.ttl {
		s.Delete(id)
		return composerSession{}, false
	}
	return session, true
}

func (s *draftStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// ComposerServiceConfig governs editing session behaviour.
type ComposerServiceConfig struct {
	SessionTTL time.Duration
}

// ComposerService owns in-progress outfit drafts. Each session holds one
// draft; every operation replaces the stored draft with a fresh value.
type ComposerService struct {
	wardrobe  composerWardrobeReader
	outfits   composerOutfitRepository
	validator *validator.Validate
	logger    *zap.Logger
	store     *draftStore
}

// NewComposerService wires composer dependencies.
func NewComposerService(wardrobe composerWardrobeReader, outfits composerOutfitRepository, validate *validator.Validate, logger *zap.Logger, cfg ComposerServiceConfig) *ComposerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	return &ComposerService{
		wardrobe:  wardrobe,
		outfits:   outfits,
		validator: validate,
		logger:    logger,
		store:     newDraftStore(cfg.SessionTTL),
	}
}

// StartSession opens an editing session, rehydrated from a persisted outfit
// when an outfit id is provided.
func (s *ComposerService) StartSession(ctx context.Context, req dto.StartComposerSessionRequest) (*dto.ComposerSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid composer session payload")
	}

	session := composerSession{
		ID:     uuid.NewString(),
		UserID: req.UserID,
	}

	if req.OutfitID != "" {
		outfit, err := s.outfits.FindByID(ctx, req.OutfitID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load outfit")
		}
		lookup, err := s.itemLookup(ctx, outfit.ClothingItems)
		if err != nil {
			return nil, err
		}
		session.OutfitID = outfit.ID
		session.Draft = models.DeserializeOutfit(outfit, lookup)
	}

	session = s.store.Save(session)
	return s.sessionResponse(session), nil
}

// Place resolves the item and drops it onto the session's draft.
func (s *ComposerService) Place(ctx context.Context, sessionID string, req dto.PlaceItemRequest) (*dto.ComposerSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid place payload")
	}
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}

	item, err := s.wardrobe.FindByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "wardrobe item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load wardrobe item")
	}

	draft, err := session.Draft.Place(*item)
	if err != nil {
		return nil, err
	}
	session.Draft = draft
	session = s.store.Save(session)
	return s.sessionResponse(session), nil
}

// Remove clears a slot or one member of a multi-valued slot.
func (s *ComposerService) Remove(ctx context.Context, sessionID string, req dto.RemoveItemRequest) (*dto.ComposerSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid remove payload")
	}
	slot := models.Slot(req.Slot)
	if !slot.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown slot "+req.Slot)
	}
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}

	session.Draft = session.Draft.Remove(slot, req.ItemID)
	session = s.store.Save(session)
	return s.sessionResponse(session), nil
}

// UpdateImage applies a cropped image reference to every occurrence of the item.
func (s *ComposerService) UpdateImage(ctx context.Context, sessionID string, req dto.ImageOverrideRequest) (*dto.ComposerSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid image override payload")
	}
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}

	session.Draft = session.Draft.WithImageOverride(req.ItemID, req.ImageRef)
	session = s.store.Save(session)
	return s.sessionResponse(session), nil
}

// State returns the current draft snapshot.
func (s *ComposerService) State(ctx context.Context, sessionID string) (*dto.ComposerSessionResponse, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	return s.sessionResponse(session), nil
}

// Discard drops the session and its draft.
func (s *ComposerService) Discard(ctx context.Context, sessionID string) {
	s.store.Delete(sessionID)
}

// Save serializes the draft, persists it and closes the session. Sessions
// opened from an existing outfit replace it wholesale; fresh sessions create
// a new outfit. A failed save keeps the session open for retry.
func (s *ComposerService) Save(ctx context.Context, sessionID string, req dto.SaveOutfitRequest) (*models.Outfit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}

	outfit, err := models.SerializeDraft(session.Draft, req.Name, req.Gender)
	if err != nil {
		return nil, err
	}
	outfit.UserID = session.UserID

	if session.OutfitID != "" {
		outfit.ID = session.OutfitID
		if err := s.outfits.Replace(ctx, outfit); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "outfit no longer exists")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace outfit")
		}
	} else {
		if err := s.outfits.Create(ctx, outfit); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create outfit")
		}
	}

	s.store.Delete(sessionID)
	return outfit, nil
}

func (s *ComposerService) itemLookup(ctx context.Context, ids []string) (models.ItemLookup, error) {
	items, err := s.wardrobe.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load wardrobe items")
	}
	byID := make(map[string]models.WardrobeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return func(id string) (models.WardrobeItem, bool) {
		item, ok := byID[id]
		return item, ok
	}, nil
}

func (s *ComposerService) sessionResponse(session composerSession) *dto.ComposerSessionResponse {
	return &dto.ComposerSessionResponse{
		SessionID: session.ID,
		Draft:     session.Draft,
		Empty:     session.Draft.IsEmpty(),
		ExpiresAt: session.UpdatedAt.Add(s.store.ttl),
	}
}
