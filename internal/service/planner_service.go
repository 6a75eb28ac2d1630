package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/wardrobe-planner-api/internal/dto"
	"github.com/noah-isme/wardrobe-planner-api/internal/gateway"
	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

type planRepository interface {
	Save(ctx context.Context, plan *models.WeeklyPlan) error
	FindByID(ctx context.Context, id string) (*models.WeeklyPlan, error)
	ListByUser(ctx context.Context, userID string) ([]models.WeeklyPlan, error)
	Delete(ctx context.Context, id string) error
}

type plannerWardrobeReader interface {
	ListAll(ctx context.Context, userID string) ([]models.WardrobeItem, error)
}

type plannerOutfitWriter interface {
	Create(ctx context.Context, outfit *models.Outfit) error
}

type planSession struct {
	ID        string
	UserID    string
	Plan      models.WeeklyPlan
	UpdatedAt time.Time
}

type planStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]planSession
}

func newPlanStore(ttl time.Duration) *planStore {
	return &planStore{
		ttl:   ttl,
		items: make(map[string]planSession),
	}
}

func (s *planStore) Save(session planSession) planSession {
	session.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.ID] = session
	return session
}

func (s *planStore) Get(id string) (planSession, bool) {
	s.mu.RLock()
	session, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return planSession{}, false
	}
	if time.Since(session.UpdatedAt) > s.ttl {
		s.Delete(id)
		return planSession{}, false
	}
	return session, true
}

func (s *planStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// PlannerServiceConfig tunes planning behaviour.
type PlannerServiceConfig struct {
	SessionTTL        time.Duration
	DefaultPlanLength int
	DefaultOccasion   string
	DefaultCreativity float64
	Location          string
}

// PlannerService owns weekly plan sessions and orchestrates batched outfit
// generation against the recommendation gateway. At most one generation
// batch is in flight across the whole service; a second request is rejected
// rather than queued.
type PlannerService struct {
	plans     planRepository
	wardrobe  plannerWardrobeReader
	outfits   plannerOutfitWriter
	gateway   gateway.RecommendationGateway
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	store     *planStore
	cfg       PlannerServiceConfig

	generating atomic.Bool
}

// NewPlannerService wires planner dependencies.
func NewPlannerService(
	plans planRepository,
	wardrobe plannerWardrobeReader,
	outfits plannerOutfitWriter,
	gw gateway.RecommendationGateway,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	cfg PlannerServiceConfig,
) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	if cfg.DefaultPlanLength <= 0 {
		cfg.DefaultPlanLength = 7
	}
	if cfg.DefaultOccasion == "" {
		cfg.DefaultOccasion = "casual"
	}
	if cfg.DefaultCreativity <= 0 || cfg.DefaultCreativity > 1 {
		cfg.DefaultCreativity = 0.5
	}
	return &PlannerService{
		plans:     plans,
		wardrobe:  wardrobe,
		outfits:   outfits,
		gateway:   gw,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		store:     newPlanStore(cfg.SessionTTL),
		cfg:       cfg,
	}
}

// Initialize builds a fresh in-memory plan and opens a session for it.
func (s *PlannerService) Initialize(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}
	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be formatted as "+models.DateLayout)
	}

	numDays := req.NumDays
	if numDays <= 0 {
		numDays = s.cfg.DefaultPlanLength
	}
	occasion := req.Occasion
	if occasion == "" {
		occasion = s.cfg.DefaultOccasion
	}
	name := req.Name
	if name == "" {
		name = "Week of " + req.StartDate
	}

	session := planSession{
		ID:     uuid.NewString(),
		UserID: req.UserID,
		Plan:   models.NewWeeklyPlan(req.UserID, name, start, numDays, occasion),
	}
	session = s.store.Save(session)
	return s.planResponse(session), nil
}

// State returns the session's current plan value.
func (s *PlannerService) State(ctx context.Context, sessionID string) (*dto.PlanSessionResponse, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	return s.planResponse(session), nil
}

// SetOccasion updates one day's occasion, leaving lock and outfit alone.
func (s *PlannerService) SetOccasion(ctx context.Context, sessionID string, req dto.SetOccasionRequest) (*dto.PlanSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid occasion payload")
	}
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	if session.Plan.Day(req.Date) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "date outside plan range")
	}

	session.Plan = session.Plan.WithOccasion(req.Date, req.Occasion)
	session = s.store.Save(session)
	return s.planResponse(session), nil
}

// ToggleLock flips one day's lock flag.
func (s *PlannerService) ToggleLock(ctx context.Context, sessionID string, req dto.ToggleLockRequest) (*dto.PlanSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lock payload")
	}
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	if session.Plan.Day(req.Date) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "date outside plan range")
	}

	session.Plan = session.Plan.ToggleLock(req.Date)
	session = s.store.Save(session)
	return s.planResponse(session), nil
}

// Generate runs one batched recommendation call for the unlocked target
// days. Lock state is re-read when the response is applied, so a day locked
// while the call was outstanding keeps its frozen outfit and the stale
// result is dropped.
func (s *PlannerService) Generate(ctx context.Context, sessionID string, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}

	targets := session.Plan.Targets(req.Dates)
	if len(targets) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no unlocked days to generate for")
	}

	if !s.generating.CompareAndSwap(false, true) {
		s.metrics.GenerationCompleted("rejected")
		return nil, appErrors.ErrGenerationInProgress
	}
	defer s.generating.Store(false)

	snapshot, err := s.wardrobe.ListAll(ctx, session.UserID)
	if err != nil {
		s.metrics.GenerationCompleted("gateway_error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load wardrobe snapshot")
	}

	creativity := s.cfg.DefaultCreativity
	if req.Creativity != nil {
		creativity = *req.Creativity
	}

	result, err := s.gateway.Generate(ctx, gateway.GenerateRequest{
		Location:   s.cfg.Location,
		Targets:    targets,
		Wardrobe:   snapshot,
		Creativity: creativity,
	})
	if err != nil {
		s.metrics.GenerationCompleted("gateway_error")
		s.logger.Sugar().Warnw("generation batch failed", "session", sessionID, "targets", len(targets), "error", err)
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayFailure.Code, appErrors.ErrGatewayFailure.Status, appErrors.ErrGatewayFailure.Message)
	}

	// Reload the session: locks may have moved while the call was in flight.
	session, ok = s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}

	itemsByID := make(map[string]models.WardrobeItem, len(snapshot))
	for _, item := range snapshot {
		itemsByID[item.ID] = item
	}

	report := dto.GenerationReport{
		Applied:          []string{},
		Discarded:        []string{},
		NoRecommendation: []string{},
	}
	plan := session.Plan
	for _, target := range targets {
		candidates, found := result.Recommendations[target.Date]
		if !found || len(candidates) == 0 {
			report.NoRecommendation = append(report.NoRecommendation, target.Date)
			continue
		}
		day := plan.Day(target.Date)
		if day == nil {
			continue
		}
		if day.Locked {
			s.metrics.StaleResponseDiscarded()
			report.Discarded = append(report.Discarded, target.Date)
			continue
		}

		outfit := s.candidateOutfit(candidates[0], itemsByID, target)
		if outfit == nil {
			report.NoRecommendation = append(report.NoRecommendation, target.Date)
			continue
		}
		var weather *models.Weather
		if w, ok := result.Weather[target.Date]; ok {
			weather = &w
		}
		plan = plan.WithDayResult(target.Date, outfit, weather)
		report.Applied = append(report.Applied, target.Date)
	}

	session.Plan = plan
	session = s.store.Save(session)
	s.metrics.GenerationCompleted("applied")
	return &dto.GeneratePlanResponse{Plan: plan, Report: report}, nil
}

// candidateOutfit assembles the top candidate into an unsaved outfit. Items
// are placed through the draft so slot rules apply to gateway output too;
// unknown or unmapped ids are skipped.
func (s *PlannerService) candidateOutfit(candidate gateway.Candidate, itemsByID map[string]models.WardrobeItem, target models.GenerationTarget) *models.Outfit {
	draft := models.OutfitDraft{}
	for _, id := range candidate.ItemIDs {
		item, ok := itemsByID[id]
		if !ok {
			continue
		}
		next, err := draft.Place(item)
		if err != nil {
			continue
		}
		draft = next
	}
	if draft.IsEmpty() {
		return nil
	}
	name := fmt.Sprintf("%s %s", target.Occasion, target.Date)
	outfit, err := models.SerializeDraft(draft, name, "")
	if err != nil {
		return nil
	}
	return outfit
}

// Save persists the plan wholesale. Only locked days keep their outfit in
// the stored form; unlocked candidates are suggestions, not selections.
func (s *PlannerService) Save(ctx context.Context, sessionID string) (*dto.PlanSessionResponse, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}

	persistable := session.Plan
	days := make([]models.DayPlan, len(persistable.Days))
	copy(days, persistable.Days)
	for i := range days {
		if !days[i].Locked {
			days[i].Outfit = nil
			continue
		}
		if days[i].Outfit != nil && days[i].Outfit.ID == "" {
			// Candidate outfits exist only in memory until a locked day is saved.
			outfit := *days[i].Outfit
			outfit.UserID = session.UserID
			if err := s.outfits.Create(ctx, &outfit); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist locked outfit")
			}
			days[i].Outfit = &outfit
		}
	}
	persistable.Days = days

	if err := s.plans.Save(ctx, &persistable); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save plan")
	}

	// Keep in-memory candidates on unlocked days; only the id is new.
	session.Plan.ID = persistable.ID
	for i := range session.Plan.Days {
		if session.Plan.Days[i].Locked {
			session.Plan.Days[i].Outfit = persistable.Days[i].Outfit
		}
	}
	session = s.store.Save(session)
	return s.planResponse(session), nil
}

// Load rehydrates a persisted plan into a new session. Days holding a saved
// outfit come back locked until explicitly unlocked.
func (s *PlannerService) Load(ctx context.Context, planID string) (*dto.PlanSessionResponse, error) {
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plan")
	}

	session := planSession{
		ID:     uuid.NewString(),
		UserID: plan.UserID,
		Plan:   *plan,
	}
	session = s.store.Save(session)
	return s.planResponse(session), nil
}

// List returns plan summaries for a user.
func (s *PlannerService) List(ctx context.Context, userID string) ([]models.WeeklyPlan, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plans")
	}
	return plans, nil
}

// Delete removes a persisted plan.
func (s *PlannerService) Delete(ctx context.Context, planID string) error {
	if err := s.plans.Delete(ctx, planID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete plan")
	}
	return nil
}

// Discard drops an in-memory session without touching persisted state.
func (s *PlannerService) Discard(ctx context.Context, sessionID string) {
	s.store.Delete(sessionID)
}

func (s *PlannerService) planResponse(session planSession) *dto.PlanSessionResponse {
	return &dto.PlanSessionResponse{
		SessionID: session.ID,
		Plan:      session.Plan,
		ExpiresAt: session.UpdatedAt.Add(s.store.ttl),
	}
}
