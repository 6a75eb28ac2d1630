package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wardrobe-planner-api/internal/dto"
	internalmiddleware "github.com/noah-isme/wardrobe-planner-api/internal/middleware"
	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

type wardrobeServiceStub struct{}

func (s *wardrobeServiceStub) List(_ context.Context, filter models.WardrobeFilter) ([]models.WardrobeItem, *models.Pagination, error) {
	if filter.UserID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "userId required")
	}
	items := []models.WardrobeItem{{ID: "w1", UserID: filter.UserID, Name: "Grey hoodie", Category: "hoodie"}}
	return items, &models.Pagination{Page: 1, PageSize: 50, TotalCount: 1}, nil
}

func (s *wardrobeServiceStub) Grouped(_ context.Context, userID string) (*models.SlottedWardrobe, bool, error) {
	if userID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "userId required")
	}
	grouped := models.GroupBySlot([]models.WardrobeItem{{ID: "w1", Category: "hoodie"}})
	return &grouped, true, nil
}

type plannerServiceStub struct {
	sessions map[string]*dto.PlanSessionResponse
}

func (s *plannerServiceStub) session(id string) *dto.PlanSessionResponse {
	return &dto.PlanSessionResponse{
		SessionID: id,
		Plan: models.WeeklyPlan{
			UserID:    "u1",
			Name:      "Week of 2026-03-02",
			StartDate: "2026-03-02",
			EndDate:   "2026-03-08",
		},
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
}

func (s *plannerServiceStub) Initialize(_ context.Context, req dto.CreatePlanRequest) (*dto.PlanSessionResponse, error) {
	if req.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	sess := s.session("sess-1")
	s.sessions[sess.SessionID] = sess
	return sess, nil
}

func (s *plannerServiceStub) State(_ context.Context, sessionID string) (*dto.PlanSessionResponse, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	return sess, nil
}

func (s *plannerServiceStub) SetOccasion(_ context.Context, sessionID string, _ dto.SetOccasionRequest) (*dto.PlanSessionResponse, error) {
	return s.State(context.Background(), sessionID)
}

func (s *plannerServiceStub) ToggleLock(_ context.Context, sessionID string, _ dto.ToggleLockRequest) (*dto.PlanSessionResponse, error) {
	return s.State(context.Background(), sessionID)
}

func (s *plannerServiceStub) Generate(_ context.Context, sessionID string, _ dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	return &dto.GeneratePlanResponse{
		Plan:   sess.Plan,
		Report: dto.GenerationReport{Applied: []string{"2026-03-02"}, Discarded: []string{}, NoRecommendation: []string{}},
	}, nil
}

func (s *plannerServiceStub) Save(_ context.Context, sessionID string) (*dto.PlanSessionResponse, error) {
	return s.State(context.Background(), sessionID)
}

func (s *plannerServiceStub) Load(_ context.Context, planID string) (*dto.PlanSessionResponse, error) {
	if planID != "p1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
	}
	sess := s.session("sess-2")
	s.sessions[sess.SessionID] = sess
	return sess, nil
}

func (s *plannerServiceStub) List(_ context.Context, userID string) ([]models.WeeklyPlan, error) {
	return []models.WeeklyPlan{{ID: "p1", UserID: userID}}, nil
}

func (s *plannerServiceStub) Delete(_ context.Context, planID string) error {
	if planID != "p1" {
		return appErrors.Clone(appErrors.ErrNotFound, "plan not found")
	}
	return nil
}

func (s *plannerServiceStub) Discard(_ context.Context, sessionID string) {
	delete(s.sessions, sessionID)
}

func buildPlannerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(internalmiddleware.WithResponseMeta())

	wardrobe := NewWardrobeHandler(&wardrobeServiceStub{})
	plans := NewPlanHandler(&plannerServiceStub{sessions: make(map[string]*dto.PlanSessionResponse)})

	router.GET("/wardrobe", wardrobe.List)
	router.GET("/wardrobe/grouped", wardrobe.Grouped)

	sessions := router.Group("/plans/sessions")
	{
		sessions.POST("", plans.Create)
		sessions.GET("/:id", plans.State)
		sessions.POST("/:id/generate", plans.Generate)
		sessions.DELETE("/:id", plans.Discard)
	}
	router.GET("/plans", plans.List)
	router.POST("/plans/:id/open", plans.Open)
	router.DELETE("/plans/:id", plans.Delete)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPlannerRoutesIntegration(t *testing.T) {
	router := buildPlannerRouter()

	t.Run("wardrobe list success", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/wardrobe?userId=u1", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"Grey hoodie"`)
		require.Contains(t, resp.Body.String(), `"pagination"`)
	})

	t.Run("wardrobe list missing user", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/wardrobe", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("wardrobe grouped reports cache hit", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/wardrobe/grouped?userId=u1", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"cache_hit":true`)
	})

	t.Run("plan session lifecycle", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/plans/sessions", bytes.NewBufferString(`{"userId":"u1","startDate":"2026-03-02"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)
		require.Contains(t, resp.Body.String(), `"sessionId":"sess-1"`)
		require.Contains(t, resp.Body.String(), `"session_expires_at"`)

		req, _ = http.NewRequest(http.MethodGet, "/plans/sessions/sess-1", nil)
		resp = performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)

		req, _ = http.NewRequest(http.MethodPost, "/plans/sessions/sess-1/generate", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp = performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"applied":["2026-03-02"]`)

		req, _ = http.NewRequest(http.MethodDelete, "/plans/sessions/sess-1", nil)
		resp = performRequest(router, req)
		require.Equal(t, http.StatusNoContent, resp.Code)

		req, _ = http.NewRequest(http.MethodGet, "/plans/sessions/sess-1", nil)
		resp = performRequest(router, req)
		require.Equal(t, http.StatusGone, resp.Code)
	})

	t.Run("plan create invalid payload", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/plans/sessions", bytes.NewBufferString(`not json`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("open persisted plan", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/plans/p1/open", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)
		require.Contains(t, resp.Body.String(), `"sessionId":"sess-2"`)
	})

	t.Run("open unknown plan", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/plans/missing/open", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("delete plan", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/plans/p1", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNoContent, resp.Code)
	})
}
