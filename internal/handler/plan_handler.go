package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wardrobe-planner-api/internal/dto"
	"github.com/noah-isme/wardrobe-planner-api/internal/middleware"
	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
	"github.com/noah-isme/wardrobe-planner-api/pkg/response"
)

type plannerService interface {
	Initialize(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanSessionResponse, error)
	State(ctx context.Context, sessionID string) (*dto.PlanSessionResponse, error)
	SetOccasion(ctx context.Context, sessionID string, req dto.SetOccasionRequest) (*dto.PlanSessionResponse, error)
	ToggleLock(ctx context.Context, sessionID string, req dto.ToggleLockRequest) (*dto.PlanSessionResponse, error)
	Generate(ctx context.Context, sessionID string, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
	Save(ctx context.Context, sessionID string) (*dto.PlanSessionResponse, error)
	Load(ctx context.Context, planID string) (*dto.PlanSessionResponse, error)
	List(ctx context.Context, userID string) ([]models.WeeklyPlan, error)
	Delete(ctx context.Context, planID string) error
	Discard(ctx context.Context, sessionID string)
}

// PlanHandler exposes weekly planning endpoints.
type PlanHandler struct {
	service plannerService
}

// NewPlanHandler constructs the handler.
func NewPlanHandler(service plannerService) *PlanHandler {
	return &PlanHandler{service: service}
}

// Create godoc
// @Summary Open a weekly planning session
// @Tags Plans
// @Accept json
// @Produce json
// @Param payload body dto.CreatePlanRequest true "Plan payload"
// @Success 201 {object} response.Envelope
// @Router /plans/sessions [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid plan payload"))
		return
	}
	session, err := h.service.Initialize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusCreated, session, nil, middleware.ExtractMeta(c))
}

// State godoc
// @Summary Current plan for a session
// @Tags Plans
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /plans/sessions/{id} [get]
func (h *PlanHandler) State(c *gin.Context) {
	session, err := h.service.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// SetOccasion godoc
// @Summary Change one day's occasion
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetOccasionRequest true "Occasion payload"
// @Success 200 {object} response.Envelope
// @Router /plans/sessions/{id}/occasion [post]
func (h *PlanHandler) SetOccasion(c *gin.Context) {
	var req dto.SetOccasionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid occasion payload"))
		return
	}
	session, err := h.service.SetOccasion(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// ToggleLock godoc
// @Summary Toggle one day's lock
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ToggleLockRequest true "Lock payload"
// @Success 200 {object} response.Envelope
// @Router /plans/sessions/{id}/lock [post]
func (h *PlanHandler) ToggleLock(c *gin.Context) {
	var req dto.ToggleLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lock payload"))
		return
	}
	session, err := h.service.ToggleLock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// Generate godoc
// @Summary Request outfit recommendations for unlocked days
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.GeneratePlanRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /plans/sessions/{id}/generate [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid generation payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}

// Save godoc
// @Summary Persist the session plan, keeping locked outfits only
// @Tags Plans
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /plans/sessions/{id}/save [post]
func (h *PlanHandler) Save(c *gin.Context) {
	session, err := h.service.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// Discard godoc
// @Summary Drop a planning session without persisting
// @Tags Plans
// @Param id path string true "Session ID"
// @Success 204
// @Router /plans/sessions/{id} [delete]
func (h *PlanHandler) Discard(c *gin.Context) {
	h.service.Discard(c.Request.Context(), c.Param("id"))
	response.NoContent(c)
}

// Open godoc
// @Summary Load a saved plan into a fresh session
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 201 {object} response.Envelope
// @Router /plans/{id}/open [post]
func (h *PlanHandler) Open(c *gin.Context) {
	session, err := h.service.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusCreated, session, nil, middleware.ExtractMeta(c))
}

// List godoc
// @Summary Saved plan summaries for a user
// @Tags Plans
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "userId required"))
		return
	}
	plans, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, nil)
}

// Delete godoc
// @Summary Delete a saved plan
// @Tags Plans
// @Param id path string true "Plan ID"
// @Success 204
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
