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

type composerService interface {
	StartSession(ctx context.Context, req dto.StartComposerSessionRequest) (*dto.ComposerSessionResponse, error)
	State(ctx context.Context, sessionID string) (*dto.ComposerSessionResponse, error)
	Place(ctx context.Context, sessionID string, req dto.PlaceItemRequest) (*dto.ComposerSessionResponse, error)
	Remove(ctx context.Context, sessionID string, req dto.RemoveItemRequest) (*dto.ComposerSessionResponse, error)
	UpdateImage(ctx context.Context, sessionID string, req dto.ImageOverrideRequest) (*dto.ComposerSessionResponse, error)
	Save(ctx context.Context, sessionID string, req dto.SaveOutfitRequest) (*models.Outfit, error)
	Discard(ctx context.Context, sessionID string)
}

// ComposerHandler exposes the outfit composition session endpoints.
type ComposerHandler struct {
	service composerService
}

// NewComposerHandler constructs the handler.
func NewComposerHandler(service composerService) *ComposerHandler {
	return &ComposerHandler{service: service}
}

// Start godoc
// @Summary Open an outfit composition session
// @Tags Composer
// @Accept json
// @Produce json
// @Param payload body dto.StartComposerSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /composer/sessions [post]
func (h *ComposerHandler) Start(c *gin.Context) {
	var req dto.StartComposerSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid session payload"))
		return
	}
	session, err := h.service.StartSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusCreated, session, nil, middleware.ExtractMeta(c))
}

// State godoc
// @Summary Current draft for a session
// @Tags Composer
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /composer/sessions/{id} [get]
func (h *ComposerHandler) State(c *gin.Context) {
	session, err := h.service.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// Place godoc
// @Summary Place a wardrobe item on the draft
// @Tags Composer
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.PlaceItemRequest true "Item payload"
// @Success 200 {object} response.Envelope
// @Router /composer/sessions/{id}/place [post]
func (h *ComposerHandler) Place(c *gin.Context) {
	var req dto.PlaceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid item payload"))
		return
	}
	session, err := h.service.Place(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// Remove godoc
// @Summary Remove an item or clear a slot
// @Tags Composer
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.RemoveItemRequest true "Removal payload"
// @Success 200 {object} response.Envelope
// @Router /composer/sessions/{id}/remove [post]
func (h *ComposerHandler) Remove(c *gin.Context) {
	var req dto.RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid removal payload"))
		return
	}
	session, err := h.service.Remove(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// UpdateImage godoc
// @Summary Swap an item's image everywhere it appears in the draft
// @Tags Composer
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ImageOverrideRequest true "Image payload"
// @Success 200 {object} response.Envelope
// @Router /composer/sessions/{id}/image [post]
func (h *ComposerHandler) UpdateImage(c *gin.Context) {
	var req dto.ImageOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid image payload"))
		return
	}
	session, err := h.service.UpdateImage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionExpiry(c, session.ExpiresAt)
	response.JSON(c, http.StatusOK, session, nil, middleware.ExtractMeta(c))
}

// Save godoc
// @Summary Persist the session draft as an outfit
// @Tags Composer
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SaveOutfitRequest true "Outfit payload"
// @Success 201 {object} response.Envelope
// @Router /composer/sessions/{id}/save [post]
func (h *ComposerHandler) Save(c *gin.Context) {
	var req dto.SaveOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid outfit payload"))
		return
	}
	outfit, err := h.service.Save(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, outfit)
}

// Discard godoc
// @Summary Drop a composition session
// @Tags Composer
// @Param id path string true "Session ID"
// @Success 204
// @Router /composer/sessions/{id} [delete]
func (h *ComposerHandler) Discard(c *gin.Context) {
	h.service.Discard(c.Request.Context(), c.Param("id"))
	response.NoContent(c)
}
