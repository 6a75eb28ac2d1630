package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
	"github.com/noah-isme/wardrobe-planner-api/pkg/response"
)

type outfitService interface {
	Get(ctx context.Context, id string) (*models.Outfit, error)
	List(ctx context.Context, filter models.OutfitFilter) ([]models.Outfit, *models.Pagination, error)
	Delete(ctx context.Context, id string) error
}

// OutfitHandler exposes persisted outfit endpoints. Writes go through the
// composer session flow, so this surface is read and delete only.
type OutfitHandler struct {
	service outfitService
}

// NewOutfitHandler constructs the handler.
func NewOutfitHandler(service outfitService) *OutfitHandler {
	return &OutfitHandler{service: service}
}

// List godoc
// @Summary List saved outfits
// @Tags Outfits
// @Produce json
// @Param userId query string true "User ID"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /outfits [get]
func (h *OutfitHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "userId required"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	filter := models.OutfitFilter{
		UserID:    userID,
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	outfits, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outfits, pagination)
}

// Get godoc
// @Summary Fetch one outfit
// @Tags Outfits
// @Produce json
// @Param id path string true "Outfit ID"
// @Success 200 {object} response.Envelope
// @Router /outfits/{id} [get]
func (h *OutfitHandler) Get(c *gin.Context) {
	outfit, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outfit, nil)
}

// Delete godoc
// @Summary Delete an outfit
// @Tags Outfits
// @Param id path string true "Outfit ID"
// @Success 204
// @Router /outfits/{id} [delete]
func (h *OutfitHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
