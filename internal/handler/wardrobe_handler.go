package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wardrobe-planner-api/internal/middleware"
	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
	"github.com/noah-isme/wardrobe-planner-api/pkg/response"
)

type wardrobeService interface {
	List(ctx context.Context, filter models.WardrobeFilter) ([]models.WardrobeItem, *models.Pagination, error)
	Grouped(ctx context.Context, userID string) (*models.SlottedWardrobe, bool, error)
}

// WardrobeHandler exposes wardrobe read endpoints.
type WardrobeHandler struct {
	service wardrobeService
}

// NewWardrobeHandler constructs the handler.
func NewWardrobeHandler(service wardrobeService) *WardrobeHandler {
	return &WardrobeHandler{service: service}
}

// List godoc
// @Summary List wardrobe items
// @Tags Wardrobe
// @Produce json
// @Param userId query string true "User ID"
// @Param category query string false "Category filter"
// @Param search query string false "Name search"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param sortBy query string false "Sort column"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /wardrobe [get]
func (h *WardrobeHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "userId required"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	filter := models.WardrobeFilter{
		UserID:    userID,
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Grouped godoc
// @Summary Wardrobe partitioned by outfit slot
// @Tags Wardrobe
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /wardrobe/grouped [get]
func (h *WardrobeHandler) Grouped(c *gin.Context) {
	grouped, cacheHit, err := h.service.Grouped(c.Request.Context(), c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, grouped, nil, middleware.ExtractMeta(c))
}
