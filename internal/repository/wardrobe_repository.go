package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// WardrobeRepository reads the wardrobe catalogue.
type WardrobeRepository struct {
	db *sqlx.DB
}

// NewWardrobeRepository instantiates a wardrobe repository.
func NewWardrobeRepository(db *sqlx.DB) *WardrobeRepository {
	return &WardrobeRepository{db: db}
}

const wardrobeColumns = "id, user_id, name, category, image_ref, created_at, updated_at"

// List returns wardrobe items matching provided filters.
func (r *WardrobeRepository) List(ctx context.Context, filter models.WardrobeFilter) ([]models.WardrobeItem, int, error) {
	base := "FROM wardrobe_items WHERE user_id = $1"
	args := []interface{}{filter.UserID}

	if filter.Category != "" {
		base += fmt.Sprintf(" AND category = $%d", len(args)+1)
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"name":       true,
		"category":   true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", wardrobeColumns, base, sortBy, order, size, offset)

	var items []models.WardrobeItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list wardrobe items: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count wardrobe items: %w", err)
	}

	return items, total, nil
}

// ListAll returns the full wardrobe snapshot for a user in catalogue order.
func (r *WardrobeRepository) ListAll(ctx context.Context, userID string) ([]models.WardrobeItem, error) {
	query := fmt.Sprintf("SELECT %s FROM wardrobe_items WHERE user_id = $1 ORDER BY created_at ASC", wardrobeColumns)
	var items []models.WardrobeItem
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("load wardrobe snapshot: %w", err)
	}
	return items, nil
}

// FindByID loads a single wardrobe item.
func (r *WardrobeRepository) FindByID(ctx context.Context, id string) (*models.WardrobeItem, error) {
	query := fmt.Sprintf("SELECT %s FROM wardrobe_items WHERE id = $1", wardrobeColumns)
	var item models.WardrobeItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads items by id, omitting ids that no longer exist.
func (r *WardrobeRepository) FindByIDs(ctx context.Context, ids []string) ([]models.WardrobeItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM wardrobe_items WHERE id IN (?)", wardrobeColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("build wardrobe id query: %w", err)
	}
	query = r.db.Rebind(query)
	var items []models.WardrobeItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load wardrobe items by id: %w", err)
	}
	return items, nil
}
