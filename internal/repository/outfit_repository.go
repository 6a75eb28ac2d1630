package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// OutfitRepository persists composed outfits.
type OutfitRepository struct {
	db *sqlx.DB
}

// NewOutfitRepository instantiates an outfit repository.
func NewOutfitRepository(db *sqlx.DB) *OutfitRepository {
	return &OutfitRepository{db: db}
}

type outfitRow struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Name          string         `db:"name"`
	Gender        string         `db:"gender"`
	ClothingItems types.JSONText `db:"clothing_items"`
	ClothingParts types.JSONText `db:"clothing_parts"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

const outfitColumns = "id, user_id, name, gender, clothing_items, clothing_parts, created_at, updated_at"

func (row outfitRow) toModel() (*models.Outfit, error) {
	outfit := &models.Outfit{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Gender:    row.Gender,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.ClothingItems) > 0 {
		if err := json.Unmarshal(row.ClothingItems, &outfit.ClothingItems); err != nil {
			return nil, fmt.Errorf("unmarshal clothing_items for outfit %s: %w", row.ID, err)
		}
	}
	if len(row.ClothingParts) > 0 {
		if err := json.Unmarshal(row.ClothingParts, &outfit.ClothingParts); err != nil {
			return nil, fmt.Errorf("unmarshal clothing_parts for outfit %s: %w", row.ID, err)
		}
	}
	return outfit, nil
}

func outfitToRow(outfit *models.Outfit) (*outfitRow, error) {
	items, err := json.Marshal(outfit.ClothingItems)
	if err != nil {
		return nil, fmt.Errorf("marshal clothing_items: %w", err)
	}
	parts, err := json.Marshal(outfit.ClothingParts)
	if err != nil {
		return nil, fmt.Errorf("marshal clothing_parts: %w", err)
	}
	return &outfitRow{
		ID:            outfit.ID,
		UserID:        outfit.UserID,
		Name:          outfit.Name,
		Gender:        outfit.Gender,
		ClothingItems: types.JSONText(items),
		ClothingParts: types.JSONText(parts),
		CreatedAt:     outfit.CreatedAt,
		UpdatedAt:     outfit.UpdatedAt,
	}, nil
}

// Create inserts a new outfit record, assigning an id when absent.
func (r *OutfitRepository) Create(ctx context.Context, outfit *models.Outfit) error {
	if outfit.ID == "" {
		outfit.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if outfit.CreatedAt.IsZero() {
		outfit.CreatedAt = now
	}
	outfit.UpdatedAt = now

	row, err := outfitToRow(outfit)
	if err != nil {
		return err
	}
	const query = `INSERT INTO outfits (id, user_id, name, gender, clothing_items, clothing_parts, created_at, updated_at)
VALUES (:id, :user_id, :name, :gender, :clothing_items, :clothing_parts, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create outfit: %w", err)
	}
	return nil
}

// Replace overwrites an existing outfit wholesale. There is no partial patch.
func (r *OutfitRepository) Replace(ctx context.Context, outfit *models.Outfit) error {
	outfit.UpdatedAt = time.Now().UTC()
	row, err := outfitToRow(outfit)
	if err != nil {
		return err
	}
	const query = `UPDATE outfits SET name = :name, gender = :gender, clothing_items = :clothing_items, clothing_parts = :clothing_parts, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("replace outfit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("outfit rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID loads an outfit by identifier.
func (r *OutfitRepository) FindByID(ctx context.Context, id string) (*models.Outfit, error) {
	query := fmt.Sprintf("SELECT %s FROM outfits WHERE id = $1", outfitColumns)
	var row outfitRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toModel()
}

// List returns outfits for a user with pagination.
func (r *OutfitRepository) List(ctx context.Context, filter models.OutfitFilter) ([]models.Outfit, int, error) {
	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"name": true, "created_at": true, "updated_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM outfits WHERE user_id = $1 ORDER BY %s %s LIMIT %d OFFSET %d", outfitColumns, sortBy, order, size, offset)
	var rows []outfitRow
	if err := r.db.SelectContext(ctx, &rows, query, filter.UserID); err != nil {
		return nil, 0, fmt.Errorf("list outfits: %w", err)
	}

	outfits := make([]models.Outfit, 0, len(rows))
	for _, row := range rows {
		outfit, err := row.toModel()
		if err != nil {
			return nil, 0, err
		}
		outfits = append(outfits, *outfit)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM outfits WHERE user_id = $1", filter.UserID); err != nil {
		return nil, 0, fmt.Errorf("count outfits: %w", err)
	}
	return outfits, total, nil
}

// Delete removes an outfit permanently.
func (r *OutfitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM outfits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("outfit rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
