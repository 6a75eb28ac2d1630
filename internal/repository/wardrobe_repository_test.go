package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

func newWardrobeRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func wardrobeRows(items ...models.WardrobeItem) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "category", "image_ref", "created_at", "updated_at"})
	for _, item := range items {
		rows.AddRow(item.ID, item.UserID, item.Name, item.Category, item.ImageRef, time.Now(), time.Now())
	}
	return rows
}

func TestWardrobeRepositoryList(t *testing.T) {
	db, mock, cleanup := newWardrobeRepoMock(t)
	defer cleanup()
	repo := NewWardrobeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, category, image_ref, created_at, updated_at FROM wardrobe_items WHERE user_id = $1 ORDER BY created_at ASC LIMIT 100 OFFSET 0")).
		WithArgs("u1").
		WillReturnRows(wardrobeRows(
			models.WardrobeItem{ID: "w1", UserID: "u1", Name: "Grey hoodie", Category: "hoodie"},
			models.WardrobeItem{ID: "w2", UserID: "u1", Name: "Black jeans", Category: "jeans"},
		))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM wardrobe_items WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	items, total, err := repo.List(context.Background(), models.WardrobeFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Grey hoodie", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWardrobeRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newWardrobeRepoMock(t)
	defer cleanup()
	repo := NewWardrobeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, category, image_ref, created_at, updated_at FROM wardrobe_items WHERE user_id = $1 AND category = $2 AND name ILIKE $3 ORDER BY name DESC LIMIT 10 OFFSET 10")).
		WithArgs("u1", "hoodie", "%grey%").
		WillReturnRows(wardrobeRows(models.WardrobeItem{ID: "w1", UserID: "u1", Name: "Grey hoodie", Category: "hoodie"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM wardrobe_items WHERE user_id = $1 AND category = $2 AND name ILIKE $3")).
		WithArgs("u1", "hoodie", "%grey%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	items, total, err := repo.List(context.Background(), models.WardrobeFilter{
		UserID:    "u1",
		Category:  "hoodie",
		Search:    "grey",
		Page:      2,
		PageSize:  10,
		SortBy:    "name",
		SortOrder: "desc",
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWardrobeRepositoryListRejectsUnknownSortColumn(t *testing.T) {
	db, mock, cleanup := newWardrobeRepoMock(t)
	defer cleanup()
	repo := NewWardrobeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC")).
		WithArgs("u1").
		WillReturnRows(wardrobeRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(context.Background(), models.WardrobeFilter{UserID: "u1", SortBy: "name; DROP TABLE wardrobe_items"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWardrobeRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newWardrobeRepoMock(t)
	defer cleanup()
	repo := NewWardrobeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, category, image_ref, created_at, updated_at FROM wardrobe_items WHERE user_id = $1 ORDER BY created_at ASC")).
		WithArgs("u1").
		WillReturnRows(wardrobeRows(
			models.WardrobeItem{ID: "w1", UserID: "u1", Name: "Tee", Category: "t-shirt"},
		))

	items, err := repo.ListAll(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "w1", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWardrobeRepositoryFindByIDs(t *testing.T) {
	db, mock, cleanup := newWardrobeRepoMock(t)
	defer cleanup()
	repo := NewWardrobeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, category, image_ref, created_at, updated_at FROM wardrobe_items WHERE id IN (?, ?)")).
		WithArgs("w1", "w2").
		WillReturnRows(wardrobeRows(models.WardrobeItem{ID: "w1", UserID: "u1", Name: "Tee", Category: "t-shirt"}))

	items, err := repo.FindByIDs(context.Background(), []string{"w1", "w2"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWardrobeRepositoryFindByIDsEmptyInput(t *testing.T) {
	db, mock, cleanup := newWardrobeRepoMock(t)
	defer cleanup()
	repo := NewWardrobeRepository(db)

	items, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
