package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

func newPlanRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPlanRepositorySaveCreatesPlanAndDays(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO weekly_plans").
		WithArgs(sqlmock.AnyArg(), "u1", "Week of 2026-03-02", "2026-03-02", "2026-03-08", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_plan_days WHERE plan_id = $1")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO weekly_plan_days").
		WithArgs(sqlmock.AnyArg(), 0, "2026-03-02", "Monday", "casual", "o1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO weekly_plan_days").
		WithArgs(sqlmock.AnyArg(), 1, "2026-03-03", "Tuesday", "casual", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	plan := &models.WeeklyPlan{
		UserID:    "u1",
		Name:      "Week of 2026-03-02",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-08",
		Days: []models.DayPlan{
			{
				Date:      "2026-03-02",
				DayOfWeek: "Monday",
				Occasion:  "casual",
				Locked:    true,
				Outfit:    &models.Outfit{ID: "o1", Name: "monday fit"},
				Weather:   &models.Weather{TempMin: 3, TempMax: 9, Description: "rain"},
			},
			{Date: "2026-03-03", DayOfWeek: "Tuesday", Occasion: "casual"},
		},
	}
	require.NoError(t, repo.Save(context.Background(), plan))
	assert.NotEmpty(t, plan.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositorySaveUpdatesExistingPlan(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE weekly_plans SET").
		WithArgs("new name", "2026-03-02", "2026-03-08", sqlmock.AnyArg(), "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_plan_days WHERE plan_id = $1")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectCommit()

	plan := &models.WeeklyPlan{
		ID:        "p1",
		UserID:    "u1",
		Name:      "new name",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-08",
	}
	require.NoError(t, repo.Save(context.Background(), plan))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositorySaveUnknownPlanRollsBack(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE weekly_plans SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), &models.WeeklyPlan{ID: "missing"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryFindByIDMarksPersistedOutfitsLocked(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	planRows := sqlmock.NewRows([]string{"id", "user_id", "name", "start_date", "end_date", "created_at", "updated_at"}).
		AddRow("p1", "u1", "Week of 2026-03-02", "2026-03-02", "2026-03-08", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, start_date, end_date, created_at, updated_at FROM weekly_plans WHERE id = $1")).
		WithArgs("p1").
		WillReturnRows(planRows)

	outfitID := "o1"
	userID := "u1"
	outfitName := "monday fit"
	gender := "unisex"
	dayRows := sqlmock.NewRows([]string{
		"plan_id", "position", "date", "day_of_week", "occasion", "outfit_id", "weather",
		"outfit_user_id", "outfit_name", "outfit_gender", "clothing_items", "clothing_parts",
	}).
		AddRow("p1", 0, "2026-03-02", "Monday", "casual", outfitID, []byte(`{"temp_min":3,"temp_max":9,"description":"rain"}`),
			userID, outfitName, gender, []byte(`["w1","w2"]`), []byte(`{"top":"w1","bottom":"w2"}`)).
		AddRow("p1", 1, "2026-03-03", "Tuesday", "casual", nil, nil,
			nil, nil, nil, nil, nil)
	mock.ExpectQuery("SELECT d.plan_id, d.position").
		WithArgs("p1").
		WillReturnRows(dayRows)

	plan, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, plan.Days, 2)

	monday := plan.Days[0]
	assert.True(t, monday.Locked)
	require.NotNil(t, monday.Outfit)
	assert.Equal(t, "monday fit", monday.Outfit.Name)
	assert.Equal(t, []string{"w1", "w2"}, monday.Outfit.ClothingItems)
	require.NotNil(t, monday.Weather)
	assert.Equal(t, "rain", monday.Weather.Description)

	tuesday := plan.Days[1]
	assert.False(t, tuesday.Locked)
	assert.Nil(t, tuesday.Outfit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "start_date", "end_date", "created_at", "updated_at"}).
		AddRow("p2", "u1", "Week of 2026-03-09", "2026-03-09", "2026-03-15", time.Now(), time.Now()).
		AddRow("p1", "u1", "Week of 2026-03-02", "2026-03-02", "2026-03-08", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, start_date, end_date, created_at, updated_at FROM weekly_plans WHERE user_id = $1 ORDER BY start_date DESC")).
		WithArgs("u1").
		WillReturnRows(rows)

	plans, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "p2", plans[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_plan_days WHERE plan_id = $1")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_plans WHERE id = $1")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryDeleteMissingPlan(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_plan_days WHERE plan_id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_plans WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
