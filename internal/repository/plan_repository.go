package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// PlanRepository persists weekly plans and their day rows.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository instantiates a plan repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

type planRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	StartDate string    `db:"start_date"`
	EndDate   string    `db:"end_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type planDayRow struct {
	PlanID    string         `db:"plan_id"`
	Position  int            `db:"position"`
	Date      string         `db:"date"`
	DayOfWeek string         `db:"day_of_week"`
	Occasion  string         `db:"occasion"`
	OutfitID  *string        `db:"outfit_id"`
	Weather   types.JSONText `db:"weather"`
}

type planDayJoinRow struct {
	planDayRow
	OutfitUserID  *string        `db:"outfit_user_id"`
	OutfitName    *string        `db:"outfit_name"`
	OutfitGender  *string        `db:"outfit_gender"`
	ClothingItems types.JSONText `db:"clothing_items"`
	ClothingParts types.JSONText `db:"clothing_parts"`
}

// Save writes the plan wholesale: the plan row is created or replaced and
// the day rows are rewritten in one transaction.
func (r *PlanRepository) Save(ctx context.Context, plan *models.WeeklyPlan) error {
	if plan == nil {
		return fmt.Errorf("plan payload is nil")
	}
	now := time.Now().UTC()
	creating := plan.ID == ""
	if creating {
		plan.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin plan save tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	row := planRow{
		ID:        plan.ID,
		UserID:    plan.UserID,
		Name:      plan.Name,
		StartDate: plan.StartDate,
		EndDate:   plan.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if creating {
		const insert = `INSERT INTO weekly_plans (id, user_id, name, start_date, end_date, created_at, updated_at)
VALUES (:id, :user_id, :name, :start_date, :end_date, :created_at, :updated_at)`
		if _, err = tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("insert weekly plan: %w", err)
		}
	} else {
		const update = `UPDATE weekly_plans SET name = :name, start_date = :start_date, end_date = :end_date, updated_at = :updated_at WHERE id = :id`
		var result sql.Result
		if result, err = tx.NamedExecContext(ctx, update, row); err != nil {
			return fmt.Errorf("update weekly plan: %w", err)
		}
		var affected int64
		if affected, err = result.RowsAffected(); err != nil {
			return fmt.Errorf("weekly plan rows affected: %w", err)
		}
		if affected == 0 {
			err = sql.ErrNoRows
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM weekly_plan_days WHERE plan_id = $1`, plan.ID); err != nil {
		return fmt.Errorf("clear plan days: %w", err)
	}

	const insertDay = `INSERT INTO weekly_plan_days (plan_id, position, date, day_of_week, occasion, outfit_id, weather)
VALUES (:plan_id, :position, :date, :day_of_week, :occasion, :outfit_id, :weather)`
	for i, day := range plan.Days {
		var dayRow planDayRow
		dayRow, err = dayToRow(plan.ID, i, day)
		if err != nil {
			return err
		}
		if _, err = tx.NamedExecContext(ctx, insertDay, dayRow); err != nil {
			return fmt.Errorf("insert plan day %s: %w", day.Date, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit plan save tx: %w", err)
	}
	return nil
}

func dayToRow(planID string, position int, day models.DayPlan) (planDayRow, error) {
	row := planDayRow{
		PlanID:    planID,
		Position:  position,
		Date:      day.Date,
		DayOfWeek: day.DayOfWeek,
		Occasion:  day.Occasion,
	}
	if day.Outfit != nil {
		id := day.Outfit.ID
		row.OutfitID = &id
	}
	if day.Weather != nil {
		payload, err := json.Marshal(day.Weather)
		if err != nil {
			return row, fmt.Errorf("marshal weather for %s: %w", day.Date, err)
		}
		row.Weather = types.JSONText(payload)
	}
	return row, nil
}

// FindByID rehydrates the full plan. Every day whose outfit survived the
// save loads locked: a persisted selection stays frozen until the user
// explicitly unlocks it.
func (r *PlanRepository) FindByID(ctx context.Context, id string) (*models.WeeklyPlan, error) {
	const planQuery = `SELECT id, user_id, name, start_date, end_date, created_at, updated_at FROM weekly_plans WHERE id = $1`
	var row planRow
	if err := r.db.GetContext(ctx, &row, planQuery, id); err != nil {
		return nil, err
	}

	const daysQuery = `
SELECT d.plan_id, d.position, d.date, d.day_of_week, d.occasion, d.outfit_id, d.weather,
       o.user_id AS outfit_user_id, o.name AS outfit_name, o.gender AS outfit_gender,
       o.clothing_items, o.clothing_parts
FROM weekly_plan_days d
LEFT JOIN outfits o ON o.id = d.outfit_id
WHERE d.plan_id = $1
ORDER BY d.position ASC`
	var dayRows []planDayJoinRow
	if err := r.db.SelectContext(ctx, &dayRows, daysQuery, id); err != nil {
		return nil, fmt.Errorf("load plan days: %w", err)
	}

	plan := &models.WeeklyPlan{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		Days:      make([]models.DayPlan, 0, len(dayRows)),
	}
	for _, dr := range dayRows {
		day, err := rowToDay(dr)
		if err != nil {
			return nil, err
		}
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

func rowToDay(dr planDayJoinRow) (models.DayPlan, error) {
	day := models.DayPlan{
		Date:      dr.Date,
		DayOfWeek: dr.DayOfWeek,
		Occasion:  dr.Occasion,
	}
	if len(dr.Weather) > 0 {
		var weather models.Weather
		if err := json.Unmarshal(dr.Weather, &weather); err != nil {
			return day, fmt.Errorf("unmarshal weather for %s: %w", dr.Date, err)
		}
		day.Weather = &weather
	}
	if dr.OutfitID != nil && dr.OutfitName != nil {
		outfit := models.Outfit{
			ID:   *dr.OutfitID,
			Name: *dr.OutfitName,
		}
		if dr.OutfitUserID != nil {
			outfit.UserID = *dr.OutfitUserID
		}
		if dr.OutfitGender != nil {
			outfit.Gender = *dr.OutfitGender
		}
		if len(dr.ClothingItems) > 0 {
			if err := json.Unmarshal(dr.ClothingItems, &outfit.ClothingItems); err != nil {
				return day, fmt.Errorf("unmarshal outfit items for %s: %w", dr.Date, err)
			}
		}
		if len(dr.ClothingParts) > 0 {
			if err := json.Unmarshal(dr.ClothingParts, &outfit.ClothingParts); err != nil {
				return day, fmt.Errorf("unmarshal outfit parts for %s: %w", dr.Date, err)
			}
		}
		day.Outfit = &outfit
		day.Locked = true
	}
	return day, nil
}

// ListByUser returns plan summaries (no day rows) newest first.
func (r *PlanRepository) ListByUser(ctx context.Context, userID string) ([]models.WeeklyPlan, error) {
	const query = `SELECT id, user_id, name, start_date, end_date, created_at, updated_at FROM weekly_plans WHERE user_id = $1 ORDER BY start_date DESC`
	var rows []planRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list weekly plans: %w", err)
	}
	plans := make([]models.WeeklyPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, models.WeeklyPlan{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Name,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		})
	}
	return plans, nil
}

// Delete removes a plan and its day rows.
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin plan delete tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM weekly_plan_days WHERE plan_id = $1`, id); err != nil {
		return fmt.Errorf("delete plan days: %w", err)
	}
	var result sql.Result
	if result, err = tx.ExecContext(ctx, `DELETE FROM weekly_plans WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete weekly plan: %w", err)
	}
	var affected int64
	if affected, err = result.RowsAffected(); err != nil {
		return fmt.Errorf("weekly plan rows affected: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit plan delete tx: %w", err)
	}
	return nil
}
