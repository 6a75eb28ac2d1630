package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(t *testing.T, numDays int) WeeklyPlan {
	t.Helper()
	start, err := time.Parse(DateLayout, "2026-03-02")
	require.NoError(t, err)
	return NewWeeklyPlan("u1", "week", start, numDays, "casual")
}

func TestNewWeeklyPlanDays(t *testing.T) {
	plan := testPlan(t, 7)
	require.Len(t, plan.Days, 7)
	assert.Equal(t, "2026-03-02", plan.StartDate)
	assert.Equal(t, "2026-03-08", plan.EndDate)
	assert.Equal(t, "Monday", plan.Days[0].DayOfWeek)
	assert.Equal(t, "Sunday", plan.Days[6].DayOfWeek)
	for _, day := range plan.Days {
		assert.Equal(t, "casual", day.Occasion)
		assert.False(t, day.Locked)
		assert.Nil(t, day.Outfit)
	}
}

func TestDayLookup(t *testing.T) {
	plan := testPlan(t, 3)
	require.NotNil(t, plan.Day("2026-03-03"))
	assert.Nil(t, plan.Day("2026-03-09"))
}

func TestWithOccasionLeavesLockAndOutfit(t *testing.T) {
	plan := testPlan(t, 3)
	plan = plan.WithDayResult("2026-03-02", &Outfit{ID: "o1"}, nil)
	plan = plan.ToggleLock("2026-03-02")

	next := plan.WithOccasion("2026-03-02", "formal")
	day := next.Day("2026-03-02")
	require.NotNil(t, day)
	assert.Equal(t, "formal", day.Occasion)
	assert.True(t, day.Locked)
	require.NotNil(t, day.Outfit)

	// the original value is untouched
	assert.Equal(t, "casual", plan.Day("2026-03-02").Occasion)
}

func TestToggleLockOnEmptyDayIsNoOp(t *testing.T) {
	plan := testPlan(t, 2)
	next := plan.ToggleLock("2026-03-02")
	assert.False(t, next.Day("2026-03-02").Locked)
}

func TestToggleLockRoundTripKeepsOutfit(t *testing.T) {
	plan := testPlan(t, 2)
	plan = plan.WithDayResult("2026-03-02", &Outfit{ID: "o1"}, &Weather{TempMin: 4, TempMax: 11})

	locked := plan.ToggleLock("2026-03-02")
	assert.True(t, locked.Day("2026-03-02").Locked)

	unlocked := locked.ToggleLock("2026-03-02")
	day := unlocked.Day("2026-03-02")
	assert.False(t, day.Locked)
	require.NotNil(t, day.Outfit)
	assert.Equal(t, "o1", day.Outfit.ID)
}

func TestTargetsExcludeLockedDays(t *testing.T) {
	plan := testPlan(t, 4)
	plan = plan.WithDayResult("2026-03-03", &Outfit{ID: "o1"}, nil)
	plan = plan.ToggleLock("2026-03-03")

	targets := plan.Targets(nil)
	dates := make([]string, 0)
	for _, target := range targets {
		dates = append(dates, target.Date)
	}
	assert.Equal(t, []string{"2026-03-02", "2026-03-04", "2026-03-05"}, dates)

	// a locked day stays excluded even when explicitly requested
	targets = plan.Targets([]string{"2026-03-03", "2026-03-04"})
	require.Len(t, targets, 1)
	assert.Equal(t, "2026-03-04", targets[0].Date)
}

func TestTargetsCarryOccasions(t *testing.T) {
	plan := testPlan(t, 2).WithOccasion("2026-03-03", "sport")
	targets := plan.Targets(nil)
	require.Len(t, targets, 2)
	assert.Equal(t, "casual", targets[0].Occasion)
	assert.Equal(t, "sport", targets[1].Occasion)
}

func TestWithDayResultDeepCopies(t *testing.T) {
	plan := testPlan(t, 1)
	outfit := &Outfit{ID: "o1", ClothingItems: []string{"a", "b"}}
	next := plan.WithDayResult("2026-03-02", outfit, nil)

	next2 := next.WithOccasion("2026-03-02", "formal")
	next2.Day("2026-03-02").Outfit.ClothingItems[0] = "mutated"
	assert.Equal(t, "a", next.Day("2026-03-02").Outfit.ClothingItems[0])
}
