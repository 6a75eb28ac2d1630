package dto

import (
	"time"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// CreatePlanRequest initializes an in-memory weekly plan.
type CreatePlanRequest struct {
	UserID    string `json:"userId" validate:"required"`
	Name      string `json:"name"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	NumDays   int    `json:"numDays" validate:"omitempty,min=1,max=31"`
	Occasion  string `json:"occasion"`
}

// PlanSessionResponse pairs a planning session with its current plan value.
type PlanSessionResponse struct {
	SessionID string            `json:"sessionId"`
	Plan      models.WeeklyPlan `json:"plan"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// SetOccasionRequest updates one day's occasion.
type SetOccasionRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Occasion string `json:"occasion" validate:"required"`
}

// ToggleLockRequest flips one day's lock.
type ToggleLockRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// GeneratePlanRequest asks for outfit recommendations. An empty Dates list
// means every unlocked day in the plan.
type GeneratePlanRequest struct {
	Dates      []string `json:"dates" validate:"omitempty,dive,datetime=2006-01-02"`
	Creativity *float64 `json:"creativity" validate:"omitempty,min=0,max=1"`
}

// GenerationReport states, per requested date, what happened to the gateway
// result. Discarded lists days that were locked while the request was in
// flight; their frozen outfit was kept and the response dropped.
type GenerationReport struct {
	Applied          []string `json:"applied"`
	Discarded        []string `json:"discarded"`
	NoRecommendation []string `json:"no_recommendation"`
}

// GeneratePlanResponse returns the merged plan and the per-day report.
type GeneratePlanResponse struct {
	Plan   models.WeeklyPlan `json:"plan"`
	Report GenerationReport  `json:"report"`
}
