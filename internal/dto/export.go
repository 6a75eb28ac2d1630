package dto

import (
	"time"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// CreateExportRequest queues a rendered export for a saved plan.
type CreateExportRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	Title  string `json:"title"`
}

// ExportJobResponse reports job state and, once finished, the download URL.
type ExportJobResponse struct {
	ID         string              `json:"id"`
	PlanID     string              `json:"plan_id"`
	Format     models.ExportFormat `json:"format"`
	Status     models.ExportStatus `json:"status"`
	ResultURL  *string             `json:"result_url,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
	Error      *string             `json:"error,omitempty"`
}
