package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// ExportRepository persists background export job metadata.
type ExportRepository struct {
	db *sqlx.DB
}

// NewExportRepository instantiates an export repository.
func NewExportRepository(db *sqlx.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

const exportColumns = "id, plan_id, params, status, result_url, created_by, created_at, finished_at, error_message"

// Create inserts a queued export job.
func (r *ExportRepository) Create(ctx context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO export_jobs (id, plan_id, params, status, result_url, created_by, created_at, finished_at, error_message)
VALUES (:id, :plan_id, :params, :status, :result_url, :created_by, :created_at, :finished_at, :error_message)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	return nil
}

// FindByID loads a job by identifier.
func (r *ExportRepository) FindByID(ctx context.Context, id string) (*models.ExportJob, error) {
	query := fmt.Sprintf("SELECT %s FROM export_jobs WHERE id = $1", exportColumns)
	var job models.ExportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateStatus transitions a job, optionally recording the result URL or
// failure message.
func (r *ExportRepository) UpdateStatus(ctx context.Context, id string, status models.ExportStatus, resultURL, errorMessage *string) error {
	var finishedAt *time.Time
	if status == models.ExportStatusFinished || status == models.ExportStatusFailed {
		now := time.Now().UTC()
		finishedAt = &now
	}
	const query = `UPDATE export_jobs SET status = $1, result_url = $2, error_message = $3, finished_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, status, resultURL, errorMessage, finishedAt, id)
	if err != nil {
		return fmt.Errorf("update export job: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("export job rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
