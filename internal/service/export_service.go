package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/wardrobe-planner-api/internal/dto"
	"github.com/noah-isme/wardrobe-planner-api/internal/models"
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
	"github.com/noah-isme/wardrobe-planner-api/pkg/export"
	"github.com/noah-isme/wardrobe-planner-api/pkg/jobs"
	"github.com/noah-isme/wardrobe-planner-api/pkg/storage"
)

type exportRepository interface {
	Create(ctx context.Context, job *models.ExportJob) error
	FindByID(ctx context.Context, id string) (*models.ExportJob, error)
	UpdateStatus(ctx context.Context, id string, status models.ExportStatus, resultURL, errorMessage *string) error
}

type exportPlanReader interface {
	FindByID(ctx context.Context, id string) (*models.WeeklyPlan, error)
}

type exportFileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type exportEnqueuer interface {
	TryEnqueue(job jobs.Job) bool
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportServiceConfig tunes export behaviour.
type ExportServiceConfig struct {
	APIPrefix       string
	RetentionTTL    time.Duration
	CleanupInterval time.Duration
}

// ExportService renders saved weekly plans to downloadable files on the
// background queue.
type ExportService struct {
	repo    exportRepository
	plans   exportPlanReader
	storage exportFileStorage
	queue   exportEnqueuer
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	metrics *MetricsService
	logger  *zap.Logger
	valid   *validator.Validate
	cfg     ExportServiceConfig
}

// NewExportService constructs an ExportService.
func NewExportService(
	repo exportRepository,
	plans exportPlanReader,
	fileStorage exportFileStorage,
	signer *storage.SignedURLSigner,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ExportServiceConfig,
) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RetentionTTL <= 0 {
		cfg.RetentionTTL = 24 * time.Hour
	}
	return &ExportService{
		repo:    repo,
		plans:   plans,
		storage: fileStorage,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		signer:  signer,
		metrics: metrics,
		logger:  logger,
		valid:   validate,
		cfg:     cfg,
	}
}

// AttachQueue injects the worker queue once it exists; the queue handler in
// turn calls back into Process.
func (s *ExportService) AttachQueue(queue exportEnqueuer) {
	s.queue = queue
}

// Enqueue validates the request, records the job and hands it to the
// background queue.
func (s *ExportService) Enqueue(ctx context.Context, planID, createdBy string, req dto.CreateExportRequest) (*dto.ExportJobResponse, error) {
	if err := s.valid.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plan")
	}

	job := &models.ExportJob{
		PlanID:    planID,
		CreatedBy: createdBy,
		Params: models.ExportJobParams{
			Format: models.ExportFormat(req.Format),
			Title:  req.Title,
		},
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record export job")
	}

	if s.queue == nil || !s.queue.TryEnqueue(jobs.Job{ID: job.ID, Type: "plan_export"}) {
		msg := "export queue unavailable"
		_ = s.repo.UpdateStatus(ctx, job.ID, models.ExportStatusFailed, nil, &msg)
		return nil, appErrors.Clone(appErrors.ErrConflict, "export queue is full, retry later")
	}

	return jobResponse(job), nil
}

// Process renders one queued job. It runs on the worker pool.
func (s *ExportService) Process(ctx context.Context, job jobs.Job) error {
	record, err := s.repo.FindByID(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", job.ID, err)
	}
	if record.Status == models.ExportStatusFinished {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, record.ID, models.ExportStatusProcessing, nil, nil); err != nil {
		return fmt.Errorf("mark export job processing: %w", err)
	}

	url, renderErr := s.render(ctx, record)
	if renderErr != nil {
		msg := renderErr.Error()
		if err := s.repo.UpdateStatus(ctx, record.ID, models.ExportStatusFailed, nil, &msg); err != nil {
			s.logger.Sugar().Errorw("failed to mark export job failed", "job_id", record.ID, "error", err)
		}
		s.metrics.ExportCompleted("failed")
		return renderErr
	}

	if err := s.repo.UpdateStatus(ctx, record.ID, models.ExportStatusFinished, &url, nil); err != nil {
		return fmt.Errorf("mark export job finished: %w", err)
	}
	s.metrics.ExportCompleted("finished")
	return nil
}

func (s *ExportService) render(ctx context.Context, record *models.ExportJob) (string, error) {
	plan, err := s.plans.FindByID(ctx, record.PlanID)
	if err != nil {
		return "", fmt.Errorf("load plan %s: %w", record.PlanID, err)
	}

	dataset := planDataset(plan)
	title := record.Params.Title
	if title == "" {
		title = plan.Name
	}

	var payload []byte
	switch record.Params.Format {
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		payload, err = s.csv.Render(dataset)
	}
	if err != nil {
		return "", fmt.Errorf("render %s export: %w", record.Params.Format, err)
	}

	filename := path.Join("plans", fmt.Sprintf("%s.%s", record.ID, record.Params.Format))
	if _, err := s.storage.Save(filename, payload); err != nil {
		return "", fmt.Errorf("store export file: %w", err)
	}

	token, _, err := s.signer.Generate(record.ID, filename)
	if err != nil {
		return "", fmt.Errorf("sign export url: %w", err)
	}
	return fmt.Sprintf("%s/exports/download?token=%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token), nil
}

// Cleanup removes rendered files older than ttl (defaults to the configured
// RetentionTTL when ttl <= 0) and returns the deleted names.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.RetentionTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

// StartCleanup boots a goroutine that purges expired export files periodically.
func (s *ExportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.Cleanup(0)
				if err != nil {
					s.logger.Sugar().Warnw("export retention sweep failed", "error", err)
					continue
				}
				if len(deleted) > 0 {
					s.logger.Sugar().Infow("expired exports removed", "count", len(deleted))
				}
			}
		}
	}()
}

// Status reports job state.
func (s *ExportService) Status(ctx context.Context, id string) (*dto.ExportJobResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export job")
	}
	return jobResponse(record), nil
}

// Download validates the signed token and opens the rendered file.
func (s *ExportService) Download(ctx context.Context, token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file not found")
	}
	return file, fmt.Sprintf("weekly-plan-%s%s", jobID, path.Ext(relPath)), nil
}

func planDataset(plan *models.WeeklyPlan) export.Dataset {
	headers := []string{"Date", "Day", "Occasion", "Outfit", "Items", "Weather", "Locked"}
	rows := make([]map[string]string, 0, len(plan.Days))
	for _, day := range plan.Days {
		row := map[string]string{
			"Date":     day.Date,
			"Day":      day.DayOfWeek,
			"Occasion": day.Occasion,
			"Locked":   strconv.FormatBool(day.Locked),
		}
		if day.Outfit != nil {
			row["Outfit"] = day.Outfit.Name
			row["Items"] = strconv.Itoa(len(day.Outfit.ClothingItems))
		}
		if day.Weather != nil {
			row["Weather"] = fmt.Sprintf("%.0f-%.0f %s", day.Weather.TempMin, day.Weather.TempMax, day.Weather.Description)
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func jobResponse(job *models.ExportJob) *dto.ExportJobResponse {
	return &dto.ExportJobResponse{
		ID:         job.ID,
		PlanID:     job.PlanID,
		Format:     job.Params.Format,
		Status:     job.Status,
		ResultURL:  job.ResultURL,
		CreatedAt:  job.CreatedAt,
		FinishedAt: job.FinishedAt,
		Error:      job.ErrorMessage,
	}
}
