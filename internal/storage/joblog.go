package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/idxpulse/idxpulse/internal/domain/models"
)

// JobLogRepository defines the contract for the batch job log store: the
// durable progress sink the drivers report into and the API polls.
type JobLogRepository interface {
	CreateJob(ctx context.Context, job models.JobLog) error
	UpdateProgress(ctx context.Context, jobID string, percentage int, currentProcessing string) error
	FinishJob(ctx context.Context, jobID, status, message string) error
	GetJob(ctx context.Context, jobID string) (*models.JobLog, error)
}

type jobLogRepository struct {
	db *sql.DB
}

func NewJobLogRepository(db *sql.DB) JobLogRepository {
	return &jobLogRepository{db: db}
}

// CreateJob inserts a new running job row.
func (r *jobLogRepository) CreateJob(ctx context.Context, job models.JobLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO job_logs (id, pipeline, status, progress_percentage, current_processing, message, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, job.ID, job.Pipeline, models.JobStatusRunning, 0, "", "")
	if err != nil {
		return fmt.Errorf("insert job log: %w", err)
	}
	return nil
}

// UpdateProgress records the latest batch progress for a running job.
func (r *jobLogRepository) UpdateProgress(ctx context.Context, jobID string, percentage int, currentProcessing string) error {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE job_logs
		SET progress_percentage = $2, current_processing = $3, updated_at = NOW()
		WHERE id = $1
	`, jobID, percentage, currentProcessing)
	if err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}
	return nil
}

// FinishJob sets the terminal status and message of a job.
func (r *jobLogRepository) FinishJob(ctx context.Context, jobID, status, message string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE job_logs
		SET status = $2, message = $3, updated_at = NOW()
		WHERE id = $1
	`, jobID, status, message)
	if err != nil {
		return fmt.Errorf("finish job log: %w", err)
	}
	return nil
}

// GetJob fetches one job row; (nil, nil) when the job does not exist.
func (r *jobLogRepository) GetJob(ctx context.Context, jobID string) (*models.JobLog, error) {
	var job models.JobLog
	err := r.db.QueryRowContext(ctx, `
		SELECT id, pipeline, status, progress_percentage, current_processing, message, started_at, updated_at
		FROM job_logs
		WHERE id = $1
	`, jobID).Scan(
		&job.ID,
		&job.Pipeline,
		&job.Status,
		&job.ProgressPercentage,
		&job.CurrentProcessing,
		&job.Message,
		&job.StartedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select job log: %w", err)
	}
	return &job, nil
}

// JobProgressReporter adapts a JobLogRepository to the driver's
// ProgressReporter contract for one specific job.
type JobProgressReporter struct {
	repo  JobLogRepository
	jobID string
}

func NewJobProgressReporter(repo JobLogRepository, jobID string) *JobProgressReporter {
	return &JobProgressReporter{repo: repo, jobID: jobID}
}

func (p *JobProgressReporter) UpdateProgress(ctx context.Context, percentage int, currentStep string) error {
	return p.repo.UpdateProgress(ctx, p.jobID, percentage, currentStep)
}
