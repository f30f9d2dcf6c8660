package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/idxpulse/idxpulse/internal/domain/models"
	"github.com/idxpulse/idxpulse/internal/logger"
	"github.com/idxpulse/idxpulse/internal/pipeline"
	"github.com/idxpulse/idxpulse/internal/storage"
)

// Pipeline names accepted by StartJob.
const (
	PipelineBidAsk        = "bid_ask"
	PipelineBrokerSummary = "broker_summary"
	PipelineAll           = "all"
)

// DriverFactory builds a batch driver for one pipeline wired to the given
// progress reporter. Indirection keeps the service testable without a blob
// store or real calculators.
type DriverFactory func(pipeline string, reporter pipeline.ProgressReporter, force bool) (*pipeline.Driver, error)

// JobService launches batch runs asynchronously and exposes their job-log
// records for polling.
type JobService interface {
	// StartJob creates a job record and kicks off the named pipeline in the
	// background, returning the job ID immediately.
	StartJob(ctx context.Context, pipelineName string, force bool) (string, error)

	// GetJob returns the job record, or (nil, nil) when unknown.
	GetJob(ctx context.Context, jobID string) (*models.JobLog, error)

	// Wait blocks until all background runs have finished. Called during
	// graceful shutdown.
	Wait()
}

type jobService struct {
	repo    storage.JobLogRepository
	drivers DriverFactory

	// wg tracks in-flight background runs so shutdown can drain them.
	wg sync.WaitGroup
}

func NewJobService(repo storage.JobLogRepository, drivers DriverFactory) JobService {
	return &jobService{repo: repo, drivers: drivers}
}

func (s *jobService) StartJob(ctx context.Context, pipelineName string, force bool) (string, error) {
	pipelines, err := expandPipelines(pipelineName)
	if err != nil {
		return "", err
	}

	jobID := uuid.NewString()
	if err := s.repo.CreateJob(ctx, models.JobLog{ID: jobID, Pipeline: pipelineName}); err != nil {
		return "", fmt.Errorf("create job record: %w", err)
	}

	s.wg.Add(1)
	go func() {
		// The request context dies with the HTTP response; the run must not.
		defer s.wg.Done()
		s.run(context.Background(), jobID, pipelines, force)
	}()

	return jobID, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID string) (*models.JobLog, error) {
	return s.repo.GetJob(ctx, jobID)
}

// Wait blocks until all background runs have finished.
func (s *jobService) Wait() {
	s.wg.Wait()
}

func (s *jobService) run(ctx context.Context, jobID string, pipelines []string, force bool) {
	log := logger.L().With().Str("job_id", jobID).Logger()
	reporter := storage.NewJobProgressReporter(s.repo, jobID)

	allOK := true
	var lastMsg string
	for _, name := range pipelines {
		driver, err := s.drivers(name, reporter, force)
		if err != nil {
			log.Error().Str("pipeline", name).Err(err).Msg("driver setup failed")
			allOK = false
			lastMsg = fmt.Sprintf("%s: %v", name, err)
			continue
		}

		res := driver.Run(ctx)
		lastMsg = res.Message
		if !res.Success {
			allOK = false
		}
	}

	status := models.JobStatusCompleted
	if !allOK {
		status = models.JobStatusFailed
	}
	if err := s.repo.FinishJob(ctx, jobID, status, lastMsg); err != nil {
		log.Error().Err(err).Msg("finish job record failed")
	}
	log.Info().Str("status", status).Msg("job finished")
}

func expandPipelines(name string) ([]string, error) {
	switch name {
	case PipelineBidAsk, PipelineBrokerSummary:
		return []string{name}, nil
	case PipelineAll:
		return []string{PipelineBidAsk, PipelineBrokerSummary}, nil
	default:
		return nil, ErrBadRequest{Reason: fmt.Sprintf("unknown pipeline %q", name)}
	}
}
