package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/idxpulse/idxpulse/config"
	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/domain/models"
	"github.com/idxpulse/idxpulse/internal/pipeline"
)

// memJobLogRepo is an in-memory JobLogRepository for exercising the job
// lifecycle without Postgres.
type memJobLogRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.JobLog
}

func newMemJobLogRepo() *memJobLogRepo {
	return &memJobLogRepo{jobs: make(map[string]*models.JobLog)}
}

func (r *memJobLogRepo) CreateJob(_ context.Context, job models.JobLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.Status = models.JobStatusRunning
	job.StartedAt = time.Now()
	r.jobs[job.ID] = &job
	return nil
}

func (r *memJobLogRepo) UpdateProgress(_ context.Context, jobID string, pct int, step string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[jobID]; ok {
		j.ProgressPercentage = pct
		j.CurrentProcessing = step
	}
	return nil
}

func (r *memJobLogRepo) FinishJob(_ context.Context, jobID, status, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[jobID]; ok {
		j.Status = status
		j.Message = message
	}
	return nil
}

func (r *memJobLogRepo) GetJob(_ context.Context, jobID string) (*models.JobLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func testFactory(t *testing.T) DriverFactory {
	t.Helper()
	store, err := blob.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	cfg := config.BatchConfig{BatchSize: 2, MaxConcurrent: 2}
	return func(name string, reporter pipeline.ProgressReporter, force bool) (*pipeline.Driver, error) {
		var calc pipeline.Calculator
		switch name {
		case PipelineBidAsk:
			calc = pipeline.NewBidAskCalculator(store)
		case PipelineBrokerSummary:
			calc = pipeline.NewBrokerCalculator(store)
		default:
			return nil, errors.New("no calculator for " + name)
		}
		d := pipeline.NewDriver(store, calc, reporter, cfg)
		d.Force = force
		return d, nil
	}
}

func TestStartJob_CompletesAgainstEmptyStore(t *testing.T) {
	repo := newMemJobLogRepo()
	svc := NewJobService(repo, testFactory(t))

	id, err := svc.StartJob(context.Background(), PipelineBidAsk, false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if id == "" {
		t.Fatal("empty job id")
	}
	svc.Wait()

	job, err := svc.GetJob(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if job == nil || job.Status != models.JobStatusCompleted {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestStartJob_AllRunsBothPipelines(t *testing.T) {
	repo := newMemJobLogRepo()
	svc := NewJobService(repo, testFactory(t))

	id, err := svc.StartJob(context.Background(), PipelineAll, false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	svc.Wait()

	job, _ := svc.GetJob(context.Background(), id)
	if job == nil || job.Status != models.JobStatusCompleted {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.Pipeline != PipelineAll {
		t.Fatalf("pipeline = %q", job.Pipeline)
	}
}

func TestStartJob_UnknownPipeline(t *testing.T) {
	svc := NewJobService(newMemJobLogRepo(), testFactory(t))

	_, err := svc.StartJob(context.Background(), "bogus", false)
	var bad ErrBadRequest
	if !errors.As(err, &bad) {
		t.Fatalf("want ErrBadRequest, got %v", err)
	}
}

func TestStartJob_DriverSetupFailureMarksJobFailed(t *testing.T) {
	repo := newMemJobLogRepo()
	factory := func(string, pipeline.ProgressReporter, bool) (*pipeline.Driver, error) {
		return nil, errors.New("boom")
	}
	svc := NewJobService(repo, factory)

	id, err := svc.StartJob(context.Background(), PipelineBidAsk, false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	svc.Wait()

	job, _ := svc.GetJob(context.Background(), id)
	if job == nil || job.Status != models.JobStatusFailed {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestGetJob_Unknown(t *testing.T) {
	svc := NewJobService(newMemJobLogRepo(), testFactory(t))

	job, err := svc.GetJob(context.Background(), "missing")
	if err != nil || job != nil {
		t.Fatalf("want nil,nil got job=%+v err=%v", job, err)
	}
}
