package models

import "time"

// Job status values as stored in job_logs.status.
const (
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// JobLog is one batch-run record in the job log store. The batch driver
// updates progress_percentage and current_processing as batches settle; the
// API exposes rows for polling.
type JobLog struct {
	ID                 string
	Pipeline           string
	Status             string
	ProgressPercentage int
	CurrentProcessing  string
	Message            string
	StartedAt          time.Time
	UpdatedAt          time.Time
}
