package dto

import "time"

// JobAcceptedResponse is returned when a batch run has been started
// asynchronously. The client polls GET /api/v1/jobs/{id} with the returned ID.
type JobAcceptedResponse struct {
	JobID    string `json:"job_id" example:"7f9c24e5-1f6a-4f44-9c9d-3b0a1c6f2a11"`
	Pipeline string `json:"pipeline" example:"bid_ask"`
	Status   string `json:"status" example:"running"`
}

// JobStatusResponse mirrors one job-log row.
type JobStatusResponse struct {
	JobID              string    `json:"job_id"`
	Pipeline           string    `json:"pipeline" example:"broker_summary"`
	Status             string    `json:"status" example:"completed"`
	ProgressPercentage int       `json:"progress_percentage" example:"100"`
	CurrentProcessing  string    `json:"current_processing" example:"processed 5/5 files"`
	Message            string    `json:"message,omitempty"`
	StartedAt          time.Time `json:"started_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
