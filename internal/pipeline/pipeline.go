// Package pipeline contains the daily batch calculators and the driver that
// schedules them over the blob store: discovery of unprocessed daily dumps,
// skip-if-done idempotency, bounded-concurrency batches and best-effort
// progress reporting.
package pipeline

import "context"

// Calculator is one derived-artifact pipeline (bid/ask footprint, broker
// summary). The driver discovers and schedules; calculators own the per-file
// work: download, parse, aggregate, write.
type Calculator interface {
	// Name identifies the pipeline in logs and job records.
	Name() string

	// OutputPrefix returns the date-scoped blob prefix whose non-emptiness
	// marks the date as already processed.
	OutputPrefix(dateSuffix string) string

	// ProcessFile runs the full per-file pass and returns the paths of the
	// artifacts written. Missing or empty input is a successful no-op with
	// no paths; a returned error marks the file unsuccessful without
	// affecting peers.
	ProcessFile(ctx context.Context, inputPath, dateSuffix string) ([]string, error)
}

// ProgressReporter receives batch progress. Reporting is strictly
// best-effort: the driver logs and discards any error, so implementations
// may fail freely.
type ProgressReporter interface {
	UpdateProgress(ctx context.Context, percentage int, currentStep string) error
}

// NopReporter discards all progress updates.
type NopReporter struct{}

func (NopReporter) UpdateProgress(context.Context, int, string) error { return nil }

// FileResult records the outcome for one daily input file.
type FileResult struct {
	Success    bool     `json:"success"`
	DateSuffix string   `json:"dateSuffix"`
	Files      []string `json:"files"`
}

// ResultData carries the driver's run statistics.
type ResultData struct {
	TotalFiles       int          `json:"totalFiles"`
	ProcessedFiles   int          `json:"processedFiles"`
	SuccessfulFiles  int          `json:"successfulFiles"`
	TotalOutputFiles int          `json:"totalOutputFiles"`
	DurationSeconds  float64      `json:"durationSeconds"`
	Results          []FileResult `json:"results"`
}

// Result is the structured terminal outcome of a driver run. The driver
// never lets an error escape its public entry point; a catastrophic failure
// (discovery itself failing) comes back as Success=false with a message.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *ResultData `json:"data,omitempty"`
}
