package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"runtime/debug"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idxpulse/idxpulse/config"
	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/logger"
)

const inputPrefix = "done-summary/"

// Daily dumps live at done-summary/<YYYYMMDD>/DT<YYMMDD>.csv.
var inputPathRe = regexp.MustCompile(`^done-summary/(\d{8})/DT\d{6}\.csv$`)

// Driver schedules one Calculator over every unprocessed daily input file.
//
// Run proceeds through discovery, skip-check, then batched processing: files
// are partitioned into batches of cfg.BatchSize; within a batch at most
// cfg.MaxConcurrent files are in flight; a batch fully settles before the
// next one starts. A file failure is captured in its FileResult, never
// propagated to peers.
type Driver struct {
	store    blob.Store
	calc     Calculator
	reporter ProgressReporter
	cfg      config.BatchConfig

	// Force bypasses the skip-if-output-exists probe.
	Force bool
}

func NewDriver(store blob.Store, calc Calculator, reporter ProgressReporter, cfg config.BatchConfig) *Driver {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	return &Driver{store: store, calc: calc, reporter: reporter, cfg: cfg}
}

type candidate struct {
	path       string
	dateSuffix string
}

// Run executes the full batch and always returns a structured Result; errors
// never escape this entry point.
func (d *Driver) Run(ctx context.Context) Result {
	start := time.Now()
	log := logger.L().With().Str("pipeline", d.calc.Name()).Logger()

	d.report(ctx, 0, "discovering input files")

	candidates, err := d.discover(ctx)
	if err != nil {
		log.Error().Err(err).Msg("discovery failed")
		return Result{Success: false, Message: fmt.Sprintf("discovery failed: %v", err)}
	}
	if len(candidates) == 0 {
		return Result{
			Success: true,
			Message: "no input files found",
			Data:    &ResultData{DurationSeconds: time.Since(start).Seconds(), Results: []FileResult{}},
		}
	}

	d.report(ctx, 0, "checking already processed dates")
	pending := d.filterProcessed(ctx, candidates)
	log.Info().
		Int("discovered", len(candidates)).
		Int("pending", len(pending)).
		Msg("discovery complete")

	results := make([]FileResult, len(pending))
	processed := 0

	for batchStart := 0; batchStart < len(pending); batchStart += d.cfg.BatchSize {
		batchEnd := batchStart + d.cfg.BatchSize
		if batchEnd > len(pending) {
			batchEnd = len(pending)
		}
		batch := pending[batchStart:batchEnd]

		// Settle-all semantics: every task records its own FileResult and
		// returns nil, so one failure never cancels siblings.
		g, gctx := errgroup.WithContext(ctx)
		sem := make(chan struct{}, d.cfg.MaxConcurrent)

		for i, cand := range batch {
			idx := batchStart + i
			c := cand
			sem <- struct{}{}

			g.Go(func() error {
				defer func() { <-sem }()
				files, err := d.calc.ProcessFile(gctx, c.path, c.dateSuffix)
				if err != nil {
					log.Error().Str("date", c.dateSuffix).Err(err).Msg("file failed")
					results[idx] = FileResult{Success: false, DateSuffix: c.dateSuffix, Files: []string{}}
					return nil
				}
				if files == nil {
					files = []string{}
				}
				results[idx] = FileResult{Success: true, DateSuffix: c.dateSuffix, Files: files}
				return nil
			})
		}
		_ = g.Wait()

		processed = batchEnd
		pct := processed * 100 / len(pending)
		d.report(ctx, pct, fmt.Sprintf("processed %d/%d files", processed, len(pending)))
		d.reclaimMemory()
	}

	successful := 0
	outputs := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
		outputs += len(r.Files)
	}

	msg := fmt.Sprintf("%s completed: %d/%d files successful, %d skipped",
		d.calc.Name(), successful, len(pending), len(candidates)-len(pending))
	log.Info().Dur("elapsed", time.Since(start)).Msg(msg)

	return Result{
		Success: true,
		Message: msg,
		Data: &ResultData{
			TotalFiles:       len(candidates),
			ProcessedFiles:   len(pending),
			SuccessfulFiles:  successful,
			TotalOutputFiles: outputs,
			DurationSeconds:  time.Since(start).Seconds(),
			Results:          results,
		},
	}
}

// discover lists the input prefix and returns candidates matching the daily
// naming convention, newest date first.
func (d *Driver) discover(ctx context.Context) ([]candidate, error) {
	paths, err := d.store.ListPaths(ctx, blob.ListOptions{Prefix: inputPrefix})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", inputPrefix, err)
	}

	var out []candidate
	for _, p := range paths {
		m := inputPathRe.FindStringSubmatch(p)
		if m == nil {
			continue
		}
		out = append(out, candidate{path: p, dateSuffix: m[1]})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].dateSuffix > out[j].dateSuffix })
	return out, nil
}

// filterProcessed drops candidates whose output prefix already holds at least
// one object. A probe failure keeps the candidate: reprocessing a done date
// is cheap, silently skipping an unprocessed one is not.
func (d *Driver) filterProcessed(ctx context.Context, candidates []candidate) []candidate {
	if d.Force {
		return candidates
	}

	var pending []candidate
	for _, c := range candidates {
		existing, err := d.store.ListPaths(ctx, blob.ListOptions{
			Prefix:     d.calc.OutputPrefix(c.dateSuffix),
			MaxResults: 1,
		})
		if err != nil {
			logger.L().Warn().Str("date", c.dateSuffix).Err(err).Msg("skip-check probe failed, will process")
			pending = append(pending, c)
			continue
		}
		if len(existing) > 0 {
			logger.L().Debug().Str("date", c.dateSuffix).Msg("already processed, skipping")
			continue
		}
		pending = append(pending, c)
	}
	return pending
}

// report sends progress to the reporter and swallows any failure.
func (d *Driver) report(ctx context.Context, pct int, step string) {
	if err := d.reporter.UpdateProgress(ctx, pct, step); err != nil {
		logger.L().Warn().Err(err).Msg("progress report failed")
	}
}

// reclaimMemory returns heap to the OS and pauses briefly when resident heap
// exceeds the configured threshold. Long runs over many large daily files
// otherwise hold high-water heap between batches.
func (d *Driver) reclaimMemory() {
	if d.cfg.MemoryLimitMB <= 0 {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapAlloc < uint64(d.cfg.MemoryLimitMB)*1024*1024 {
		return
	}
	logger.L().Info().
		Uint64("heap_alloc_mb", ms.HeapAlloc/1024/1024).
		Int("limit_mb", d.cfg.MemoryLimitMB).
		Msg("heap above threshold, reclaiming")
	debug.FreeOSMemory()
	time.Sleep(500 * time.Millisecond)
}
