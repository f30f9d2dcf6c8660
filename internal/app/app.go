package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/idxpulse/idxpulse/config"
	"github.com/idxpulse/idxpulse/internal/api"
	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/pipeline"
	"github.com/idxpulse/idxpulse/internal/service"
	"github.com/idxpulse/idxpulse/internal/storage"
)

// NewDriverFactory builds batch drivers for the named pipelines over the
// given store. Shared between API mode (jobs endpoint) and batch mode (CLI).
func NewDriverFactory(store blob.Store, cfg config.BatchConfig) service.DriverFactory {
	return func(name string, reporter pipeline.ProgressReporter, force bool) (*pipeline.Driver, error) {
		var calc pipeline.Calculator
		switch name {
		case service.PipelineBidAsk:
			calc = pipeline.NewBidAskCalculator(store)
		case service.PipelineBrokerSummary:
			calc = pipeline.NewBrokerCalculator(store)
		default:
			return nil, fmt.Errorf("no calculator for pipeline %q", name)
		}
		d := pipeline.NewDriver(store, calc, reporter, cfg)
		d.Force = force
		return d, nil
	}
}

// InitializeApp sets up all API-mode dependencies and returns a configured
// Gin router, a cleanup function for graceful shutdown, and any error
// encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL (job-log store).
//   - Opens the filesystem blob store holding inputs and derived artifacts.
//   - Wires the artifact and job services into the HTTP handler and router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function that drains running jobs and closes the DB.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	store, err := blob.NewFSStore(cfg.Blob.DataDir)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	repo := storage.NewJobLogRepository(db)

	artifacts := service.NewArtifactService(store)
	jobs := service.NewJobService(repo, NewDriverFactory(store, cfg.Batch))

	handler := api.NewHandler(artifacts, jobs)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		jobs.Wait()
		_ = db.Close()
	}

	return router, cleanup, nil
}
