package main

//
//  @title           idxpulse API
//  @version         1.0
//  @description     IDX daily transaction analytics: bid/ask footprints and broker summaries.
//  @termsOfService  https://github.com/idxpulse/idxpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/idxpulse/idxpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        artifacts
//  @tag.description Endpoints serving derived CSV artifacts
//
//  @tag.name        jobs
//  @tag.description Batch run control and polling
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/idxpulse/idxpulse/config"
	_ "github.com/idxpulse/idxpulse/docs" // swagger docs
	"github.com/idxpulse/idxpulse/internal/app"
	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/logger"
	"github.com/idxpulse/idxpulse/internal/pipeline"
	"github.com/idxpulse/idxpulse/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then drains the HTTP
// server and runs the cleanup callback.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runBatch executes the selected pipelines once against the configured data
// directory and exits non-zero if any run fails outright.
func runBatch(ctx context.Context, pipelineName string, force bool) {
	store, err := blob.NewFSStore(config.AppConfig.Blob.DataDir)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("blob store init failed")
	}
	factory := app.NewDriverFactory(store, config.AppConfig.Batch)

	names := []string{pipelineName}
	if pipelineName == service.PipelineAll {
		names = []string{service.PipelineBidAsk, service.PipelineBrokerSummary}
	}

	for _, name := range names {
		driver, err := factory(name, pipeline.NopReporter{}, force)
		if err != nil {
			logger.L().Fatal().Str("pipeline", name).Err(err).Msg("driver setup failed")
		}

		res := driver.Run(ctx)
		if !res.Success {
			logger.L().Fatal().Str("pipeline", name).Str("message", res.Message).Msg("batch run failed")
		}
		logger.L().Info().Str("pipeline", name).Str("message", res.Message).Msg("batch run finished")
	}
}

// main is the entry point of the idxpulse application.
//
// Modes (selected via --mode flag):
//   - batch: Processes unprocessed daily dumps from the data directory.
//   - api:   Starts the REST API serving derived artifacts and job control.
//
// Flags:
//   - --mode:     Execution mode ("batch" or "api"). Default: "batch".
//   - --pipeline: Pipeline for batch mode ("bid_ask", "broker_summary" or "all").
//   - --force:    Reprocess dates even if outputs already exist.
//   - --port:     Port for API mode. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "batch", "Mode: batch or api")
	pipelineName := flag.String("pipeline", service.PipelineAll, "Pipeline for batch mode: bid_ask, broker_summary or all")
	force := flag.Bool("force", false, "Reprocess dates even if outputs already exist")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "batch":
		logger.L().Info().Str("pipeline", *pipelineName).Msg("running batch")
		runBatch(ctx, *pipelineName, *force)

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
