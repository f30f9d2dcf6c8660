package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/idxpulse/idxpulse/config"
	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/pipeline"
	"github.com/idxpulse/idxpulse/internal/service"
)

func TestNewDriverFactory(t *testing.T) {
	store, err := blob.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	factory := NewDriverFactory(store, config.BatchConfig{BatchSize: 2, MaxConcurrent: 2})

	for _, name := range []string{service.PipelineBidAsk, service.PipelineBrokerSummary} {
		d, err := factory(name, pipeline.NopReporter{}, false)
		if err != nil || d == nil {
			t.Fatalf("%s: factory failed: %v", name, err)
		}
	}

	if _, err := factory("bogus", pipeline.NopReporter{}, false); err == nil {
		t.Fatalf("expected error for unknown pipeline")
	}
}

func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Blob: config.BlobConfig{DataDir: t.TempDir()},
		Postgres: config.PostgresConfig{
			Host:     "127.0.0.1",
			Port:     54329, // unlikely mapped
			User:     "x",
			Password: "y",
			DBName:   "z",
			SSLMode:  "disable",
		},
	}

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectPing()

	oldOpener := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	oldCfg := config.AppConfig
	config.AppConfig = config.Config{
		Blob:  config.BlobConfig{DataDir: t.TempDir()},
		Batch: config.BatchConfig{BatchSize: 2, MaxConcurrent: 2},
	}
	t.Cleanup(func() {
		postgresOpener = oldOpener
		config.AppConfig = oldCfg
		_ = db.Close()
	})

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err set or nil components")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	cleanup()
}
