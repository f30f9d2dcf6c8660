package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/service"
)

func TestRouter_RequestIDHeader(t *testing.T) {
	r := setupRouter(&mockArtifacts{dates: []string{}}, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dates?family=bid_ask", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := setupRouter(&mockArtifacts{}, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("code=%d", w.Code)
	}
}

// End-to-end over a real artifact service and filesystem store.
func TestRouter_ServesStoredArtifacts(t *testing.T) {
	store, err := blob.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	seed := map[string]string{
		"bid_ask/bid_ask_20240102/BBCA.csv":  "Price,BidVolume\n1000,125\n",
		"top_broker/top_broker_20240102.csv": "Broker,TotalValue\nAK,5000\n",
	}
	for path, content := range seed {
		if err := store.UploadText(context.Background(), path, content, "text/csv"); err != nil {
			t.Fatalf("seed %s: %v", path, err)
		}
	}

	r := setupRouter(service.NewArtifactService(store), &mockJobs{})

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/api/v1/bid-ask/20240102/BBCA", status: http.StatusOK, body: "Price,BidVolume\n1000,125\n"},
		{path: "/api/v1/bid-ask/20240102/TLKM", status: http.StatusNotFound},
		{path: "/api/v1/top-broker/20240102", status: http.StatusOK, body: "Broker,TotalValue\nAK,5000\n"},
		{path: "/api/v1/top-broker/20240103", status: http.StatusNotFound},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.status {
			t.Fatalf("%s: code=%d", tc.path, w.Code)
		}
		if tc.body != "" && w.Body.String() != tc.body {
			t.Fatalf("%s: body=%q", tc.path, w.Body.String())
		}
	}
}
