package blob

import (
	"context"
	"testing"
)

func TestFSStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	key := "bid_ask/bid_ask_20240105/BBCA.csv"
	if err := s.UploadText(ctx, key, "Price,BidVolume\n1000,50\n", "text/csv"); err != nil {
		t.Fatalf("upload: %v", err)
	}

	got, err := s.DownloadText(ctx, key)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if got != "Price,BidVolume\n1000,50\n" {
		t.Fatalf("content mismatch: %q", got)
	}

	// Overwrite semantics
	if err := s.UploadText(ctx, key, "v2", "text/csv"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := s.DownloadText(ctx, key); got != "v2" {
		t.Fatalf("overwrite not applied: %q", got)
	}
}

func TestFSStore_DownloadMissing(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, err = s.DownloadText(context.Background(), "done-summary/20240101/DT240101.csv")
	if err == nil {
		t.Fatalf("expected error for missing object")
	}
	if !IsNotFound(err) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestFSStore_ListPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	seed := []string{
		"done-summary/20240104/DT240104.csv",
		"done-summary/20240105/DT240105.csv",
		"bid_ask/bid_ask_20240104/BBCA.csv",
		"bid_ask/bid_ask_20240104/ALL_STOCK.csv",
	}
	for _, k := range seed {
		if err := s.UploadText(ctx, k, "x", ""); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}

	cases := []struct {
		name   string
		opts   ListOptions
		want   int
		first  string
	}{
		{name: "input prefix", opts: ListOptions{Prefix: "done-summary/"}, want: 2, first: "done-summary/20240104/DT240104.csv"},
		{name: "date scoped", opts: ListOptions{Prefix: "bid_ask/bid_ask_20240104/"}, want: 2, first: "bid_ask/bid_ask_20240104/ALL_STOCK.csv"},
		{name: "partial segment", opts: ListOptions{Prefix: "bid_ask/bid_ask_2024"}, want: 2, first: "bid_ask/bid_ask_20240104/ALL_STOCK.csv"},
		{name: "capped", opts: ListOptions{Prefix: "done-summary/", MaxResults: 1}, want: 1, first: "done-summary/20240104/DT240104.csv"},
		{name: "no match", opts: ListOptions{Prefix: "top_broker/"}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListPaths(ctx, tc.opts)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("want %d paths got %d: %v", tc.want, len(got), got)
			}
			if tc.want > 0 && got[0] != tc.first {
				t.Fatalf("first path: want %s got %s", tc.first, got[0])
			}
		})
	}
}
