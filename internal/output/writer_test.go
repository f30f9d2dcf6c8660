package output

import (
	"context"
	"strings"
	"testing"

	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/domain/models"
)

func newStore(t *testing.T) *blob.FSStore {
	t.Helper()
	s, err := blob.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestWriteCSV_HeaderFromFieldNames(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	rows := []models.PriceLevel{
		{Price: 1000, BidVolume: 125, AskVolume: 50, NetVolume: -75, TotalVolume: 175, BidCount: 2, AskCount: 1, TotalCount: 3, BidBrokerCount: 1, AskBrokerCount: 1},
	}

	written, err := WriteCSV(ctx, store, "bid_ask/bid_ask_20240105/BBCA.csv", rows)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !written {
		t.Fatalf("expected artifact to be written")
	}

	got, err := store.DownloadText(ctx, "bid_ask/bid_ask_20240105/BBCA.csv")
	if err != nil {
		t.Fatalf("download: %v", err)
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want header + 1 row, got %d lines: %q", len(lines), got)
	}
	wantHeader := "Price,BidVolume,AskVolume,NetVolume,TotalVolume,BidCount,AskCount,TotalCount,BidBrokerCount,AskBrokerCount"
	if lines[0] != wantHeader {
		t.Fatalf("header mismatch:\nwant %s\ngot  %s", wantHeader, lines[0])
	}
	if lines[1] != "1000,125,50,-75,175,2,1,3,1,1" {
		t.Fatalf("row mismatch: %s", lines[1])
	}
}

func TestWriteCSV_EmptyIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	written, err := WriteCSV(ctx, store, "broker_summary/broker_summary_20240105.csv", []models.BrokerDetail{})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if written {
		t.Fatalf("empty input must not write")
	}

	if _, err := store.DownloadText(ctx, "broker_summary/broker_summary_20240105.csv"); !blob.IsNotFound(err) {
		t.Fatalf("no object should exist, got err=%v", err)
	}
}

func TestWriteCSV_BrokerRow(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	rows := []models.BrokerSummary{
		{BrokerCode: "AK", BuyerVolume: 40, BuyerValue: 42000, BuyerAvgPrice: 1050, SellerVolume: 100, SellerValue: 100000, SellerAvgPrice: 1000, NetBuyVolume: -60, NetBuyValue: -58000},
	}
	if _, err := WriteCSV(ctx, store, "broker_summary_output/broker_summary_20240105/BBCA.csv", rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, _ := store.DownloadText(ctx, "broker_summary_output/broker_summary_20240105/BBCA.csv")
	if !strings.HasPrefix(got, "BrokerCode,BuyerVolume,BuyerValue,BuyerAvgPrice,SellerVolume,SellerValue,SellerAvgPrice,NetBuyVolume,NetBuyValue\n") {
		t.Fatalf("broker header mismatch: %q", got)
	}
	if !strings.Contains(got, "AK,40,42000,1050,100,100000,1000,-60,-58000") {
		t.Fatalf("broker row mismatch: %q", got)
	}
}
