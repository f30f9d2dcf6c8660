package aggregate

import (
	"math"
	"testing"

	"github.com/idxpulse/idxpulse/internal/domain/models"
)

func TestBrokerSummaries_BuyerSellerAttribution(t *testing.T) {
	// AK sells 100@1000 to BK, BK sells 40@1050 to AK.
	txs := []models.Transaction{
		tx("BBCA", 1000, 100, 1, 2, "AK", "BK"),
		tx("BBCA", 1050, 40, 1, 2, "BK", "AK"),
	}

	perEmiten := BrokerSummaries(txs)
	rows, ok := perEmiten["BBCA"]
	if !ok || len(rows) != 2 {
		t.Fatalf("want 2 broker rows for BBCA, got %+v", perEmiten)
	}

	byCode := map[string]models.BrokerSummary{}
	for _, r := range rows {
		byCode[r.BrokerCode] = r
	}

	ak := byCode["AK"]
	if ak.SellerVolume != 100 || ak.SellerValue != 100000 {
		t.Fatalf("AK seller side: %+v", ak)
	}
	if ak.BuyerVolume != 40 || ak.BuyerValue != 42000 {
		t.Fatalf("AK buyer side: %+v", ak)
	}
	if ak.NetBuyVolume != -60 || ak.NetBuyValue != -58000 {
		t.Fatalf("AK net must be buyer minus seller: %+v", ak)
	}
	if ak.BuyerAvgPrice != 1050 || ak.SellerAvgPrice != 1000 {
		t.Fatalf("AK averages: %+v", ak)
	}

	bk := byCode["BK"]
	if bk.BuyerVolume != 100 || bk.SellerVolume != 40 {
		t.Fatalf("BK sides: %+v", bk)
	}

	// BK is net buyer, AK net seller: sort desc by NetBuyValue.
	if rows[0].BrokerCode != "BK" || rows[1].BrokerCode != "AK" {
		t.Fatalf("sort order: %+v", rows)
	}
}

func TestBrokerSummaries_ZeroVolumeAverage(t *testing.T) {
	// CC only ever sells; its buyer average must be 0, not NaN.
	txs := []models.Transaction{tx("BBCA", 1000, 10, 1, 2, "CC", "DD")}

	rows := BrokerSummaries(txs)["BBCA"]
	var cc models.BrokerSummary
	for _, r := range rows {
		if r.BrokerCode == "CC" {
			cc = r
		}
	}
	if cc.BuyerAvgPrice != 0 {
		t.Fatalf("buyer avg must be 0 for zero volume, got %v", cc.BuyerAvgPrice)
	}
	if math.IsNaN(cc.BuyerAvgPrice) || math.IsInf(cc.BuyerAvgPrice, 0) {
		t.Fatalf("average must never be NaN/Inf")
	}
}

func TestBrokerTransactions(t *testing.T) {
	txs := []models.Transaction{
		tx("BBCA", 1000, 100, 1, 2, "AK", "BK"), // BK buys BBCA
		tx("TLKM", 3000, 10, 1, 2, "AK", "BK"),  // BK buys TLKM
		tx("BBCA", 1100, 20, 1, 2, "BK", "CC"),  // BK sells BBCA
	}

	perBroker := BrokerTransactions(txs)
	bk, ok := perBroker["BK"]
	if !ok || len(bk) != 2 {
		t.Fatalf("want BK rows for 2 stocks, got %+v", perBroker)
	}

	var bbca models.BrokerTransaction
	for _, r := range bk {
		if r.StockCode == "BBCA" {
			bbca = r
		}
	}
	if bbca.BuyerVolume != 100 || bbca.SellerVolume != 20 {
		t.Fatalf("BK BBCA sides: %+v", bbca)
	}
	if bbca.TransactionCount != 2 {
		t.Fatalf("BK BBCA tx count: %+v", bbca)
	}
	wantAvg := (100*1000.0 + 20*1100.0) / 120.0
	if bbca.AvgPrice != wantAvg {
		t.Fatalf("combined avg: want %v got %v", wantAvg, bbca.AvgPrice)
	}
}

func TestBrokerShapes_Reconcile(t *testing.T) {
	txs := []models.Transaction{
		tx("BBCA", 1000, 100, 5, 3, "AK", "BK"),
		tx("BBCA", 1050, 40, 2, 7, "BK", "AK"),
		tx("BBRI", 4800, 70, 9, 1, "CC", "BK"),
		tx("TLKM", 3100, 10, 1, 2, "AK", "CC"),
	}

	perEmiten := BrokerSummaries(txs)
	details := BrokerDetails(txs)
	top := TopBrokers(txs)

	// Sum of per-emiten buyer values per broker must equal the detail row.
	buyerValue := map[string]float64{}
	for _, rows := range perEmiten {
		for _, r := range rows {
			buyerValue[r.BrokerCode] += r.BuyerValue
		}
	}
	for _, d := range details {
		if got := buyerValue[d.BrokerCode]; got != d.BuyerValue {
			t.Fatalf("broker %s buyer value: emiten sum %v detail %v", d.BrokerCode, got, d.BuyerValue)
		}
	}

	// Top-broker totals must be buyer+seller of the detail rows.
	detailByCode := map[string]models.BrokerDetail{}
	for _, d := range details {
		detailByCode[d.BrokerCode] = d
	}
	for _, tb := range top {
		d := detailByCode[tb.BrokerCode]
		if tb.TotalValue != d.BuyerValue+d.SellerValue {
			t.Fatalf("broker %s total value mismatch", tb.BrokerCode)
		}
		if tb.TotalFrequency != d.BuyerFrequency+d.SellerFrequency {
			t.Fatalf("broker %s total frequency mismatch", tb.BrokerCode)
		}
		if tb.NetBuyValue != d.NetBuyValue {
			t.Fatalf("broker %s net mismatch", tb.BrokerCode)
		}
	}

	// Top ranking sorted desc by TotalValue.
	for i := 1; i < len(top); i++ {
		if top[i].TotalValue > top[i-1].TotalValue {
			t.Fatalf("top brokers not sorted by total value desc")
		}
	}
}

func TestBrokerAggregation_EmptyInput(t *testing.T) {
	if got := BrokerSummaries(nil); len(got) != 0 {
		t.Fatalf("summaries: %+v", got)
	}
	if got := BrokerTransactions(nil); len(got) != 0 {
		t.Fatalf("transactions: %+v", got)
	}
	if got := BrokerDetails(nil); len(got) != 0 {
		t.Fatalf("details: %+v", got)
	}
	if got := TopBrokers(nil); len(got) != 0 {
		t.Fatalf("top: %+v", got)
	}
}
