package aggregate

import (
	"sort"

	"github.com/idxpulse/idxpulse/internal/domain/models"
)

// sideTotals accumulates one side (buyer or seller) of a broker bucket.
type sideTotals struct {
	volume float64
	value  float64
	count  int64
}

func (s *sideTotals) add(tx models.Transaction) {
	s.volume += tx.Volume
	s.value += tx.Value()
	s.count++
}

// brokerBucket holds both sides for one grouping key. Unlike the bid/ask
// classifier, attribution here is by broker identity: every transaction
// contributes to exactly one buyer bucket and one seller bucket.
type brokerBucket struct {
	buyer  sideTotals
	seller sideTotals
}

type stockBroker struct {
	stock  string
	broker string
}

// brokerTable is the composite-key container shared by all four broker
// output shapes; the per-emiten, per-broker and global shapes are different
// projections of the same (stock, broker) buckets, so their sums always
// reconcile.
type brokerTable map[stockBroker]*brokerBucket

func (t brokerTable) at(stock, broker string) *brokerBucket {
	k := stockBroker{stock: stock, broker: broker}
	b, ok := t[k]
	if !ok {
		b = &brokerBucket{}
		t[k] = b
	}
	return b
}

func buildBrokerTable(txs []models.Transaction) brokerTable {
	table := make(brokerTable)
	for _, tx := range txs {
		if tx.BuyerBroker != "" {
			table.at(tx.StockCode, tx.BuyerBroker).buyer.add(tx)
		}
		if tx.SellerBroker != "" {
			table.at(tx.StockCode, tx.SellerBroker).seller.add(tx)
		}
	}
	return table
}

// safeDiv guards every average against a zero denominator: a broker with no
// volume on a side has average price 0, never NaN or Inf.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// BrokerSummaries groups one day's transactions per emiten, producing for
// each stock the brokers active in it with buyer-side, seller-side and net
// figures. Rows are sorted descending by NetBuyValue; ties break on broker
// code ascending so output is deterministic.
func BrokerSummaries(txs []models.Transaction) map[string][]models.BrokerSummary {
	table := buildBrokerTable(txs)

	out := make(map[string][]models.BrokerSummary)
	for k, b := range table {
		out[k.stock] = append(out[k.stock], models.BrokerSummary{
			BrokerCode:     k.broker,
			BuyerVolume:    b.buyer.volume,
			BuyerValue:     b.buyer.value,
			BuyerAvgPrice:  safeDiv(b.buyer.value, b.buyer.volume),
			SellerVolume:   b.seller.volume,
			SellerValue:    b.seller.value,
			SellerAvgPrice: safeDiv(b.seller.value, b.seller.volume),
			NetBuyVolume:   b.buyer.volume - b.seller.volume,
			NetBuyValue:    b.buyer.value - b.seller.value,
		})
	}

	for stock := range out {
		rows := out[stock]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].NetBuyValue != rows[j].NetBuyValue {
				return rows[i].NetBuyValue > rows[j].NetBuyValue
			}
			return rows[i].BrokerCode < rows[j].BrokerCode
		})
	}
	return out
}

// BrokerTransactions groups per broker, producing for each broker the stocks
// it traded that day with combined transaction count and combined average
// price. Rows are sorted descending by NetBuyValue, ties on stock code.
func BrokerTransactions(txs []models.Transaction) map[string][]models.BrokerTransaction {
	table := buildBrokerTable(txs)

	out := make(map[string][]models.BrokerTransaction)
	for k, b := range table {
		combinedVolume := b.buyer.volume + b.seller.volume
		combinedValue := b.buyer.value + b.seller.value
		out[k.broker] = append(out[k.broker], models.BrokerTransaction{
			StockCode:        k.stock,
			BuyerVolume:      b.buyer.volume,
			BuyerValue:       b.buyer.value,
			BuyerAvgPrice:    safeDiv(b.buyer.value, b.buyer.volume),
			SellerVolume:     b.seller.volume,
			SellerValue:      b.seller.value,
			SellerAvgPrice:   safeDiv(b.seller.value, b.seller.volume),
			NetBuyVolume:     b.buyer.volume - b.seller.volume,
			NetBuyValue:      b.buyer.value - b.seller.value,
			TransactionCount: b.buyer.count + b.seller.count,
			AvgPrice:         safeDiv(combinedValue, combinedVolume),
		})
	}

	for broker := range out {
		rows := out[broker]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].NetBuyValue != rows[j].NetBuyValue {
				return rows[i].NetBuyValue > rows[j].NetBuyValue
			}
			return rows[i].StockCode < rows[j].StockCode
		})
	}
	return out
}

// BrokerDetails produces the single cross-stock detailed summary: one row
// per broker over every stock, with per-side frequencies. Sorted descending
// by NetBuyValue, ties on broker code.
func BrokerDetails(txs []models.Transaction) []models.BrokerDetail {
	totals := make(map[string]*brokerBucket)
	at := func(broker string) *brokerBucket {
		b, ok := totals[broker]
		if !ok {
			b = &brokerBucket{}
			totals[broker] = b
		}
		return b
	}

	for _, tx := range txs {
		if tx.BuyerBroker != "" {
			at(tx.BuyerBroker).buyer.add(tx)
		}
		if tx.SellerBroker != "" {
			at(tx.SellerBroker).seller.add(tx)
		}
	}

	out := make([]models.BrokerDetail, 0, len(totals))
	for broker, b := range totals {
		out = append(out, models.BrokerDetail{
			BrokerCode:      broker,
			BuyerVolume:     b.buyer.volume,
			BuyerValue:      b.buyer.value,
			BuyerAvgPrice:   safeDiv(b.buyer.value, b.buyer.volume),
			BuyerFrequency:  b.buyer.count,
			SellerVolume:    b.seller.volume,
			SellerValue:     b.seller.value,
			SellerAvgPrice:  safeDiv(b.seller.value, b.seller.volume),
			SellerFrequency: b.seller.count,
			NetBuyVolume:    b.buyer.volume - b.seller.volume,
			NetBuyValue:     b.buyer.value - b.seller.value,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].NetBuyValue != out[j].NetBuyValue {
			return out[i].NetBuyValue > out[j].NetBuyValue
		}
		return out[i].BrokerCode < out[j].BrokerCode
	})
	return out
}

// TopBrokers produces the comprehensive ranking combining both sides per
// broker, sorted descending by total broker value, ties on broker code.
func TopBrokers(txs []models.Transaction) []models.TopBroker {
	details := BrokerDetails(txs)

	out := make([]models.TopBroker, 0, len(details))
	for _, d := range details {
		out = append(out, models.TopBroker{
			BrokerCode:      d.BrokerCode,
			TotalVolume:     d.BuyerVolume + d.SellerVolume,
			TotalValue:      d.BuyerValue + d.SellerValue,
			TotalFrequency:  d.BuyerFrequency + d.SellerFrequency,
			BuyerVolume:     d.BuyerVolume,
			BuyerValue:      d.BuyerValue,
			BuyerFrequency:  d.BuyerFrequency,
			SellerVolume:    d.SellerVolume,
			SellerValue:     d.SellerValue,
			SellerFrequency: d.SellerFrequency,
			NetBuyVolume:    d.NetBuyVolume,
			NetBuyValue:     d.NetBuyValue,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].BrokerCode < out[j].BrokerCode
	})
	return out
}
