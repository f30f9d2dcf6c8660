// Package aggregate implements the in-memory aggregation passes of the
// pipeline: the bid/ask price-level footprint and the broker position
// summaries. All functions are pure transforms over one day's transactions;
// grouping is commutative, so input row order never affects output.
package aggregate

import (
	"sort"

	"github.com/idxpulse/idxpulse/internal/domain/models"
)

// stockPrice is the composite grouping key of the bid/ask pass: exact stock
// code and exact numeric price, no banding.
type stockPrice struct {
	stock string
	price float64
}

// bidAskBucket accumulates one (stock, price) level. Net and total figures
// are derived when rows are built, never accumulated here.
type bidAskBucket struct {
	bidVolume  float64
	askVolume  float64
	bidCount   int64
	askCount   int64
	bidBrokers map[string]struct{}
	askBrokers map[string]struct{}
}

// bidAskTable is the two-level keyed container of the bid/ask pass with
// insertion-on-first-access semantics.
type bidAskTable map[stockPrice]*bidAskBucket

func (t bidAskTable) at(stock string, price float64) *bidAskBucket {
	k := stockPrice{stock: stock, price: price}
	b, ok := t[k]
	if !ok {
		b = &bidAskBucket{
			bidBrokers: make(map[string]struct{}),
			askBrokers: make(map[string]struct{}),
		}
		t[k] = b
	}
	return b
}

// BidAskResult carries both artifacts of the bid/ask pass: the consolidated
// all-stocks rows and the per-stock rows. Both are built from the same
// buckets, so they always reconcile.
type BidAskResult struct {
	// AllStocks is sorted by stock code ascending, then price ascending.
	AllStocks []models.StockPriceLevel
	// PerStock maps stock code to rows sorted by price ascending.
	PerStock map[string][]models.PriceLevel
}

// BidAsk classifies and aggregates one day's transactions by (stock, price).
//
// Classification: a transaction is a bid (seller-initiated, HAKA) iff
// OrderRef1 > OrderRef2; ties and everything else are asks (HAKI). On a bid
// the seller broker joins the bucket's unique bid-broker set; on an ask the
// buyer broker joins the ask set. Empty broker codes never enter a set.
//
// Empty input yields an empty result, not an error.
func BidAsk(txs []models.Transaction) BidAskResult {
	table := make(bidAskTable)

	for _, tx := range txs {
		b := table.at(tx.StockCode, tx.Price)
		if tx.IsBid() {
			b.bidVolume += tx.Volume
			b.bidCount++
			if tx.SellerBroker != "" {
				b.bidBrokers[tx.SellerBroker] = struct{}{}
			}
		} else {
			b.askVolume += tx.Volume
			b.askCount++
			if tx.BuyerBroker != "" {
				b.askBrokers[tx.BuyerBroker] = struct{}{}
			}
		}
	}

	res := BidAskResult{PerStock: make(map[string][]models.PriceLevel)}

	keys := make([]stockPrice, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].stock != keys[j].stock {
			return keys[i].stock < keys[j].stock
		}
		return keys[i].price < keys[j].price
	})

	for _, k := range keys {
		b := table[k]
		level := models.PriceLevel{
			Price:          k.price,
			BidVolume:      b.bidVolume,
			AskVolume:      b.askVolume,
			NetVolume:      b.askVolume - b.bidVolume,
			TotalVolume:    b.bidVolume + b.askVolume,
			BidCount:       b.bidCount,
			AskCount:       b.askCount,
			TotalCount:     b.bidCount + b.askCount,
			BidBrokerCount: int64(len(b.bidBrokers)),
			AskBrokerCount: int64(len(b.askBrokers)),
		}
		res.PerStock[k.stock] = append(res.PerStock[k.stock], level)
		res.AllStocks = append(res.AllStocks, models.StockPriceLevel{
			StockCode:      k.stock,
			Price:          level.Price,
			BidVolume:      level.BidVolume,
			AskVolume:      level.AskVolume,
			NetVolume:      level.NetVolume,
			TotalVolume:    level.TotalVolume,
			BidCount:       level.BidCount,
			AskCount:       level.AskCount,
			TotalCount:     level.TotalCount,
			BidBrokerCount: level.BidBrokerCount,
			AskBrokerCount: level.AskBrokerCount,
		})
	}

	return res
}
