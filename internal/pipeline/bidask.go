package pipeline

import (
	"context"
	"fmt"

	"github.com/idxpulse/idxpulse/internal/aggregate"
	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/ingestion"
	"github.com/idxpulse/idxpulse/internal/logger"
	"github.com/idxpulse/idxpulse/internal/output"
)

// BidAskCalculator produces the per-stock bid/ask footprint files and the
// consolidated ALL_STOCK file for one trading date.
type BidAskCalculator struct {
	store blob.Store
}

func NewBidAskCalculator(store blob.Store) *BidAskCalculator {
	return &BidAskCalculator{store: store}
}

func (c *BidAskCalculator) Name() string { return "bid_ask" }

func (c *BidAskCalculator) OutputPrefix(dateSuffix string) string {
	return fmt.Sprintf("bid_ask/bid_ask_%s/", dateSuffix)
}

// ProcessFile downloads one daily dump, classifies and aggregates it, and
// writes one CSV per stock plus the consolidated file. Missing input or a
// header-only file is a successful no-op.
func (c *BidAskCalculator) ProcessFile(ctx context.Context, inputPath, dateSuffix string) ([]string, error) {
	raw, err := c.store.DownloadText(ctx, inputPath)
	if err != nil {
		if blob.IsNotFound(err) {
			logger.L().Info().Str("path", inputPath).Msg("input absent, nothing to process")
			return nil, nil
		}
		return nil, fmt.Errorf("download %s: %w", inputPath, err)
	}

	txs, err := ingestion.ParseBidAskFile(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", inputPath, err)
	}
	if len(txs) == 0 {
		logger.L().Info().Str("path", inputPath).Msg("no transactions in input, skipping date")
		return nil, nil
	}

	res := aggregate.BidAsk(txs)

	var written []string
	for stock, rows := range res.PerStock {
		path := fmt.Sprintf("bid_ask/bid_ask_%s/%s.csv", dateSuffix, stock)
		ok, err := output.WriteCSV(ctx, c.store, path, rows)
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, path)
		}
	}

	allPath := fmt.Sprintf("bid_ask/bid_ask_%s/ALL_STOCK.csv", dateSuffix)
	ok, err := output.WriteCSV(ctx, c.store, allPath, res.AllStocks)
	if err != nil {
		return written, err
	}
	if ok {
		written = append(written, allPath)
	}

	logger.L().Info().
		Str("date", dateSuffix).
		Int("transactions", len(txs)).
		Int("files", len(written)).
		Msg("bid/ask date processed")
	return written, nil
}
