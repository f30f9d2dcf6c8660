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

// BrokerCalculator produces the four broker artifacts for one trading date:
// per-emiten summaries, per-broker transaction pivots, the detailed
// cross-stock summary and the top-broker ranking. All four are projections of
// the same transaction set, so their sums reconcile by construction.
type BrokerCalculator struct {
	store blob.Store
}

func NewBrokerCalculator(store blob.Store) *BrokerCalculator {
	return &BrokerCalculator{store: store}
}

func (c *BrokerCalculator) Name() string { return "broker_summary" }

// OutputPrefix points at the per-emiten directory; it is written in the same
// pass as the other three shapes, so its non-emptiness is the idempotency
// marker for all of them.
func (c *BrokerCalculator) OutputPrefix(dateSuffix string) string {
	return fmt.Sprintf("broker_summary_output/broker_summary_%s/", dateSuffix)
}

func (c *BrokerCalculator) ProcessFile(ctx context.Context, inputPath, dateSuffix string) ([]string, error) {
	raw, err := c.store.DownloadText(ctx, inputPath)
	if err != nil {
		if blob.IsNotFound(err) {
			logger.L().Info().Str("path", inputPath).Msg("input absent, nothing to process")
			return nil, nil
		}
		return nil, fmt.Errorf("download %s: %w", inputPath, err)
	}

	txs, err := ingestion.ParseBrokerFile(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", inputPath, err)
	}
	if len(txs) == 0 {
		logger.L().Info().Str("path", inputPath).Msg("no transactions in input, skipping date")
		return nil, nil
	}

	var written []string
	record := func(path string, rows any) error {
		ok, err := output.WriteCSV(ctx, c.store, path, rows)
		if err != nil {
			return err
		}
		if ok {
			written = append(written, path)
		}
		return nil
	}

	for emiten, rows := range aggregate.BrokerSummaries(txs) {
		path := fmt.Sprintf("broker_summary_output/broker_summary_%s/%s.csv", dateSuffix, emiten)
		if err := record(path, rows); err != nil {
			return written, err
		}
	}

	for broker, rows := range aggregate.BrokerTransactions(txs) {
		path := fmt.Sprintf("broker_transaction_output/broker_transaction_%s/%s.csv", dateSuffix, broker)
		if err := record(path, rows); err != nil {
			return written, err
		}
	}

	detailPath := fmt.Sprintf("broker_summary/broker_summary_%s.csv", dateSuffix)
	if err := record(detailPath, aggregate.BrokerDetails(txs)); err != nil {
		return written, err
	}

	topPath := fmt.Sprintf("top_broker/top_broker_%s.csv", dateSuffix)
	if err := record(topPath, aggregate.TopBrokers(txs)); err != nil {
		return written, err
	}

	logger.L().Info().
		Str("date", dateSuffix).
		Int("transactions", len(txs)).
		Int("files", len(written)).
		Msg("broker date processed")
	return written, nil
}
