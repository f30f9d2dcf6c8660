package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idxpulse/idxpulse/internal/domain/models"
	"github.com/idxpulse/idxpulse/internal/logger"
)

// The done-summary feed is not consistent about column naming across source
// systems, so each canonical field carries an alias list. Resolution happens
// once against the header; aggregation code only ever sees the canonical
// models.Transaction.
var fieldAliases = map[string][]string{
	"stock":  {"stockcode", "stock code", "stk_code", "kode saham"},
	"seller": {"sellerbroker", "seller broker", "brk_code_seller", "seller"},
	"buyer":  {"buyerbroker", "buyer broker", "brk_code_buyer", "buyer"},
	"volume": {"volume", "trx_volume", "vol"},
	"price":  {"price", "trx_price"},
	"type":   {"typecode", "trx_type", "type"},
	"time":   {"time", "trx_time"},
	"ord1":   {"orderref1", "trx_order_1", "ord1"},
	"ord2":   {"orderref2", "trx_order_2", "ord2"},
}

// requiredFields must all resolve against the header of a semicolon-delimited
// source file; a miss fails the whole file. Order references and time are
// tolerated as absent (they default to 0 / empty per row).
var requiredFields = []string{"stock", "seller", "buyer", "volume", "price", "type"}

// Fixed column layout of the comma-delimited broker source, which keeps a
// header row but guarantees positions instead of names.
const (
	brokerColStock = iota
	brokerColSeller
	brokerColBuyer
	brokerColVolume
	brokerColPrice
	brokerColType
	brokerColTime
	brokerColOrd1
	brokerColOrd2
	brokerColCount
)

// ParseBidAskFile parses raw semicolon-delimited done-summary text into
// transactions for the bid/ask pipeline.
//
// Behavior:
//   - Columns are located by header name via the alias table, not position.
//   - A missing required column fails the parse for the whole file: the
//     function returns no records and an error, never a partial parse.
//   - Per line: blank lines and lines with fewer fields than the header are
//     skipped; volume/price/order references coerce to 0 on bad input.
//   - Only 4-character stock codes are admitted (warrant, rights and bond
//     lines are dropped here).
func ParseBidAskFile(raw string) ([]models.Transaction, error) {
	return parseWithHeader(raw, ';', true)
}

// ParseBrokerFile parses raw broker-source text into transactions. The broker
// source ships with either separator: semicolon files are parsed by header
// name like the bid/ask source, comma files by fixed column position. No
// stock-code length filter is applied in the broker pipeline.
func ParseBrokerFile(raw string) ([]models.Transaction, error) {
	if firstLine(raw) == "" {
		return nil, nil
	}
	if strings.Contains(firstLine(raw), ";") {
		return parseWithHeader(raw, ';', false)
	}
	return parseFixed(raw)
}

// parseWithHeader handles the header-addressed sources. filterCodes enables
// the bid/ask pipeline's 4-character stock code filter.
func parseWithHeader(raw string, comma rune, filterCodes bool) ([]models.Transaction, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		logger.L().Error().Err(err).Msg("source header rejected")
		return nil, err
	}

	var (
		out      []models.Transaction
		short    int
		filtered int
	)

	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) < len(header) {
			short++
			continue
		}

		tx := models.Transaction{
			StockCode:    strings.TrimSpace(rec[cols["stock"]]),
			SellerBroker: strings.TrimSpace(rec[cols["seller"]]),
			BuyerBroker:  strings.TrimSpace(rec[cols["buyer"]]),
			Volume:       coerceFloat(rec[cols["volume"]]),
			Price:        coerceFloat(rec[cols["price"]]),
			TypeCode:     strings.TrimSpace(rec[cols["type"]]),
		}
		if i, ok := cols["time"]; ok {
			tx.Time = strings.TrimSpace(rec[i])
		}
		if i, ok := cols["ord1"]; ok {
			tx.OrderRef1 = coerceFloat(rec[i])
		}
		if i, ok := cols["ord2"]; ok {
			tx.OrderRef2 = coerceFloat(rec[i])
		}

		if filterCodes && len(tx.StockCode) != 4 {
			filtered++
			continue
		}
		out = append(out, tx)
	}

	logger.L().Debug().
		Int("rows", len(out)).
		Int("short_rows", short).
		Int("filtered_codes", filtered).
		Msg("source parsed")
	return out, nil
}

// parseFixed handles the comma-delimited broker layout with positional
// columns.
func parseFixed(raw string) ([]models.Transaction, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.Comma = ','
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var (
		out   []models.Transaction
		short int
	)

	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) < brokerColCount {
			short++
			continue
		}

		out = append(out, models.Transaction{
			StockCode:    strings.TrimSpace(rec[brokerColStock]),
			SellerBroker: strings.TrimSpace(rec[brokerColSeller]),
			BuyerBroker:  strings.TrimSpace(rec[brokerColBuyer]),
			Volume:       coerceFloat(rec[brokerColVolume]),
			Price:        coerceFloat(rec[brokerColPrice]),
			TypeCode:     strings.TrimSpace(rec[brokerColType]),
			Time:         strings.TrimSpace(rec[brokerColTime]),
			OrderRef1:    coerceFloat(rec[brokerColOrd1]),
			OrderRef2:    coerceFloat(rec[brokerColOrd2]),
		})
	}

	logger.L().Debug().Int("rows", len(out)).Int("short_rows", short).Msg("broker source parsed")
	return out, nil
}

// resolveColumns maps canonical field names to header indices using the alias
// table. Returns an error naming every required field that failed to resolve.
func resolveColumns(header []string) (map[string]int, error) {
	norm := make(map[string]int, len(header))
	for i, h := range header {
		norm[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int)
	for field, aliases := range fieldAliases {
		for _, a := range aliases {
			if i, ok := norm[a]; ok {
				cols[field] = i
				break
			}
		}
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required columns missing: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// coerceFloat parses a numeric cell, defaulting to 0 on any failure. Bad
// numerics are a row-level condition that must never abort a file.
func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func firstLine(raw string) string {
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		return raw[:i]
	}
	return raw
}
