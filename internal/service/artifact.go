package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/idxpulse/idxpulse/internal/blob"
)

// ErrBadRequest marks caller mistakes (invalid date or code) so the handler
// can map them to 400 instead of 500.
type ErrBadRequest struct{ Reason string }

func (e ErrBadRequest) Error() string { return e.Reason }

var (
	dateRe = regexp.MustCompile(`^\d{8}$`)
	codeRe = regexp.MustCompile(`^[A-Z0-9-]{1,10}$`)
)

// ArtifactService exposes read access to the derived CSV artifacts in the
// blob store. It owns path construction so HTTP input never reaches the
// store as a raw path.
type ArtifactService interface {
	// ListDates returns the date suffixes available for an artifact family
	// ("bid_ask", "broker_summary", "top_broker"), newest first.
	ListDates(ctx context.Context, family string) ([]string, error)

	// BidAsk returns the per-stock footprint CSV; stock "ALL_STOCK" selects
	// the consolidated file.
	BidAsk(ctx context.Context, date, stock string) (string, error)

	// BrokerSummary returns the per-emiten CSV, or the detailed cross-stock
	// summary when emiten is empty.
	BrokerSummary(ctx context.Context, date, emiten string) (string, error)

	// BrokerTransaction returns the per-broker transaction pivot CSV.
	BrokerTransaction(ctx context.Context, date, broker string) (string, error)

	// TopBroker returns the top-broker ranking CSV.
	TopBroker(ctx context.Context, date string) (string, error)
}

// familyPrefixes maps artifact families to the blob prefix their dated
// outputs live under, plus the pattern extracting the date suffix.
var familyPrefixes = map[string]struct {
	prefix string
	dateRe *regexp.Regexp
}{
	"bid_ask":        {prefix: "bid_ask/", dateRe: regexp.MustCompile(`^bid_ask/bid_ask_(\d{8})/`)},
	"broker_summary": {prefix: "broker_summary_output/", dateRe: regexp.MustCompile(`^broker_summary_output/broker_summary_(\d{8})/`)},
	"top_broker":     {prefix: "top_broker/", dateRe: regexp.MustCompile(`^top_broker/top_broker_(\d{8})\.csv$`)},
}

type artifactService struct {
	store blob.Store
}

func NewArtifactService(store blob.Store) ArtifactService {
	return &artifactService{store: store}
}

func (s *artifactService) ListDates(ctx context.Context, family string) ([]string, error) {
	fam, ok := familyPrefixes[family]
	if !ok {
		return nil, ErrBadRequest{Reason: fmt.Sprintf("unknown artifact family %q", family)}
	}

	paths, err := s.store.ListPaths(ctx, blob.ListOptions{Prefix: fam.prefix})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", fam.prefix, err)
	}

	seen := make(map[string]struct{})
	var dates []string
	for _, p := range paths {
		m := fam.dateRe.FindStringSubmatch(p)
		if m == nil {
			continue
		}
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		dates = append(dates, m[1])
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (s *artifactService) BidAsk(ctx context.Context, date, stock string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	stock = strings.ToUpper(strings.TrimSpace(stock))
	if stock != "ALL_STOCK" && !codeRe.MatchString(stock) {
		return "", ErrBadRequest{Reason: "invalid stock code"}
	}
	return s.store.DownloadText(ctx, fmt.Sprintf("bid_ask/bid_ask_%s/%s.csv", date, stock))
}

func (s *artifactService) BrokerSummary(ctx context.Context, date, emiten string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	if emiten == "" {
		return s.store.DownloadText(ctx, fmt.Sprintf("broker_summary/broker_summary_%s.csv", date))
	}
	emiten = strings.ToUpper(strings.TrimSpace(emiten))
	if !codeRe.MatchString(emiten) {
		return "", ErrBadRequest{Reason: "invalid emiten code"}
	}
	return s.store.DownloadText(ctx, fmt.Sprintf("broker_summary_output/broker_summary_%s/%s.csv", date, emiten))
}

func (s *artifactService) BrokerTransaction(ctx context.Context, date, broker string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	broker = strings.ToUpper(strings.TrimSpace(broker))
	if !codeRe.MatchString(broker) {
		return "", ErrBadRequest{Reason: "invalid broker code"}
	}
	return s.store.DownloadText(ctx, fmt.Sprintf("broker_transaction_output/broker_transaction_%s/%s.csv", date, broker))
}

func (s *artifactService) TopBroker(ctx context.Context, date string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	return s.store.DownloadText(ctx, fmt.Sprintf("top_broker/top_broker_%s.csv", date))
}

func validateDate(date string) error {
	if !dateRe.MatchString(date) {
		return ErrBadRequest{Reason: "date must be YYYYMMDD"}
	}
	return nil
}
