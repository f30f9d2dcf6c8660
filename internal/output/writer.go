// Package output serializes aggregated rows to CSV artifacts in the blob
// store. Headers come from the row struct's field names in declaration order
// (gocsv's default when no csv tag is set), which keeps the on-disk contract
// identical to the PascalCase aggregate models.
package output

import (
	"context"
	"fmt"
	"reflect"

	"github.com/gocarina/gocsv"

	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/logger"
)

const contentTypeCSV = "text/csv"

// WriteCSV marshals rows (a slice of one of the aggregate row structs) and
// uploads the result at path.
//
// An empty slice is an explicit no-op: nothing is uploaded, the skip is
// logged, and (false, nil) is returned so callers can count real artifacts.
//
// Field values are quoted by encoding/csv underneath when they contain the
// delimiter. The system this replaces wrote fields raw; quoting is a
// deliberate hardening, not a behavior change for the numeric/code-only rows
// produced today.
func WriteCSV(ctx context.Context, store blob.Store, path string, rows any) (bool, error) {
	if rowCount(rows) == 0 {
		logger.L().Info().Str("path", path).Msg("no rows to write, skipping upload")
		return false, nil
	}

	content, err := gocsv.MarshalString(rows)
	if err != nil {
		return false, fmt.Errorf("marshal csv for %s: %w", path, err)
	}
	if err := store.UploadText(ctx, path, content, contentTypeCSV); err != nil {
		return false, fmt.Errorf("upload %s: %w", path, err)
	}
	return true, nil
}

func rowCount(rows any) int {
	v := reflect.ValueOf(rows)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return v.Len()
	}
	return 0
}
