package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/outwriter"
	"github.com/adsabs/adsboost/schema"
)

// ErrNothingToExport is returned when the store holds no boost factors.
var ErrNothingToExport = errors.New("no boost factors found to export")

// ExecuteExport writes every stored row to outputFile as CSV or Parquet
// and returns the number of rows exported.
func ExecuteExport(ctx context.Context, bs contract.BoostStore, format schema.OutputMode, outputFile string) (int, error) {
	if bs == nil {
		return 0, errors.New("boost store is not initialized")
	}
	records, err := bs.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve boost factors: %w", err)
	}
	if len(records) == 0 {
		return 0, ErrNothingToExport
	}
	if err := outwriter.ExportRecords(records, format, outputFile); err != nil {
		return 0, fmt.Errorf("failed to export boost factors: %w", err)
	}
	return len(records), nil
}
