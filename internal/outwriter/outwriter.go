// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteResults prints freshly computed boost factors using the configured output format.
func (ow *OutWriter) WriteResults(results []schema.BoostResult, cfg *contract.Config, duration time.Duration) error {
	return PrintBoostResults(results, cfg, duration)
}

// WriteRecords prints stored boost factors using the configured output format.
func (ow *OutWriter) WriteRecords(records []schema.BoostRecord, cfg *contract.Config) error {
	return PrintBoostRecords(records, cfg)
}

// WriteRankings prints the score tables of the active configuration.
func (ow *OutWriter) WriteRankings(report schema.RankingsReport, cfg *contract.Config) error {
	return PrintRankings(report, cfg)
}
