package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adsabs/adsboost/core"
	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/ingest"
	"github.com/adsabs/adsboost/internal/outwriter"
	"github.com/adsabs/adsboost/internal/queue"
	"github.com/adsabs/adsboost/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scoreCmd scores records read from a file.
var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Compute boost factors for records in a JSON or CSV file",
	Long: `Score every record in a file and print the boost factors.

Accepted inputs:
- .json / .jsonl / .ndjson: one object, an array of objects, or one object per line
- .csv: a header row; bib_data, metrics and collections cells may hold JSON

Each result carries the refereed, doctype and recency factors, the combined
boost_factor, the per-discipline weights and the final boosts. Records that
needed a fallback list the reason in the fallbacks column.

Examples:
  # Score a batch and show the ten strongest astronomy boosts
  adsboost score records.jsonl --sort-by astronomy --limit 10

  # Score, store and publish in one pass
  adsboost score records.json --persist --publish

  # Write results as Parquet
  adsboost score records.csv --output parquet --output-file boosts.parquet`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return sharedSetup(viper.GetBool("persist"))
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := executeScore(rootCtx, args[0]); err != nil {
			contract.LogFatal("Cannot score records", err)
		}
	},
}

func executeScore(ctx context.Context, path string) error {
	start := time.Now()
	raws, err := ingest.ReadRecordsFile(path)
	if err != nil {
		return err
	}
	if len(raws) == 0 {
		return fmt.Errorf("no records found in %s", path)
	}

	var opts []core.ProcessorOption
	if viper.GetBool("persist") {
		bs, err := requireStore()
		if err != nil {
			return err
		}
		opts = append(opts, core.WithStore(bs))
	}
	if viper.GetBool("publish") {
		q, err := queue.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = q.Close() }()
		opts = append(opts, core.WithPublisher(q))
	}

	proc := core.NewProcessor(cfg.Scoring, opts...)
	items, summary := proc.ProcessBatch(ctx, raws, cfg.Workers)

	records := make([]schema.BoostRecord, 0, len(items))
	for _, item := range items {
		if item.Err != nil {
			slog.Error("record not scored", "index", item.Index, "error", item.Err)
			continue
		}
		records = append(records, item.Record)
	}
	slog.Info("scoring finished",
		"processed", summary.Processed, "rejected", summary.Rejected, "failed", summary.Failed)

	if strings.TrimSpace(viper.GetString("sort-by")) != "" {
		records = core.RankRecords(records, cfg.SortBy, cfg.Limit)
	} else if cfg.Limit > 0 && len(records) > cfg.Limit {
		records = records[:cfg.Limit]
	}

	results := make([]schema.BoostResult, len(records))
	for i, r := range records {
		results[i] = r.BoostResult
	}
	if err := outwriter.PrintBoostResults(results, cfg, time.Since(start)); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d records failed", summary.Failed, len(raws))
	}
	return nil
}
