package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/ingest"
	"github.com/adsabs/adsboost/internal/queue"
	"github.com/adsabs/adsboost/schema"
	"github.com/spf13/cobra"
)

// submitCmd pushes records onto the inbound queue for the worker.
var submitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Queue records from a file for the boost worker",
	Long: `Read records from a JSON or CSV file and push each one onto the inbound queue.

A running 'adsboost worker' consumes them, stores the boost factors and sends
the responses to the outbound queue. Only the redis queue backend is shared
between processes, so submit requires it.

Examples:
  adsboost submit records.jsonl
  adsboost submit records.json --redis-addr redis:6379 --inbound-queue compute-boost`,
	Args:    cobra.ExactArgs(1),
	PreRunE: configSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		n, err := executeSubmit(rootCtx, args[0])
		if err != nil {
			contract.LogFatal("Cannot submit records", err)
		}
		cmd.Printf("Queued %d records on %s\n", n, cfg.InboundQueue)
	},
}

func executeSubmit(ctx context.Context, path string) (int, error) {
	if cfg.QueueBackend != schema.RedisQueue {
		return 0, fmt.Errorf("submit requires the redis queue backend (got %s)", cfg.QueueBackend)
	}
	raws, err := ingest.ReadRecordsFile(path)
	if err != nil {
		return 0, err
	}

	q, err := queue.New(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer func() { _ = q.Close() }()

	for i, raw := range raws {
		payload, err := json.Marshal(raw)
		if err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
		if err := q.Enqueue(ctx, payload); err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
	}
	slog.Debug("records queued", "count", len(raws), "queue", cfg.InboundQueue)
	return len(raws), nil
}
