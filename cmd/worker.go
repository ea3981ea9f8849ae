package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adsabs/adsboost/core"
	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/metrics"
	"github.com/adsabs/adsboost/internal/queue"
	"github.com/adsabs/adsboost/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// workerCmd runs the long-lived queue consumer.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume records from the inbound queue and publish boost responses",
	Long: `Run the boost worker until interrupted.

For every inbound message the worker normalizes the record, computes the boost
factors, upserts them into the store and publishes a response (status 3) to
the outbound queue. Messages that cannot be processed are moved to the
'<inbound-queue>:failed' list with the error attached.

Examples:
  # Run against a local Redis and SQLite store
  adsboost worker

  # Expose Prometheus metrics
  adsboost worker --metrics-addr :9090 --log-format json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeWorker(rootCtx); err != nil {
			contract.LogFatal("Worker stopped", err)
		}
	},
}

func executeWorker(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	q, err := queue.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = q.Close() }()

	m := metrics.NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return err
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				slog.Error("metrics server failed", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	opts := []core.ProcessorOption{
		core.WithPublisher(q),
		core.WithRecorder(m),
		core.WithLogger(slog.Default()),
	}
	if cfg.StoreBackend != schema.NoneBackend {
		bs, err := requireStore()
		if err != nil {
			return err
		}
		opts = append(opts, core.WithStore(bs))
	}

	proc := core.NewProcessor(cfg.Scoring, opts...)
	slog.Info("consuming",
		"queue_backend", cfg.QueueBackend,
		"inbound", cfg.InboundQueue,
		"outbound", cfg.OutboundQueue,
		"store_backend", cfg.StoreBackend)
	return core.RunWorker(ctx, q, proc, slog.Default())
}
