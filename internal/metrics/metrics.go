// Package metrics exposes worker measurements to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names as constants for consistency.
const (
	MetricRecordsProcessedTotal = "adsboost_records_processed_total"
	MetricProcessingDuration    = "adsboost_processing_duration_seconds"
	MetricRecordsRejectedTotal  = "adsboost_records_rejected_total"
	MetricFailuresTotal         = "adsboost_failures_total"
	MetricFallbacksTotal        = "adsboost_fallbacks_total"
	MetricRecordsStoredTotal    = "adsboost_records_stored_total"
	MetricResponsesPublished    = "adsboost_responses_published_total"
)

// Metrics implements contract.Recorder with Prometheus collectors.
// All operations are thread-safe.
type Metrics struct {
	processed  prometheus.Counter
	duration   prometheus.Histogram
	rejected   prometheus.Counter
	failures   *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	stored     prometheus.Counter
	published  prometheus.Counter
	collectors []prometheus.Collector
}

var _ contract.Recorder = &Metrics{} // Compile-time check

// NewMetrics creates the collectors without registering them.
func NewMetrics() *Metrics {
	m := &Metrics{
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsProcessedTotal,
			Help: "Total number of records scored end to end",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricProcessingDuration,
			Help:    "Histogram of per-record processing time in seconds, including storage and publishing",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsRejectedTotal,
			Help: "Total number of records rejected for lacking both bibcode and scix_id",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricFailuresTotal,
			Help: "Total number of processing failures by stage",
		}, []string{"stage"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricFallbacksTotal,
			Help: "Total number of recovered input or configuration conditions by reason",
		}, []string{"reason"}),
		stored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsStoredTotal,
			Help: "Total number of boost rows upserted",
		}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricResponsesPublished,
			Help: "Total number of boost responses sent to the ranking pipeline",
		}),
	}
	m.collectors = []prometheus.Collector{m.processed, m.duration, m.rejected, m.failures, m.fallbacks, m.stored, m.published}
	return m
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return m.collectors
}

// ObserveProcessed implements the Recorder interface.
func (m *Metrics) ObserveProcessed(elapsed time.Duration) {
	m.processed.Inc()
	m.duration.Observe(elapsed.Seconds())
}

// IncRejected implements the Recorder interface.
func (m *Metrics) IncRejected() { m.rejected.Inc() }

// IncFailed implements the Recorder interface.
func (m *Metrics) IncFailed(stage string) { m.failures.WithLabelValues(stage).Inc() }

// IncFallback implements the Recorder interface.
func (m *Metrics) IncFallback(reason schema.FallbackReason) {
	m.fallbacks.WithLabelValues(string(reason)).Inc()
}

// IncStored implements the Recorder interface.
func (m *Metrics) IncStored() { m.stored.Inc() }

// IncPublished implements the Recorder interface.
func (m *Metrics) IncPublished() { m.published.Inc() }

// Serve exposes /metrics for gatherer on addr until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
