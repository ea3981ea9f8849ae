package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/google/uuid"
)

// Processor runs records through scoring, storage and publication.
// Store and publisher are optional; without them Process only scores.
type Processor struct {
	cfg       *schema.ScoringConfig
	store     contract.BoostStore
	publisher contract.Publisher
	recorder  contract.Recorder
	logger    *slog.Logger
	now       func() time.Time
	runID     string
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithStore persists every scored record.
func WithStore(store contract.BoostStore) ProcessorOption {
	return func(p *Processor) { p.store = store }
}

// WithPublisher sends a response for every scored record.
func WithPublisher(pub contract.Publisher) ProcessorOption {
	return func(p *Processor) { p.publisher = pub }
}

// WithRecorder reports pipeline measurements.
func WithRecorder(r contract.Recorder) ProcessorOption {
	return func(p *Processor) { p.recorder = r }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = l }
}

// WithClock sets the reference time source used for recency.
func WithClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) { p.now = now }
}

// NewProcessor builds a Processor around an immutable scoring configuration.
func NewProcessor(cfg *schema.ScoringConfig, opts ...ProcessorOption) *Processor {
	p := &Processor{
		cfg:      cfg,
		recorder: noopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("run_id", p.runID)
	return p
}

// RunID identifies this processor in logs.
func (p *Processor) RunID() string { return p.runID }

// Process normalizes and processes one raw record.
func (p *Processor) Process(ctx context.Context, raw map[string]any) (schema.BoostRecord, error) {
	return p.ProcessRecord(ctx, NormalizeRecord(raw))
}

// ProcessMessage decodes and processes one inbound queue payload.
func (p *Processor) ProcessMessage(ctx context.Context, payload []byte) (schema.BoostRecord, error) {
	rec, err := DecodeRecord(payload)
	if err != nil {
		p.recorder.IncRejected()
		p.logger.Error("rejected message", "error", err)
		return schema.BoostRecord{}, err
	}
	return p.ProcessRecord(ctx, rec)
}

// ProcessRecord scores a normalized record, then stores and publishes the result.
// Storage and publication errors are returned unchanged in meaning; nothing is retried.
func (p *Processor) ProcessRecord(ctx context.Context, rec schema.Record) (schema.BoostRecord, error) {
	if !rec.HasIdentifier() {
		p.recorder.IncRejected()
		p.logger.Error("rejected record", "error", ErrMissingIdentifier, "status", rec.Status)
		return schema.BoostRecord{}, ErrMissingIdentifier
	}

	start := p.now()
	result := ComputeBoost(rec, p.cfg, start)
	p.reportFallbacks(result)

	out := schema.BoostRecord{Created: start, Modified: start, BoostResult: result}
	if p.store != nil {
		stored, err := p.store.Upsert(ctx, result, start)
		if err != nil {
			p.recorder.IncFailed("store")
			return out, fmt.Errorf("storing boost factors for %s: %w", rec.Identifier(), err)
		}
		p.recorder.IncStored()
		stored.Fallbacks = result.Fallbacks
		out = stored
	}

	if p.publisher != nil {
		resp := schema.NewBoostResponse(out.BoostResult, out.Created, out.Modified)
		if err := p.publisher.Publish(ctx, resp); err != nil {
			p.recorder.IncFailed("publish")
			return out, fmt.Errorf("publishing boost factors for %s: %w", rec.Identifier(), err)
		}
		p.recorder.IncPublished()
	}

	p.recorder.ObserveProcessed(p.now().Sub(start))
	p.logger.Debug("processed record",
		"bibcode", rec.Bibcode, "scix_id", rec.ScixID, "boost_factor", result.BoostFactor)
	return out, nil
}

// reportFallbacks logs every recovered condition once, at warning level.
func (p *Processor) reportFallbacks(result schema.BoostResult) {
	for _, fb := range result.Fallbacks {
		p.recorder.IncFallback(fb.Reason)
		p.logger.Warn("using fallback",
			"bibcode", result.Bibcode,
			"scix_id", result.ScixID,
			"field", fb.Field,
			"reason", fb.Reason,
			"detail", fb.Detail)
	}
}

// BatchItem is the outcome for one record of a batch, in input order.
type BatchItem struct {
	Index  int
	Record schema.BoostRecord
	Err    error
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Processed int `json:"processed"`
	Rejected  int `json:"rejected"`
	Failed    int `json:"failed"`
}

// ProcessBatch processes records with a bounded worker pool.
// Items are returned in input order; one failure never stops the others.
func (p *Processor) ProcessBatch(ctx context.Context, records []map[string]any, workers int) ([]BatchItem, BatchSummary) {
	workers = max(1, min(workers, len(records)))
	jobCh := make(chan int, len(records))
	items := make([]BatchItem, len(records))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for i := range jobCh {
				// Each goroutine writes to a unique index.
				if err := ctx.Err(); err != nil {
					items[i] = BatchItem{Index: i, Err: err}
					continue
				}
				rec, err := p.Process(ctx, records[i])
				items[i] = BatchItem{Index: i, Record: rec, Err: err}
			}
		})
	}

	for i := range records {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	var summary BatchSummary
	for _, item := range items {
		switch {
		case item.Err == nil:
			summary.Processed++
		case errors.Is(item.Err, ErrMissingIdentifier):
			summary.Rejected++
		default:
			summary.Failed++
		}
	}
	return items, summary
}

type noopRecorder struct{}

func (noopRecorder) ObserveProcessed(time.Duration)    {}
func (noopRecorder) IncRejected()                      {}
func (noopRecorder) IncFailed(string)                  {}
func (noopRecorder) IncFallback(schema.FallbackReason) {}
func (noopRecorder) IncStored()                        {}
func (noopRecorder) IncPublished()                     {}
