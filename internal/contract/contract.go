// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/adsabs/adsboost/schema"
)

// ErrNoMessage is returned by Consume when no message arrived before the poll timeout.
var ErrNoMessage = errors.New("no message available")

// StoreManager defines the interface for managing the boost store.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetBoostStore() BoostStore
}

// BoostStore persists one row of boost factors per record.
type BoostStore interface {
	// Upsert inserts or updates the row keyed by bibcode, or scix_id when the bibcode is empty,
	// in a single statement. created is kept on update; modified is set to now.
	Upsert(ctx context.Context, result schema.BoostResult, now time.Time) (schema.BoostRecord, error)

	// GetByBibcode returns the rows stored for a bibcode.
	GetByBibcode(ctx context.Context, bibcode string) ([]schema.BoostRecord, error)

	// GetByScixID returns the rows stored for a scix_id.
	GetByScixID(ctx context.Context, scixID string) ([]schema.BoostRecord, error)

	// GetAll returns every stored row ordered by id.
	GetAll(ctx context.Context) ([]schema.BoostRecord, error)

	// GetStatus returns status information about the store
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}

// Message is one inbound queue entry.
type Message struct {
	ID      string
	Payload []byte
}

// Publisher sends boost responses to the ranking pipeline.
type Publisher interface {
	Publish(ctx context.Context, resp schema.BoostResponse) error
}

// Consumer receives inbound records.
type Consumer interface {
	// Consume blocks until a message arrives, the poll timeout passes (ErrNoMessage),
	// or ctx is done.
	Consume(ctx context.Context) (Message, error)

	// Fail moves a message that could not be processed to the dead-letter list.
	Fail(ctx context.Context, msg Message, cause error) error
}

// Recorder receives pipeline measurements.
type Recorder interface {
	ObserveProcessed(elapsed time.Duration)
	IncRejected()
	IncFailed(stage string)
	IncFallback(reason schema.FallbackReason)
	IncStored()
	IncPublished()
}
