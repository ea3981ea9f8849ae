// Package queue moves records in and boost responses out of the worker.
package queue

import (
	"context"
	"fmt"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
)

// Queue is a transport that can feed and drain the worker.
type Queue interface {
	contract.Consumer
	contract.Publisher

	// Enqueue appends a raw inbound record.
	Enqueue(ctx context.Context, payload []byte) error

	// Close releases the connection.
	Close() error
}

// New builds the queue selected by the configuration.
func New(ctx context.Context, cfg *contract.Config) (Queue, error) {
	switch cfg.QueueBackend {
	case schema.RedisQueue:
		q := NewRedisQueue(RedisOptions{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			Inbound:     cfg.InboundQueue,
			Outbound:    cfg.OutboundQueue,
			PollTimeout: cfg.PollTimeout,
		})
		if err := q.Ping(ctx); err != nil {
			_ = q.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return q, nil
	case schema.MemoryQueue:
		return NewMemoryQueue(0, cfg.PollTimeout), nil
	case schema.NoneQueue, "":
		return nil, fmt.Errorf("no queue backend configured")
	default:
		return nil, fmt.Errorf("unsupported queue backend: %s", cfg.QueueBackend)
	}
}
