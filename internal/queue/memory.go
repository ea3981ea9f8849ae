package queue

import (
	"context"
	"sync"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/google/uuid"
)

// defaultMemoryCapacity bounds the inbound buffer of a MemoryQueue.
const defaultMemoryCapacity = 1024

// MemoryQueue is an in-process queue for local runs and tests.
type MemoryQueue struct {
	inbound chan []byte
	timeout time.Duration

	mu        sync.Mutex
	published []schema.BoostResponse
	failed    []DeadLetter
}

var _ Queue = &MemoryQueue{} // Compile-time check

// NewMemoryQueue creates a queue with room for capacity pending records.
func NewMemoryQueue(capacity int, pollTimeout time.Duration) *MemoryQueue {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	if pollTimeout <= 0 {
		pollTimeout = contract.DefaultPollTimeout
	}
	return &MemoryQueue{inbound: make(chan []byte, capacity), timeout: pollTimeout}
}

// Consume implements the Consumer interface.
func (q *MemoryQueue) Consume(ctx context.Context) (contract.Message, error) {
	timer := time.NewTimer(q.timeout)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return contract.Message{}, ctx.Err()
	case <-timer.C:
		return contract.Message{}, contract.ErrNoMessage
	case payload := <-q.inbound:
		return contract.Message{ID: uuid.NewString(), Payload: payload}, nil
	}
}

// Fail implements the Consumer interface.
func (q *MemoryQueue) Fail(_ context.Context, msg contract.Message, cause error) error {
	dl := newDeadLetter(msg.ID, msg.Payload, cause, time.Now())
	q.mu.Lock()
	defer q.mu.Unlock()
	q.failed = append(q.failed, dl)
	return nil
}

// Publish implements the Publisher interface.
func (q *MemoryQueue) Publish(_ context.Context, resp schema.BoostResponse) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.published = append(q.published, resp)
	return nil
}

// Enqueue implements the Queue interface. It blocks while the buffer is full.
func (q *MemoryQueue) Enqueue(ctx context.Context, payload []byte) error {
	select {
	case q.inbound <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Published returns a copy of every response published so far.
func (q *MemoryQueue) Published() []schema.BoostResponse {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]schema.BoostResponse(nil), q.published...)
}

// DeadLetters returns a copy of every failed message.
func (q *MemoryQueue) DeadLetters() []DeadLetter {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]DeadLetter(nil), q.failed...)
}

// Pending returns the number of records waiting to be consumed.
func (q *MemoryQueue) Pending() int {
	return len(q.inbound)
}

// Close implements the Queue interface.
func (q *MemoryQueue) Close() error { return nil }
