package core

import (
	"context"
	"sync"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/stretchr/testify/mock"
)

// MockBoostStore is a mock implementation of BoostStore for testing.
type MockBoostStore struct {
	mock.Mock
}

var _ contract.BoostStore = &MockBoostStore{} // Compile-time check

func (m *MockBoostStore) Upsert(ctx context.Context, result schema.BoostResult, now time.Time) (schema.BoostRecord, error) {
	args := m.Called(ctx, result, now)
	return args.Get(0).(schema.BoostRecord), args.Error(1)
}

func (m *MockBoostStore) GetByBibcode(ctx context.Context, bibcode string) ([]schema.BoostRecord, error) {
	args := m.Called(ctx, bibcode)
	return args.Get(0).([]schema.BoostRecord), args.Error(1)
}

func (m *MockBoostStore) GetByScixID(ctx context.Context, scixID string) ([]schema.BoostRecord, error) {
	args := m.Called(ctx, scixID)
	return args.Get(0).([]schema.BoostRecord), args.Error(1)
}

func (m *MockBoostStore) GetAll(ctx context.Context) ([]schema.BoostRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]schema.BoostRecord), args.Error(1)
}

func (m *MockBoostStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

func (m *MockBoostStore) Close() error {
	return m.Called().Error(0)
}

// MockPublisher is a mock implementation of Publisher for testing.
type MockPublisher struct {
	mock.Mock
}

var _ contract.Publisher = &MockPublisher{} // Compile-time check

func (m *MockPublisher) Publish(ctx context.Context, resp schema.BoostResponse) error {
	return m.Called(ctx, resp).Error(0)
}

// spyRecorder counts recorder calls.
type spyRecorder struct {
	mu        sync.Mutex
	processed int
	rejected  int
	failed    map[string]int
	fallbacks map[schema.FallbackReason]int
	stored    int
	published int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{failed: map[string]int{}, fallbacks: map[schema.FallbackReason]int{}}
}

func (s *spyRecorder) ObserveProcessed(time.Duration) { s.mu.Lock(); s.processed++; s.mu.Unlock() }
func (s *spyRecorder) IncRejected()                   { s.mu.Lock(); s.rejected++; s.mu.Unlock() }
func (s *spyRecorder) IncFailed(stage string)         { s.mu.Lock(); s.failed[stage]++; s.mu.Unlock() }
func (s *spyRecorder) IncStored()                     { s.mu.Lock(); s.stored++; s.mu.Unlock() }
func (s *spyRecorder) IncPublished()                  { s.mu.Lock(); s.published++; s.mu.Unlock() }
func (s *spyRecorder) IncFallback(r schema.FallbackReason) {
	s.mu.Lock()
	s.fallbacks[r]++
	s.mu.Unlock()
}

// sliceConsumer hands out queued payloads, then reports ErrNoMessage until ctx ends.
type sliceConsumer struct {
	mu      sync.Mutex
	pending []contract.Message
	failed  []contract.Message
	drained chan struct{}
	once    sync.Once
}

func newSliceConsumer(payloads ...string) *sliceConsumer {
	c := &sliceConsumer{drained: make(chan struct{})}
	for i, p := range payloads {
		c.pending = append(c.pending, contract.Message{ID: string(rune('a' + i)), Payload: []byte(p)})
	}
	return c
}

func (c *sliceConsumer) Consume(ctx context.Context) (contract.Message, error) {
	c.mu.Lock()
	if len(c.pending) > 0 {
		msg := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		return msg, nil
	}
	c.mu.Unlock()
	c.once.Do(func() { close(c.drained) })

	select {
	case <-ctx.Done():
		return contract.Message{}, ctx.Err()
	case <-time.After(5 * time.Millisecond):
		return contract.Message{}, contract.ErrNoMessage
	}
}

func (c *sliceConsumer) Fail(_ context.Context, msg contract.Message, _ error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed = append(c.failed, msg)
	return nil
}
