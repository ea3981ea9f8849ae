package store

import (
	"context"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetBoostStore implements the StoreManager interface.
func (m *MockStoreManager) GetBoostStore() contract.BoostStore {
	ret := m.Called()
	bs, _ := ret.Get(0).(contract.BoostStore)
	return bs
}

// MockBoostStore is a mock implementation of BoostStore for testing.
type MockBoostStore struct {
	mock.Mock
}

var _ contract.BoostStore = &MockBoostStore{} // Compile-time check

// Upsert implements the BoostStore interface.
func (m *MockBoostStore) Upsert(ctx context.Context, result schema.BoostResult, now time.Time) (schema.BoostRecord, error) {
	args := m.Called(ctx, result, now)
	return args.Get(0).(schema.BoostRecord), args.Error(1)
}

// GetByBibcode implements the BoostStore interface.
func (m *MockBoostStore) GetByBibcode(ctx context.Context, bibcode string) ([]schema.BoostRecord, error) {
	args := m.Called(ctx, bibcode)
	records, _ := args.Get(0).([]schema.BoostRecord)
	return records, args.Error(1)
}

// GetByScixID implements the BoostStore interface.
func (m *MockBoostStore) GetByScixID(ctx context.Context, scixID string) ([]schema.BoostRecord, error) {
	args := m.Called(ctx, scixID)
	records, _ := args.Get(0).([]schema.BoostRecord)
	return records, args.Error(1)
}

// GetAll implements the BoostStore interface.
func (m *MockBoostStore) GetAll(ctx context.Context) ([]schema.BoostRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.BoostRecord)
	return records, args.Error(1)
}

// GetStatus implements the BoostStore interface.
func (m *MockBoostStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the BoostStore interface.
func (m *MockBoostStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
