// Package store persists computed boost factors.
package store

import (
	"errors"
	"sync"

	"github.com/adsabs/adsboost/internal/contract"
)

// ErrUnsupportedBackend is returned for store backends that are not recognized.
var ErrUnsupportedBackend = errors.New("unsupported backend")

// BoostStoreManager owns the process-wide boost store.
type BoostStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	boost        contract.BoostStore
}

var _ contract.StoreManager = &BoostStoreManager{} // Compile-time check

// GetBoostStore returns the boost store, or nil before InitStore.
func (mgr *BoostStoreManager) GetBoostStore() contract.BoostStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.boost
}
