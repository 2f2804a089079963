// Package iocache persists projects and assessment history.
package iocache

import (
	"sync"

	"github.com/gacscore/gacscore/internal/contract"
)

// StoreManagerImpl holds the project store and the history store.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	project      contract.ProjectStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetProjectStore returns the project store.
func (mgr *StoreManagerImpl) GetProjectStore() contract.ProjectStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.project
}

// GetHistoryStore returns the history store.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
