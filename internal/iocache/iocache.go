// Package iocache holds the SQL-backed persistence for snapshots and the
// read-only care event queries the snapshot engine runs against.
package iocache

import (
	"sync"

	"github.com/LakGar/Coco-sub001/internal/contract"
)

// StoreManagerImpl manages the snapshot store and event source instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	snapshots    contract.SnapshotStore
	events       contract.EventSource
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetSnapshotStore returns the SnapshotStore.
func (mgr *StoreManagerImpl) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshots
}

// GetEventSource returns the EventSource.
func (mgr *StoreManagerImpl) GetEventSource() contract.EventSource {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.events
}
