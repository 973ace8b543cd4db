package iocache

import (
	"context"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSnapshotStore implements the StoreManager interface.
func (m *MockStoreManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// GetEventSource implements the StoreManager interface.
func (m *MockStoreManager) GetEventSource() contract.EventSource {
	ret := m.Called()
	source, _ := ret.Get(0).(contract.EventSource)
	return source
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Load implements the SnapshotStore interface.
func (m *MockSnapshotStore) Load(ctx context.Context, entityID string, windowDays int) (*schema.SnapshotRecord, error) {
	args := m.Called(ctx, entityID, windowDays)
	record, _ := args.Get(0).(*schema.SnapshotRecord)
	return record, args.Error(1)
}

// Save implements the SnapshotStore interface.
func (m *MockSnapshotStore) Save(ctx context.Context, record schema.SnapshotRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
