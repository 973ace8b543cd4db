package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with the snapshot store and the event source.
// An empty eventsBackend skips the event source, which commands like `snapshots status` do not need.
func InitStores(snapshotBackend schema.DatabaseBackend, snapshotConnStr string, eventsBackend schema.DatabaseBackend, eventsConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		snapshots, err := NewSnapshotStore(snapshotBackend, snapshotConnStr)
		if err != nil {
			initErr = err
			return
		}

		var events *SQLEventSource
		if eventsBackend != "" {
			events, err = NewSQLEventSource(eventsBackend, eventsConnStr)
			if err != nil {
				_ = snapshots.Close()
				initErr = err
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.snapshots = snapshots
		if events != nil {
			Manager.events = events
		}
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.snapshots != nil {
			_ = Manager.snapshots.Close()
		}
		if closer, ok := Manager.events.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	})
}

// ClearSnapshots removes every persisted snapshot for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it rolls the snapshot migrations back to version 0.
// For NoneBackend, it does nothing.
func ClearSnapshots(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetSnapshotDBFilePath()
		}
		if dbFilePath == ":memory:" {
			return nil
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if _, err := MigrateSnapshots(backend, connStr, 0); err != nil {
			return fmt.Errorf("failed to clear snapshots: %w", err)
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("%w for clearing: %s", schema.ErrUnsupportedBackend, backend)
	}
}
