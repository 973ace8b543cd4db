package schema

import "time"

// SnapshotRecord is the persisted form of a snapshot. There is at most one
// record per (EntityID, WindowDays). Data is the encoded SnapshotData and is
// opaque to the store.
type SnapshotRecord struct {
	EntityID   string
	WindowDays int
	ComputedAt time.Time
	Version    int
	Data       []byte
}
