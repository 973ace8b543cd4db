package schema

import "time"

// StoreStatus represents the status of the snapshot store.
type StoreStatus struct {
	Backend          string    `json:"backend"`
	Connected        bool      `json:"connected"`
	TotalEntries     int       `json:"total_entries"`
	TotalEntities    int       `json:"total_entities"`
	NewestComputedAt time.Time `json:"newest_computed_at"`
	OldestComputedAt time.Time `json:"oldest_computed_at"`
	TableSizeBytes   int64     `json:"table_size_bytes"`
}
