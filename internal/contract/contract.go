// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
)

// EventSource defines the read-only queries the snapshot engine needs from the host.
// Every ranged query receives a half-open [from, to) interval of UTC day boundaries
// and returns records already scoped to the entity and the interval.
// This allows the engine to be tested without a real care database.
type EventSource interface {
	// Tasks returns tasks completed (by last update) or due within the interval.
	Tasks(ctx context.Context, entityID string, from, to time.Time) ([]schema.TaskRecord, error)

	// MedicationTasks returns medication-typed tasks due within the interval.
	MedicationTasks(ctx context.Context, entityID string, from, to time.Time) ([]schema.TaskRecord, error)

	// Moods returns mood observations recorded within the interval.
	Moods(ctx context.Context, entityID string, from, to time.Time) ([]schema.MoodRecord, error)

	// RoutineInstances returns routine check-ins dated within the interval.
	RoutineInstances(ctx context.Context, entityID string, from, to time.Time) ([]schema.RoutineInstance, error)

	// BurdenAssessments returns caregiver-burden assessments submitted within the interval.
	BurdenAssessments(ctx context.Context, entityID string, from, to time.Time) ([]schema.BurdenAssessment, error)

	// ActiveRoutineCount returns how many routines are active for the entity right now.
	ActiveRoutineCount(ctx context.Context, entityID string) (int, error)

	// NoteCount returns the number of notes created within the interval.
	NoteCount(ctx context.Context, entityID string, from, to time.Time) (int, error)
}

// SnapshotStore defines the interface for snapshot persistence.
// This allows mocking the store for testing.
type SnapshotStore interface {
	// Load returns the record for (entityID, windowDays), or nil when none exists.
	Load(ctx context.Context, entityID string, windowDays int) (*schema.SnapshotRecord, error)

	// Save upserts the record keyed on (EntityID, WindowDays). Last writer wins.
	Save(ctx context.Context, record schema.SnapshotRecord) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for managing the snapshot store and event source.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetSnapshotStore() SnapshotStore
	GetEventSource() EventSource
}
