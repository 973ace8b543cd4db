package contract

import (
	"context"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
	"github.com/stretchr/testify/mock"
)

// MockEventSource is a mock implementation of EventSource for testing.
type MockEventSource struct {
	mock.Mock
}

var _ EventSource = &MockEventSource{} // Compile-time check

// Tasks implements the EventSource interface.
func (m *MockEventSource) Tasks(ctx context.Context, entityID string, from, to time.Time) ([]schema.TaskRecord, error) {
	ret := m.Called(ctx, entityID, from, to)
	records, _ := ret.Get(0).([]schema.TaskRecord)
	return records, ret.Error(1)
}

// MedicationTasks implements the EventSource interface.
func (m *MockEventSource) MedicationTasks(ctx context.Context, entityID string, from, to time.Time) ([]schema.TaskRecord, error) {
	ret := m.Called(ctx, entityID, from, to)
	records, _ := ret.Get(0).([]schema.TaskRecord)
	return records, ret.Error(1)
}

// Moods implements the EventSource interface.
func (m *MockEventSource) Moods(ctx context.Context, entityID string, from, to time.Time) ([]schema.MoodRecord, error) {
	ret := m.Called(ctx, entityID, from, to)
	records, _ := ret.Get(0).([]schema.MoodRecord)
	return records, ret.Error(1)
}

// RoutineInstances implements the EventSource interface.
func (m *MockEventSource) RoutineInstances(ctx context.Context, entityID string, from, to time.Time) ([]schema.RoutineInstance, error) {
	ret := m.Called(ctx, entityID, from, to)
	records, _ := ret.Get(0).([]schema.RoutineInstance)
	return records, ret.Error(1)
}

// BurdenAssessments implements the EventSource interface.
func (m *MockEventSource) BurdenAssessments(ctx context.Context, entityID string, from, to time.Time) ([]schema.BurdenAssessment, error) {
	ret := m.Called(ctx, entityID, from, to)
	records, _ := ret.Get(0).([]schema.BurdenAssessment)
	return records, ret.Error(1)
}

// ActiveRoutineCount implements the EventSource interface.
func (m *MockEventSource) ActiveRoutineCount(ctx context.Context, entityID string) (int, error) {
	ret := m.Called(ctx, entityID)
	return ret.Int(0), ret.Error(1)
}

// NoteCount implements the EventSource interface.
func (m *MockEventSource) NoteCount(ctx context.Context, entityID string, from, to time.Time) (int, error) {
	ret := m.Called(ctx, entityID, from, to)
	return ret.Int(0), ret.Error(1)
}
