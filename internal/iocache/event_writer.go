package iocache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
	"github.com/google/uuid"
)

// insert writes one row, formatting time values for the backend.
func (es *SQLEventSource) insert(ctx context.Context, table string, cols []string, vals ...any) error {
	for i, v := range vals {
		switch t := v.(type) {
		case time.Time:
			vals[i] = formatTime(t, es.backend)
		case *time.Time:
			if t == nil {
				vals[i] = nil
			} else {
				vals[i] = formatTime(*t, es.backend)
			}
		}
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", es.table(table), strings.Join(cols, ", "), placeholders)
	if _, err := es.db.ExecContext(ctx, rebind(q, es.backend), vals...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// InsertTask stores a task. An empty ID gets a generated one.
func (es *SQLEventSource) InsertTask(ctx context.Context, entityID string, task schema.TaskRecord) error {
	return es.insert(ctx, "tasks",
		[]string{"id", "owner_entity_id", "title", "status", "type", "due_date", "updated_at"},
		newID(task.ID), entityID, task.Title, string(task.Status), string(task.Type), task.DueDate, task.UpdatedAt)
}

// InsertMood stores a mood observation.
func (es *SQLEventSource) InsertMood(ctx context.Context, entityID string, mood schema.MoodRecord) error {
	return es.insert(ctx, "moods",
		[]string{"id", "owner_entity_id", "rating", "observed_at"},
		uuid.NewString(), entityID, mood.Rating, mood.ObservedAt)
}

// InsertRoutine stores a routine. A nil archivedAt keeps it active.
func (es *SQLEventSource) InsertRoutine(ctx context.Context, entityID, routineID, name string, createdAt time.Time, archivedAt *time.Time) error {
	return es.insert(ctx, "routines",
		[]string{"id", "owner_entity_id", "name", "created_at", "archived_at"},
		newID(routineID), entityID, name, createdAt, archivedAt)
}

// InsertRoutineInstance stores one day's check-in for a routine.
func (es *SQLEventSource) InsertRoutineInstance(ctx context.Context, entityID string, instance schema.RoutineInstance) error {
	answers := instance.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	encoded, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	return es.insert(ctx, "routine_instances",
		[]string{"id", "routine_id", "owner_entity_id", "instance_date", "answers"},
		uuid.NewString(), instance.RoutineID, entityID, instance.Date, string(encoded))
}

// InsertBurdenAssessment stores a caregiver-burden assessment.
func (es *SQLEventSource) InsertBurdenAssessment(ctx context.Context, entityID string, assessment schema.BurdenAssessment) error {
	return es.insert(ctx, "burden_assessments",
		[]string{"id", "owner_entity_id", "score", "submitted_at"},
		uuid.NewString(), entityID, assessment.Score, assessment.SubmittedAt)
}

// InsertNote stores a note creation event.
func (es *SQLEventSource) InsertNote(ctx context.Context, entityID string, createdAt time.Time) error {
	return es.insert(ctx, "notes",
		[]string{"id", "owner_entity_id", "created_at"},
		uuid.NewString(), entityID, createdAt)
}
