package core

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
)

// fakeSource is an in-memory event source that filters like the SQL one.
type fakeSource struct {
	tasks          []schema.TaskRecord
	moods          []schema.MoodRecord
	instances      []schema.RoutineInstance
	burden         []schema.BurdenAssessment
	notes          []time.Time
	activeRoutines int

	failOn string // source name whose query returns an error
	calls  atomic.Int64
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (f *fakeSource) fail(source string) error {
	f.calls.Add(1)
	if f.failOn == source {
		return fmt.Errorf("%s unavailable", source)
	}
	return nil
}

func (f *fakeSource) Tasks(_ context.Context, _ string, from, to time.Time) ([]schema.TaskRecord, error) {
	if err := f.fail("tasks"); err != nil {
		return nil, err
	}
	var out []schema.TaskRecord
	for _, t := range f.tasks {
		if (t.IsDone() && inRange(t.UpdatedAt, from, to)) || (t.DueDate != nil && inRange(*t.DueDate, from, to)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeSource) MedicationTasks(_ context.Context, _ string, from, to time.Time) ([]schema.TaskRecord, error) {
	if err := f.fail("medications"); err != nil {
		return nil, err
	}
	var out []schema.TaskRecord
	for _, t := range f.tasks {
		if t.Type == schema.TaskTypeMedication && t.DueDate != nil && inRange(*t.DueDate, from, to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeSource) Moods(_ context.Context, _ string, from, to time.Time) ([]schema.MoodRecord, error) {
	if err := f.fail("moods"); err != nil {
		return nil, err
	}
	var out []schema.MoodRecord
	for _, m := range f.moods {
		if inRange(m.ObservedAt, from, to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSource) RoutineInstances(_ context.Context, _ string, from, to time.Time) ([]schema.RoutineInstance, error) {
	if err := f.fail("routine instances"); err != nil {
		return nil, err
	}
	var out []schema.RoutineInstance
	for _, ri := range f.instances {
		if inRange(ri.Date, from, to) {
			out = append(out, ri)
		}
	}
	return out, nil
}

func (f *fakeSource) BurdenAssessments(_ context.Context, _ string, from, to time.Time) ([]schema.BurdenAssessment, error) {
	if err := f.fail("burden"); err != nil {
		return nil, err
	}
	var out []schema.BurdenAssessment
	for _, b := range f.burden {
		if inRange(b.SubmittedAt, from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeSource) ActiveRoutineCount(context.Context, string) (int, error) {
	if err := f.fail("routines"); err != nil {
		return 0, err
	}
	return f.activeRoutines, nil
}

func (f *fakeSource) NoteCount(_ context.Context, _ string, from, to time.Time) (int, error) {
	if err := f.fail("notes"); err != nil {
		return 0, err
	}
	count := 0
	for _, n := range f.notes {
		if inRange(n, from, to) {
			count++
		}
	}
	return count, nil
}

// at returns hour:00 UTC on the given YYYY-MM-DD day.
func at(day string, hour int) time.Time {
	return schema.CalendarDay(day).Time().Add(time.Duration(hour) * time.Hour)
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrInt(v int) *int { return &v }

func ptrFloat(v float64) *float64 { return &v }

func task(id string, status schema.TaskStatus, taskType schema.TaskType, due *time.Time, updated time.Time) schema.TaskRecord {
	return schema.TaskRecord{ID: id, Title: "task " + id, Status: status, Type: taskType, DueDate: due, UpdatedAt: updated}
}

func moods(day string, ratings ...string) []schema.MoodRecord {
	out := make([]schema.MoodRecord, len(ratings))
	for i, r := range ratings {
		out[i] = schema.MoodRecord{Rating: r, ObservedAt: at(day, 8+i%12)}
	}
	return out
}
