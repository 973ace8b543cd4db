package core

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/LakGar/Coco-sub001/core/agg"
	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/metrics"
	"github.com/LakGar/Coco-sub001/schema"
)

// windowData is everything collected for one window.
type windowData struct {
	window            schema.Window
	series            schema.SnapshotSeries
	medicationPercent *int
	notes             int
}

// collectWindow runs every source for one window, one after the other. Any
// fetch failure fails the whole window.
func collectWindow(ctx context.Context, src contract.EventSource, entityID string, window schema.Window, today schema.CalendarDay) (windowData, error) {
	data := windowData{window: window}
	from, to := window.Start(), window.End()
	days := agg.BuildDenseDays(window.From, window.To)

	tasks, err := src.Tasks(ctx, entityID, from, to)
	if err != nil {
		return data, fetchError("tasks", err)
	}
	data.series.Tasks = collectTasks(days, tasks, today)

	meds, err := src.MedicationTasks(ctx, entityID, from, to)
	if err != nil {
		return data, fetchError("medications", err)
	}
	data.series.Medications, data.medicationPercent = collectMedications(days, meds)

	moods, err := src.Moods(ctx, entityID, from, to)
	if err != nil {
		return data, fetchError("moods", err)
	}
	data.series.Mood = collectMoods(days, moods)

	active, err := src.ActiveRoutineCount(ctx, entityID)
	if err != nil {
		return data, fetchError("routines", err)
	}
	instances, err := src.RoutineInstances(ctx, entityID, from, to)
	if err != nil {
		return data, fetchError("routine instances", err)
	}
	data.series.Routine = collectRoutine(days, instances, active)

	burden, err := src.BurdenAssessments(ctx, entityID, from, to)
	if err != nil {
		return data, fetchError("burden", err)
	}
	data.series.Burden = collectBurden(window, burden)

	notes, err := src.NoteCount(ctx, entityID, from, to)
	if err != nil {
		return data, fetchError("notes", err)
	}
	data.notes = notes

	return data, nil
}

func fetchError(source string, err error) error {
	metrics.SourceFailures.WithLabelValues(source).Inc()
	return fmt.Errorf("fetch %s: %w", source, err)
}

// percentOf returns round(part/whole*100), or 0 when whole is 0.
func percentOf(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// collectTasks buckets completed tasks by the day they were last updated and
// open tasks by their due day. Open tasks due before today are overdue, those
// due today are due soon, and later ones are not counted.
func collectTasks(days []schema.CalendarDay, tasks []schema.TaskRecord, today schema.CalendarDay) []schema.SeriesPoint {
	key := func(t schema.TaskRecord) (schema.CalendarDay, bool) {
		switch {
		case t.IsDone():
			return schema.DayOf(t.UpdatedAt), true
		case t.Status == schema.TaskCancelled || t.DueDate == nil:
			return "", false
		default:
			return schema.DayOf(*t.DueDate), true
		}
	}
	reduce := func(bucket agg.Bucket, t schema.TaskRecord) {
		if t.IsDone() {
			bucket[schema.MetricCompleted]++
			return
		}
		switch due := schema.DayOf(*t.DueDate); {
		case due.Before(today):
			bucket[schema.MetricOverdue]++
		case due == today:
			bucket[schema.MetricDueSoon]++
		}
	}
	return agg.Fold(days, schema.TaskMetricKeys, tasks, key, reduce)
}

// collectMedications buckets medication tasks by due day. A task counts toward
// total as soon as it is due in the window and toward completed only once done,
// so doses due later today still lower the percentage. The window percentage is
// nil when no medication task falls in the window.
func collectMedications(days []schema.CalendarDay, tasks []schema.TaskRecord) ([]schema.SeriesPoint, *int) {
	key := func(t schema.TaskRecord) (schema.CalendarDay, bool) {
		if t.DueDate == nil {
			return "", false
		}
		return schema.DayOf(*t.DueDate), true
	}
	reduce := func(bucket agg.Bucket, t schema.TaskRecord) {
		bucket[schema.MetricTotal]++
		if t.IsDone() {
			bucket[schema.MetricCompleted]++
		}
	}
	points := agg.Fold(days, schema.MedicationMetricKeys, tasks, key, reduce)
	for _, p := range points {
		p.Metrics[schema.MetricPercent] = float64(percentOf(p.Metrics[schema.MetricCompleted], p.Metrics[schema.MetricTotal]))
	}

	due := agg.Sum(points, schema.MetricTotal)
	if due == 0 {
		return points, nil
	}
	percent := percentOf(agg.Sum(points, schema.MetricCompleted), due)
	return points, &percent
}

// classifyMood maps a rating onto positive, low or agitated.
func classifyMood(rating string) string {
	r := strings.ToLower(strings.TrimSpace(rating))
	if _, ok := schema.PositiveMoods[r]; ok {
		return schema.MetricPositive
	}
	if _, ok := schema.LowMoods[r]; ok {
		return schema.MetricLow
	}
	return schema.MetricAgitated
}

func collectMoods(days []schema.CalendarDay, moods []schema.MoodRecord) []schema.SeriesPoint {
	key := func(m schema.MoodRecord) (schema.CalendarDay, bool) {
		return schema.DayOf(m.ObservedAt), true
	}
	reduce := func(bucket agg.Bucket, m schema.MoodRecord) {
		bucket[classifyMood(m.Rating)]++
		bucket[schema.MetricTotal]++
	}
	return agg.Fold(days, schema.MoodMetricKeys, moods, key, reduce)
}

// collectRoutine counts answered check-ins per day against the number of
// routines active now. The expected total is the same for every day of the
// window, including days before a routine existed.
func collectRoutine(days []schema.CalendarDay, instances []schema.RoutineInstance, activeRoutines int) []schema.SeriesPoint {
	key := func(ri schema.RoutineInstance) (schema.CalendarDay, bool) {
		return schema.DayOf(ri.Date), len(ri.Answers) > 0
	}
	points := agg.Fold(days, schema.RoutineMetricKeys, instances, key, agg.Count[schema.RoutineInstance](schema.MetricCompleted))
	for _, p := range points {
		p.Metrics[schema.MetricTotal] = float64(activeRoutines)
		p.Metrics[schema.MetricPercent] = float64(percentOf(p.Metrics[schema.MetricCompleted], float64(activeRoutines)))
	}
	return points
}

// collectBurden returns one point per assessment in the window, oldest first.
func collectBurden(window schema.Window, assessments []schema.BurdenAssessment) []schema.BurdenPoint {
	sorted := slices.Clone(assessments)
	slices.SortStableFunc(sorted, func(a, b schema.BurdenAssessment) int {
		return cmp.Compare(a.SubmittedAt.UnixNano(), b.SubmittedAt.UnixNano())
	})

	var points []schema.BurdenPoint
	for _, a := range sorted {
		day := schema.DayOf(a.SubmittedAt)
		if day.Before(window.From) || window.To.Before(day) {
			continue
		}
		points = append(points, schema.BurdenPoint{Date: day, Score: a.Score})
	}
	return points
}
