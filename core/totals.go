package core

import (
	"github.com/LakGar/Coco-sub001/core/agg"
	"github.com/LakGar/Coco-sub001/schema"
)

// computeTotals reduces one window to its scalars. prior is only consulted for
// the burden delta and may be nil.
func computeTotals(current windowData, prior *windowData) schema.SnapshotTotals {
	series := current.series
	totals := schema.SnapshotTotals{
		TasksCompleted:             int(agg.Sum(series.Tasks, schema.MetricCompleted)),
		TasksOverdue:               int(agg.Sum(series.Tasks, schema.MetricOverdue)),
		TasksDueSoon:               int(agg.Sum(series.Tasks, schema.MetricDueSoon)),
		MedicationAdherencePercent: current.medicationPercent,
		RoutineCompletionPercent:   routineCompletion(series.Routine),
		BurdenLastScore:            lastBurdenScore(series.Burden),
		NotesCreated:               current.notes,
	}

	if prior != nil && totals.BurdenLastScore != nil {
		if previous := lastBurdenScore(prior.series.Burden); previous != nil {
			delta := *totals.BurdenLastScore - *previous
			totals.BurdenDelta = &delta
		}
	}
	return totals
}

// routineCompletion recomputes one window-level percentage from the summed
// counts rather than averaging daily percentages. It is nil when nothing was expected.
func routineCompletion(points []schema.SeriesPoint) *int {
	expected := agg.Sum(points, schema.MetricTotal)
	if expected == 0 {
		return nil
	}
	percent := percentOf(agg.Sum(points, schema.MetricCompleted), expected)
	return &percent
}

func lastBurdenScore(points []schema.BurdenPoint) *float64 {
	if len(points) == 0 {
		return nil
	}
	score := points[len(points)-1].Score
	return &score
}
