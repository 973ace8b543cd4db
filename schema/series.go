package schema

// Series sources in display order.
const (
	SourceTasks       = "tasks"
	SourceMedications = "medications"
	SourceMood        = "mood"
	SourceRoutine     = "routine"
	SourceBurden      = "burden"
)

// MetricScore is the metric name used when a burden point is flattened.
const MetricScore = "score"

// SeriesValue is one (source, day, metric) cell of a snapshot's series.
type SeriesValue struct {
	Source string
	Date   CalendarDay
	Metric string
	Value  float64
}

// FlattenSeries turns the series of a snapshot into long-format values, one per
// metric per day, ordered by source, then day, then metric key order.
func FlattenSeries(series SnapshotSeries) []SeriesValue {
	var values []SeriesValue
	dense := []struct {
		source string
		keys   []string
		points []SeriesPoint
	}{
		{SourceTasks, TaskMetricKeys, series.Tasks},
		{SourceMedications, MedicationMetricKeys, series.Medications},
		{SourceMood, MoodMetricKeys, series.Mood},
		{SourceRoutine, RoutineMetricKeys, series.Routine},
	}
	for _, s := range dense {
		for _, p := range s.points {
			for _, key := range s.keys {
				values = append(values, SeriesValue{Source: s.source, Date: p.Date, Metric: key, Value: p.Metrics[key]})
			}
		}
	}
	for _, p := range series.Burden {
		values = append(values, SeriesValue{Source: SourceBurden, Date: p.Date, Metric: MetricScore, Value: p.Score})
	}
	return values
}
