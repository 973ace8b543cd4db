package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenSeries(t *testing.T) {
	series := SnapshotSeries{
		Tasks: []SeriesPoint{
			{Date: "2025-03-01", Metrics: map[string]float64{MetricCompleted: 2, MetricOverdue: 1}},
		},
		Mood: []SeriesPoint{
			{Date: "2025-03-01", Metrics: map[string]float64{MetricPositive: 1, MetricTotal: 1}},
		},
		Burden: []BurdenPoint{{Date: "2025-03-01", Score: 42}},
	}

	values := FlattenSeries(series)

	assert.Len(t, values, len(TaskMetricKeys)+len(MoodMetricKeys)+1)
	assert.Equal(t, SeriesValue{Source: SourceTasks, Date: "2025-03-01", Metric: MetricCompleted, Value: 2}, values[0])
	assert.Equal(t, SeriesValue{Source: SourceTasks, Date: "2025-03-01", Metric: MetricDueSoon, Value: 0}, values[2])
	assert.Equal(t, SourceMood, values[3].Source)
	assert.Equal(t, SeriesValue{Source: SourceBurden, Date: "2025-03-01", Metric: MetricScore, Value: 42}, values[len(values)-1])
}

func TestFlattenSeriesEmpty(t *testing.T) {
	assert.Empty(t, FlattenSeries(SnapshotSeries{}))
}
