package core

import (
	"testing"

	"github.com/LakGar/Coco-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moodSeries(agitated, total float64) []schema.SeriesPoint {
	return []schema.SeriesPoint{{Date: "2025-03-05", Metrics: map[string]float64{
		schema.MetricPositive: total - agitated, schema.MetricLow: 0, schema.MetricAgitated: agitated, schema.MetricTotal: total,
	}}}
}

func burdenSeries(scores ...float64) []schema.BurdenPoint {
	points := make([]schema.BurdenPoint, len(scores))
	for i, s := range scores {
		points[i] = schema.BurdenPoint{Date: schema.CalendarDay("2025-03-04").AddDays(i), Score: s}
	}
	return points
}

func TestOverdueSpikeRule(t *testing.T) {
	tests := []struct {
		name      string
		cur, prev int
		fires     bool
	}{
		{name: "30 percent rise", cur: 13, prev: 10, fires: true},
		{name: "just under", cur: 12, prev: 10, fires: false},
		{name: "small counts", cur: 2, prev: 1, fires: true},
		{name: "prior zero never fires", cur: 50, prev: 0, fires: false},
		{name: "both zero", cur: 0, prev: 0, fires: false},
		{name: "falling", cur: 3, prev: 8, fires: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := overdueSpikeRule(schema.SnapshotTotals{TasksOverdue: tt.cur}, schema.SnapshotTotals{TasksOverdue: tt.prev}, schema.SnapshotSeries{}, schema.SnapshotSeries{})
			if !tt.fires {
				assert.Nil(t, h)
				return
			}
			require.NotNil(t, h)
			assert.Equal(t, schema.SeverityWarn, h.Severity)
			assert.Equal(t, "Overdue tasks rising", h.Title)
			assert.Equal(t, "tasks", h.ChartAnchor)
		})
	}
}

func TestMedicationAdherenceRule(t *testing.T) {
	tests := []struct {
		name     string
		percent  *int
		severity schema.Severity
	}{
		{name: "no medications", percent: nil},
		{name: "half missed", percent: ptrInt(50), severity: schema.SeverityCritical},
		{name: "59", percent: ptrInt(59), severity: schema.SeverityCritical},
		{name: "60", percent: ptrInt(60), severity: schema.SeverityWarn},
		{name: "74", percent: ptrInt(74), severity: schema.SeverityWarn},
		{name: "75", percent: ptrInt(75)},
		{name: "perfect", percent: ptrInt(100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := medicationAdherenceRule(schema.SnapshotTotals{MedicationAdherencePercent: tt.percent}, schema.SnapshotTotals{}, schema.SnapshotSeries{}, schema.SnapshotSeries{})
			if tt.severity == "" {
				assert.Nil(t, h)
				return
			}
			require.NotNil(t, h)
			assert.Equal(t, tt.severity, h.Severity)
			assert.Equal(t, "/tasks?type=MEDICATION", h.RelatedLink)
		})
	}
}

func TestMoodShiftRule(t *testing.T) {
	tests := []struct {
		name      string
		cur, prev []schema.SeriesPoint
		fires     bool
	}{
		{name: "60 vs 30", cur: moodSeries(6, 10), prev: moodSeries(3, 10), fires: true},
		{name: "exactly 15 points", cur: moodSeries(9, 20), prev: moodSeries(6, 20), fires: true},
		{name: "14 points", cur: moodSeries(44, 100), prev: moodSeries(30, 100), fires: false},
		{name: "no current moods", cur: moodSeries(0, 0), prev: moodSeries(3, 10), fires: false},
		{name: "no prior moods", cur: moodSeries(6, 10), prev: nil, fires: false},
		{name: "improving", cur: moodSeries(1, 10), prev: moodSeries(6, 10), fires: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := moodShiftRule(schema.SnapshotTotals{}, schema.SnapshotTotals{}, schema.SnapshotSeries{Mood: tt.cur}, schema.SnapshotSeries{Mood: tt.prev})
			if !tt.fires {
				assert.Nil(t, h)
				return
			}
			require.NotNil(t, h)
			assert.Equal(t, schema.SeverityWarn, h.Severity)
			assert.Equal(t, "mood", h.ChartAnchor)
		})
	}
}

func TestRoutineDipRule(t *testing.T) {
	tests := []struct {
		name      string
		cur, prev *int
		fires     bool
	}{
		{name: "dropped 20", cur: ptrInt(60), prev: ptrInt(80), fires: true},
		{name: "dropped 19", cur: ptrInt(61), prev: ptrInt(80), fires: false},
		{name: "dropped to zero", cur: ptrInt(0), prev: ptrInt(100), fires: true},
		{name: "no current", cur: nil, prev: ptrInt(80), fires: false},
		{name: "no prior", cur: ptrInt(10), prev: nil, fires: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := routineDipRule(schema.SnapshotTotals{RoutineCompletionPercent: tt.cur}, schema.SnapshotTotals{RoutineCompletionPercent: tt.prev}, schema.SnapshotSeries{}, schema.SnapshotSeries{})
			assert.Equal(t, tt.fires, h != nil)
		})
	}
}

func TestBurdenJumpRule(t *testing.T) {
	tests := []struct {
		name      string
		cur, prev []schema.BurdenPoint
		fires     bool
	}{
		{name: "40 to 52", cur: burdenSeries(52), prev: burdenSeries(40), fires: true},
		{name: "40 to 48", cur: burdenSeries(48), prev: burdenSeries(40), fires: false},
		{name: "exactly 10", cur: burdenSeries(30, 50), prev: burdenSeries(40), fires: true},
		{name: "last score counts", cur: burdenSeries(60, 45), prev: burdenSeries(40), fires: false},
		{name: "no prior", cur: burdenSeries(90), prev: nil, fires: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := windowData{series: schema.SnapshotSeries{Burden: tt.cur}}
			prior := windowData{series: schema.SnapshotSeries{Burden: tt.prev}}
			cur := computeTotals(current, &prior)

			h := burdenJumpRule(cur, schema.SnapshotTotals{}, current.series, prior.series)
			if !tt.fires {
				assert.Nil(t, h)
				return
			}
			require.NotNil(t, h)
			assert.Equal(t, schema.SeverityCritical, h.Severity)
			assert.Equal(t, "Burden score jump", h.Title)
		})
	}
}

func TestBurdenJumpRuleDetail(t *testing.T) {
	current := windowData{series: schema.SnapshotSeries{Burden: burdenSeries(52)}}
	prior := windowData{series: schema.SnapshotSeries{Burden: burdenSeries(40)}}

	h := burdenJumpRule(computeTotals(current, &prior), schema.SnapshotTotals{}, current.series, prior.series)
	require.NotNil(t, h)
	assert.Equal(t, "Caregiver burden rose by 12 points to 52.", h.Detail)
}

func TestEvaluateRules(t *testing.T) {
	t.Run("nothing fires", func(t *testing.T) {
		highlights := EvaluateRules(DefaultRules, schema.SnapshotTotals{}, schema.SnapshotTotals{}, schema.SnapshotSeries{}, schema.SnapshotSeries{})
		assert.NotNil(t, highlights)
		assert.Empty(t, highlights)
	})

	t.Run("rule order is preserved", func(t *testing.T) {
		cur := schema.SnapshotTotals{TasksOverdue: 5, MedicationAdherencePercent: ptrInt(70), RoutineCompletionPercent: ptrInt(10)}
		prev := schema.SnapshotTotals{TasksOverdue: 2, RoutineCompletionPercent: ptrInt(90)}

		highlights := EvaluateRules(DefaultRules, cur, prev, schema.SnapshotSeries{}, schema.SnapshotSeries{})
		assert.Equal(t, []string{"Overdue tasks rising", "Medication adherence low", "Routine completion dipped"}, highlightTitles(highlights))
	})

	t.Run("custom rules", func(t *testing.T) {
		always := func(_, _ schema.SnapshotTotals, _, _ schema.SnapshotSeries) *schema.Highlight {
			return &schema.Highlight{Severity: schema.SeverityInfo, Title: "always"}
		}
		highlights := EvaluateRules([]Rule{always, always}, schema.SnapshotTotals{}, schema.SnapshotTotals{}, schema.SnapshotSeries{}, schema.SnapshotSeries{})
		assert.Len(t, highlights, 2)
	})
}
