package schema_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name       string
		highlights []schema.Highlight
		expected   string
	}{
		{"No highlights", nil, "Steady"},
		{"Info only", []schema.Highlight{{Severity: schema.SeverityInfo}}, "Steady"},
		{"Warn", []schema.Highlight{{Severity: schema.SeverityWarn}}, "Attention"},
		{"Critical wins", []schema.Highlight{{Severity: schema.SeverityWarn}, {Severity: schema.SeverityCritical}}, "Critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.highlights))
		})
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, schema.SeverityCritical.Rank(), schema.SeverityWarn.Rank())
	assert.Less(t, schema.SeverityWarn.Rank(), schema.SeverityInfo.Rank())
}

func TestEnrichSnapshot(t *testing.T) {
	data := schema.SnapshotData{
		WindowDays: 7,
		Highlights: []schema.Highlight{
			{Severity: schema.SeverityCritical, Title: "Burden score jump"},
			{Severity: schema.SeverityWarn, Title: "Overdue tasks rising"},
			{Severity: schema.SeverityWarn, Title: "Routine completion dipped"},
		},
	}
	computedAt := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)

	enriched := schema.EnrichSnapshot("team-1", computedAt, true, data)
	assert.Equal(t, "team-1", enriched.EntityID)
	assert.True(t, enriched.Cached)
	assert.Equal(t, schema.Window{From: "2024-05-09", To: "2024-05-15"}, enriched.Current)
	assert.Equal(t, schema.Window{From: "2024-05-02", To: "2024-05-08"}, enriched.Prior)
	assert.Equal(t, "Critical", enriched.Label)
	assert.Equal(t, schema.HighlightSummary{Critical: 1, Warn: 2}, enriched.Summary)
	assert.Equal(t, 7, enriched.WindowDays)
}

func TestSnapshotDataJSONFieldNames(t *testing.T) {
	pct := 80
	data := schema.SnapshotData{
		WindowDays: 30,
		Series: schema.SnapshotSeries{
			Tasks: []schema.SeriesPoint{{Date: "2024-05-15", Metrics: map[string]float64{"completed": 1}}},
		},
		Totals:     schema.SnapshotTotals{TasksCompleted: 1, RoutineCompletionPercent: &pct},
		Highlights: []schema.Highlight{},
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "windowDays")
	assert.Contains(t, generic, "series")
	assert.Contains(t, generic, "highlights")

	totals := generic["totals"].(map[string]any)
	for _, key := range []string{
		"tasksCompleted", "tasksOverdue", "tasksDueSoon", "medicationAdherencePercent",
		"routineCompletionPercent", "burdenLastScore", "burdenDelta", "notesCreated",
	} {
		assert.Contains(t, totals, key)
	}
	assert.Nil(t, totals["medicationAdherencePercent"], "absent adherence is null, not zero")
	assert.Equal(t, 80.0, totals["routineCompletionPercent"])

	series := generic["series"].(map[string]any)
	assert.Contains(t, series, "tasks")
	assert.NotContains(t, series, "burden", "empty series are omitted")
}
