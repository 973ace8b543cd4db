package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/iocache"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func init() {
	contract.SetLogger(contract.DiscardLogger())
}

func encodedRecord(t *testing.T, computedAt time.Time, version int, data schema.SnapshotData) *schema.SnapshotRecord {
	t.Helper()
	blob, err := json.Marshal(data)
	require.NoError(t, err)
	return &schema.SnapshotRecord{EntityID: "team-1", WindowDays: data.WindowDays, ComputedAt: computedAt, Version: version, Data: blob}
}

func cachedData() schema.SnapshotData {
	return schema.SnapshotData{
		WindowDays: schema.WeekWindow,
		Totals:     schema.SnapshotTotals{TasksCompleted: 99, NotesCreated: 7},
		Highlights: []schema.Highlight{{Severity: schema.SeverityInfo, Title: "from cache", Detail: "cached"}},
	}
}

func savedAt(now time.Time) any {
	return mock.MatchedBy(func(r schema.SnapshotRecord) bool {
		return r.EntityID == "team-1" && r.WindowDays == schema.WeekWindow &&
			r.ComputedAt.Equal(now) && r.Version == currentSnapshotVersion && len(r.Data) > 0
	})
}

func TestRefreshSnapshot_FreshRecordServedWithoutSourceCalls(t *testing.T) {
	src := &fakeSource{}
	store := &iocache.MockSnapshotStore{}
	computedAt := testNow.Add(-11 * time.Hour)
	store.On("Load", mock.Anything, "team-1", 7).Return(encodedRecord(t, computedAt, currentSnapshotVersion, cachedData()), nil)

	result, err := RefreshSnapshot(context.Background(), src, store, "team-1", 7, testNow)
	require.NoError(t, err)

	assert.True(t, result.Cached)
	assert.Equal(t, computedAt, result.ComputedAt)
	assert.Equal(t, cachedData(), *result.Data)
	assert.Zero(t, src.calls.Load(), "a fresh snapshot must not touch the event source")
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefreshSnapshot_ExactlyTwelveHoursIsFresh(t *testing.T) {
	src := &fakeSource{}
	store := &iocache.MockSnapshotStore{}
	store.On("Load", mock.Anything, "team-1", 7).Return(encodedRecord(t, testNow.Add(-SnapshotTTL), currentSnapshotVersion, cachedData()), nil)

	result, err := RefreshSnapshot(context.Background(), src, store, "team-1", 7, testNow)
	require.NoError(t, err)
	assert.True(t, result.Cached)
	assert.Zero(t, src.calls.Load())
}

func TestRefreshSnapshot_StaleRecordRecomputed(t *testing.T) {
	src := &fakeSource{}
	store := &iocache.MockSnapshotStore{}
	store.On("Load", mock.Anything, "team-1", 7).Return(encodedRecord(t, testNow.Add(-13*time.Hour), currentSnapshotVersion, cachedData()), nil)
	store.On("Save", mock.Anything, savedAt(testNow)).Return(nil).Once()

	result, err := RefreshSnapshot(context.Background(), src, store, "team-1", 7, testNow)
	require.NoError(t, err)

	assert.False(t, result.Cached)
	assert.Equal(t, testNow, result.ComputedAt)
	assert.Zero(t, result.Data.Totals.TasksCompleted)
	assert.Positive(t, src.calls.Load())
	store.AssertExpectations(t)
}

func TestRefreshSnapshot_MissesRecompute(t *testing.T) {
	fresh := testNow.Add(-time.Hour)
	undecodable := &schema.SnapshotRecord{EntityID: "team-1", WindowDays: 7, ComputedAt: fresh, Version: currentSnapshotVersion, Data: []byte("{not json")}

	tests := []struct {
		name    string
		record  *schema.SnapshotRecord
		loadErr error
	}{
		{name: "absent", record: nil},
		{name: "version mismatch", record: encodedRecord(t, fresh, currentSnapshotVersion+1, cachedData())},
		{name: "undecodable", record: undecodable},
		{name: "load error", loadErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			store := &iocache.MockSnapshotStore{}
			store.On("Load", mock.Anything, "team-1", 7).Return(tt.record, tt.loadErr)
			store.On("Save", mock.Anything, savedAt(testNow)).Return(nil).Once()

			result, err := RefreshSnapshot(context.Background(), src, store, "team-1", 7, testNow)
			require.NoError(t, err)
			assert.False(t, result.Cached)
			assert.Positive(t, src.calls.Load())
			store.AssertExpectations(t)
		})
	}
}

func TestRefreshSnapshot_ForceSkipsLoad(t *testing.T) {
	src := &fakeSource{}
	store := &iocache.MockSnapshotStore{}
	store.On("Save", mock.Anything, savedAt(testNow)).Return(nil).Once()

	result, err := RefreshSnapshot(WithForceRefresh(context.Background()), src, store, "team-1", 7, testNow)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	store.AssertNotCalled(t, "Load", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestRefreshSnapshot_SaveFailureStillReturnsData(t *testing.T) {
	src := &fakeSource{moods: moods("2025-03-09", "calm")}
	store := &iocache.MockSnapshotStore{}
	store.On("Load", mock.Anything, "team-1", 7).Return(nil, nil)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	data, err := ComputeOrRefreshSnapshot(context.Background(), src, store, "team-1", 7, testNow)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, 7, data.WindowDays)
	assert.Len(t, data.Series.Mood, 7)
}

func TestRefreshSnapshot_SourceFailureFailsCall(t *testing.T) {
	for _, source := range []string{"tasks", "medications", "moods", "routines", "routine instances", "burden", "notes"} {
		t.Run(source, func(t *testing.T) {
			src := &fakeSource{failOn: source}
			store := &iocache.MockSnapshotStore{}
			store.On("Load", mock.Anything, "team-1", 7).Return(nil, nil)

			data, err := ComputeOrRefreshSnapshot(context.Background(), src, store, "team-1", 7, testNow)
			require.Error(t, err)
			assert.Nil(t, data)
			assert.Contains(t, err.Error(), "fetch "+source+":")
			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestRefreshSnapshot_InvalidWindowFailsFast(t *testing.T) {
	src := &contract.MockEventSource{}
	store := &iocache.MockSnapshotStore{}

	for _, window := range []int{0, 1, 14, 31, -7} {
		_, err := RefreshSnapshot(context.Background(), src, store, "team-1", window, testNow)
		require.ErrorIs(t, err, schema.ErrInvalidWindow)
	}
	src.AssertExpectations(t)
	store.AssertNotCalled(t, "Load", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshSnapshot_NilStoreAndSource(t *testing.T) {
	result, err := RefreshSnapshot(context.Background(), &fakeSource{}, nil, "team-1", 30, testNow)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Len(t, result.Data.Series.Tasks, 30)

	_, err = RefreshSnapshot(context.Background(), nil, nil, "team-1", 7, testNow)
	assert.Error(t, err)
}

func TestComputeSnapshot_Idempotent(t *testing.T) {
	src := scenarioSource()

	first, err := ComputeOrRefreshSnapshot(context.Background(), src, nil, "team-1", 7, testNow)
	require.NoError(t, err)
	second, err := ComputeOrRefreshSnapshot(context.Background(), src, nil, "team-1", 7, testNow)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestComputeSnapshot_EmptySourcesEncodeEmptyHighlights(t *testing.T) {
	data, err := ComputeOrRefreshSnapshot(context.Background(), &fakeSource{}, nil, "team-1", 7, testNow)
	require.NoError(t, err)

	blob, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"highlights":[]`)
	assert.Contains(t, string(blob), `"medicationAdherencePercent":null`)
	assert.Contains(t, string(blob), `"routineCompletionPercent":null`)
	assert.Nil(t, data.Totals.BurdenDelta)
}

func TestComputeSnapshot_ConcurrentWindows(t *testing.T) {
	src := scenarioSource()
	var wg sync.WaitGroup
	results := make([]*schema.SnapshotData, 2)
	for i, window := range []int{schema.WeekWindow, schema.MonthWindow} {
		wg.Go(func() {
			data, err := ComputeOrRefreshSnapshot(context.Background(), src, nil, "team-1", window, testNow)
			assert.NoError(t, err)
			results[i] = data
		})
	}
	wg.Wait()

	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.Len(t, results[0].Series.Tasks, 7)
	assert.Len(t, results[1].Series.Tasks, 30)
}

// scenarioSource is a team whose current week went worse than the week before:
// agitated moods doubled, half the medication doses were missed and the
// caregiver burden score rose from 40 to 52.
func scenarioSource() *fakeSource {
	src := &fakeSource{activeRoutines: 2}

	src.moods = append(src.moods, moods("2025-03-05", "anxious", "irritable", "restless", "confused", "anxious", "Agitated", "calm", "content", "neutral", "relaxed")...)
	src.moods = append(src.moods, moods("2025-02-27", "anxious", "irritable", "restless", "calm", "calm", "content", "neutral", "relaxed", "calm", "sad")...)

	for i := range 10 {
		status := schema.TaskTodo
		updated := at("2025-03-01", 9)
		if i < 5 {
			status = schema.TaskDone
			updated = at("2025-03-05", 11)
		}
		src.tasks = append(src.tasks, task("med-"+string(rune('a'+i)), status, schema.TaskTypeMedication, ptrTime(at("2025-03-05", 10)), updated))
	}

	src.burden = []schema.BurdenAssessment{
		{Score: 40, SubmittedAt: at("2025-02-28", 18)},
		{Score: 52, SubmittedAt: at("2025-03-08", 18)},
	}
	src.instances = []schema.RoutineInstance{
		{RoutineID: "r1", Date: at("2025-03-09", 0), Answers: map[string]any{"done": true}},
		{RoutineID: "r2", Date: at("2025-03-09", 0), Answers: map[string]any{}},
	}
	src.notes = []time.Time{at("2025-03-06", 10), at("2025-03-07", 10), at("2025-02-26", 10)}
	return src
}

func highlightTitles(highlights []schema.Highlight) []string {
	titles := make([]string, len(highlights))
	for i, h := range highlights {
		titles[i] = h.Title
	}
	return titles
}

func TestComputeSnapshot_Scenario(t *testing.T) {
	data, err := ComputeOrRefreshSnapshot(context.Background(), scenarioSource(), nil, "team-1", 7, testNow)
	require.NoError(t, err)

	totals := data.Totals
	assert.Equal(t, 5, totals.TasksCompleted)
	assert.Equal(t, 5, totals.TasksOverdue)
	assert.Zero(t, totals.TasksDueSoon)
	require.NotNil(t, totals.MedicationAdherencePercent)
	assert.Equal(t, 50, *totals.MedicationAdherencePercent)
	require.NotNil(t, totals.RoutineCompletionPercent)
	assert.Equal(t, 7, *totals.RoutineCompletionPercent) // 1 of 2 routines on 1 of 7 days
	require.NotNil(t, totals.BurdenLastScore)
	assert.InDelta(t, 52.0, *totals.BurdenLastScore, 1e-9)
	require.NotNil(t, totals.BurdenDelta)
	assert.InDelta(t, 12.0, *totals.BurdenDelta, 1e-9)
	assert.Equal(t, 2, totals.NotesCreated)

	// The prior window had nothing overdue, so the overdue rule stays silent.
	assert.Equal(t, []string{"Medication adherence low", "Mood shift toward agitation", "Burden score jump"}, highlightTitles(data.Highlights))
	assert.Equal(t, schema.SeverityCritical, data.Highlights[0].Severity)
	assert.Equal(t, schema.SeverityWarn, data.Highlights[1].Severity)
	assert.Equal(t, schema.SeverityCritical, data.Highlights[2].Severity)
	assert.Contains(t, data.Highlights[1].Detail, "60%")
	assert.Contains(t, data.Highlights[1].Detail, "30%")
}

func TestComputeSnapshot_BurdenBelowThresholdSilent(t *testing.T) {
	src := scenarioSource()
	src.burden[1].Score = 48

	data, err := ComputeOrRefreshSnapshot(context.Background(), src, nil, "team-1", 7, testNow)
	require.NoError(t, err)
	assert.NotContains(t, highlightTitles(data.Highlights), "Burden score jump")
	assert.InDelta(t, 8.0, *data.Totals.BurdenDelta, 1e-9)
}

func TestComputeSnapshot_SeriesAreDenseAndOrdered(t *testing.T) {
	data, err := ComputeOrRefreshSnapshot(context.Background(), scenarioSource(), nil, "team-1", 30, testNow)
	require.NoError(t, err)

	for _, series := range [][]schema.SeriesPoint{data.Series.Tasks, data.Series.Medications, data.Series.Mood, data.Series.Routine} {
		require.Len(t, series, 30)
		assert.Equal(t, schema.CalendarDay("2025-02-09"), series[0].Date)
		assert.Equal(t, schema.CalendarDay("2025-03-10"), series[29].Date)
		for i := 1; i < len(series); i++ {
			assert.Equal(t, series[i-1].Date.AddDays(1), series[i].Date)
		}
	}
	assert.Len(t, data.Series.Burden, 2)
}
