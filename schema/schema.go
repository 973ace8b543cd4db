// Package schema has the models and constants shared by all parts of coco.
package schema

// SeriesPoint is one calendar day of a dense series. Metric keys depend on the
// source that produced the series (see the Metric* constants).
type SeriesPoint struct {
	Date    CalendarDay        `json:"date"`
	Metrics map[string]float64 `json:"metrics"`
}

// BurdenPoint is a single caregiver-burden assessment. Burden series are sparse.
type BurdenPoint struct {
	Date  CalendarDay `json:"date"`
	Score float64     `json:"score"`
}

// SnapshotSeries holds the per-source series of one window.
type SnapshotSeries struct {
	Tasks       []SeriesPoint `json:"tasks,omitempty"`
	Medications []SeriesPoint `json:"medications,omitempty"`
	Mood        []SeriesPoint `json:"mood,omitempty"`
	Routine     []SeriesPoint `json:"routine,omitempty"`
	Burden      []BurdenPoint `json:"burden,omitempty"`
}

// SnapshotTotals are the window-level rollups. Pointer fields are null when
// the window has no data for them, which is not the same thing as zero.
type SnapshotTotals struct {
	TasksCompleted             int      `json:"tasksCompleted"`
	TasksOverdue               int      `json:"tasksOverdue"`
	TasksDueSoon               int      `json:"tasksDueSoon"`
	MedicationAdherencePercent *int     `json:"medicationAdherencePercent"`
	RoutineCompletionPercent   *int     `json:"routineCompletionPercent"`
	BurdenLastScore            *float64 `json:"burdenLastScore"`
	BurdenDelta                *float64 `json:"burdenDelta"`
	NotesCreated               int      `json:"notesCreated"`
}

// Highlight is a derived, severity-tagged observation about a window.
type Highlight struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Detail      string   `json:"detail"`
	RelatedLink string   `json:"relatedLink,omitempty"`
	ChartAnchor string   `json:"chartAnchor,omitempty"`
}

// SnapshotData is the unit of computation and the unit of cache.
type SnapshotData struct {
	WindowDays int            `json:"windowDays"`
	Series     SnapshotSeries `json:"series"`
	Totals     SnapshotTotals `json:"totals"`
	Highlights []Highlight    `json:"highlights"`
}
