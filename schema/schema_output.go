package schema

import "time"

// HighlightSummary counts highlights by severity.
type HighlightSummary struct {
	Critical int `json:"critical"`
	Warn     int `json:"warn"`
	Info     int `json:"info"`
}

// EnrichedSnapshot adds presentation data to a SnapshotData.
type EnrichedSnapshot struct {
	EntityID   string           `json:"entityId"`
	ComputedAt time.Time        `json:"computedAt"`
	Cached     bool             `json:"cached"`
	Current    Window           `json:"current"`
	Prior      Window           `json:"prior"`
	Label      string           `json:"label"`
	Summary    HighlightSummary `json:"summary"`
	SnapshotData
}

// Rank orders severities from most to least urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarn:
		return 1
	default:
		return 2
	}
}

// GetPlainLabel returns a plain text label for the overall state of a snapshot,
// driven by its most severe highlight.
func GetPlainLabel(highlights []Highlight) string {
	summary := SummarizeHighlights(highlights)
	switch {
	case summary.Critical > 0:
		return "Critical"
	case summary.Warn > 0:
		return "Attention"
	default:
		return "Steady"
	}
}

// SummarizeHighlights counts highlights per severity.
func SummarizeHighlights(highlights []Highlight) HighlightSummary {
	var s HighlightSummary
	for _, h := range highlights {
		switch h.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityWarn:
			s.Warn++
		default:
			s.Info++
		}
	}
	return s
}

// EnrichSnapshot adds windows, label and summary to a snapshot computed at computedAt.
func EnrichSnapshot(entityID string, computedAt time.Time, cached bool, data SnapshotData) EnrichedSnapshot {
	current, prior := WindowsFor(computedAt, data.WindowDays)
	return EnrichedSnapshot{
		EntityID:     entityID,
		ComputedAt:   computedAt,
		Cached:       cached,
		Current:      current,
		Prior:        prior,
		Label:        GetPlainLabel(data.Highlights),
		Summary:      SummarizeHighlights(data.Highlights),
		SnapshotData: data,
	}
}
