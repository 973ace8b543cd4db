package core

import (
	"fmt"

	"github.com/LakGar/Coco-sub001/core/agg"
	"github.com/LakGar/Coco-sub001/schema"
)

// Rule compares the current window against the prior one and returns a
// highlight, or nil when it has nothing to report. Rules are pure and never
// depend on each other.
type Rule func(cur, prev schema.SnapshotTotals, curSeries, prevSeries schema.SnapshotSeries) *schema.Highlight

// Thresholds used by the default rules.
const (
	overdueSpikeNumerator   = 13 // current >= 1.3x prior, kept in integers
	overdueSpikeDenominator = 10
	medicationCritical      = 60
	medicationWarn          = 75
	moodShiftPoints         = 15
	routineDipPoints        = 20
	burdenJumpPoints        = 10.0
)

// DefaultRules is the ordered rule set every snapshot is evaluated against.
var DefaultRules = []Rule{
	overdueSpikeRule,
	medicationAdherenceRule,
	moodShiftRule,
	routineDipRule,
	burdenJumpRule,
}

// EvaluateRules runs every rule in order and collects the highlights that fired.
// The result is never nil so it encodes as an empty JSON array.
func EvaluateRules(rules []Rule, cur, prev schema.SnapshotTotals, curSeries, prevSeries schema.SnapshotSeries) []schema.Highlight {
	highlights := []schema.Highlight{}
	for _, rule := range rules {
		if h := rule(cur, prev, curSeries, prevSeries); h != nil {
			highlights = append(highlights, *h)
		}
	}
	return highlights
}

// overdueSpikeRule warns when overdue tasks grew by 30% or more. A prior window
// with nothing overdue never triggers it.
func overdueSpikeRule(cur, prev schema.SnapshotTotals, _, _ schema.SnapshotSeries) *schema.Highlight {
	if prev.TasksOverdue <= 0 || cur.TasksOverdue*overdueSpikeDenominator < prev.TasksOverdue*overdueSpikeNumerator {
		return nil
	}
	return &schema.Highlight{
		Severity:    schema.SeverityWarn,
		Title:       "Overdue tasks rising",
		Detail:      fmt.Sprintf("%d tasks overdue, up from %d in the previous window.", cur.TasksOverdue, prev.TasksOverdue),
		RelatedLink: "/tasks?filter=overdue",
		ChartAnchor: "tasks",
	}
}

func medicationAdherenceRule(cur, _ schema.SnapshotTotals, _, _ schema.SnapshotSeries) *schema.Highlight {
	if cur.MedicationAdherencePercent == nil {
		return nil
	}
	percent := *cur.MedicationAdherencePercent
	var severity schema.Severity
	switch {
	case percent < medicationCritical:
		severity = schema.SeverityCritical
	case percent < medicationWarn:
		severity = schema.SeverityWarn
	default:
		return nil
	}
	return &schema.Highlight{
		Severity:    severity,
		Title:       "Medication adherence low",
		Detail:      fmt.Sprintf("%d%% of scheduled medication doses were marked done.", percent),
		RelatedLink: "/tasks?type=MEDICATION",
		ChartAnchor: "medications",
	}
}

// agitatedShare returns the rounded share of agitated moods and the mood count.
func agitatedShare(points []schema.SeriesPoint) (share int, total float64) {
	total = agg.Sum(points, schema.MetricTotal)
	return percentOf(agg.Sum(points, schema.MetricAgitated), total), total
}

func moodShiftRule(_, _ schema.SnapshotTotals, curSeries, prevSeries schema.SnapshotSeries) *schema.Highlight {
	curShare, curTotal := agitatedShare(curSeries.Mood)
	prevShare, prevTotal := agitatedShare(prevSeries.Mood)
	if curTotal < 1 || prevTotal < 1 || curShare < prevShare+moodShiftPoints {
		return nil
	}
	return &schema.Highlight{
		Severity:    schema.SeverityWarn,
		Title:       "Mood shift toward agitation",
		Detail:      fmt.Sprintf("%d%% of moods were agitated, up from %d%% in the previous window.", curShare, prevShare),
		RelatedLink: "/moods",
		ChartAnchor: "mood",
	}
}

func routineDipRule(cur, prev schema.SnapshotTotals, _, _ schema.SnapshotSeries) *schema.Highlight {
	if cur.RoutineCompletionPercent == nil || prev.RoutineCompletionPercent == nil {
		return nil
	}
	now, before := *cur.RoutineCompletionPercent, *prev.RoutineCompletionPercent
	if now > before-routineDipPoints {
		return nil
	}
	return &schema.Highlight{
		Severity:    schema.SeverityWarn,
		Title:       "Routine completion dipped",
		Detail:      fmt.Sprintf("Routines were %d%% complete, down from %d%% in the previous window.", now, before),
		RelatedLink: "/routines",
		ChartAnchor: "routine",
	}
}

func burdenJumpRule(cur, _ schema.SnapshotTotals, curSeries, prevSeries schema.SnapshotSeries) *schema.Highlight {
	if len(curSeries.Burden) == 0 || len(prevSeries.Burden) == 0 || cur.BurdenDelta == nil {
		return nil
	}
	if *cur.BurdenDelta < burdenJumpPoints {
		return nil
	}
	return &schema.Highlight{
		Severity:    schema.SeverityCritical,
		Title:       "Burden score jump",
		Detail:      fmt.Sprintf("Caregiver burden rose by %g points to %g.", *cur.BurdenDelta, *cur.BurdenLastScore),
		RelatedLink: "/burden",
		ChartAnchor: "burden",
	}
}
