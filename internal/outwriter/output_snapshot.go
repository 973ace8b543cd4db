package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const notAvailable = "n/a"

// writeSnapshotTables prints the header, totals, highlights and (with detail) the daily series.
func writeSnapshotTables(w io.Writer, snap schema.EnrichedSnapshot, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	label := snap.Label
	if cfg.UseColors {
		label = contract.GetColorLabel(label)
	}
	_, _ = fmt.Fprintf(w, "Care snapshot for %s: %d-day window %s..%s (prior %s..%s)\n",
		snap.EntityID, snap.WindowDays, snap.Current.From, snap.Current.To, snap.Prior.From, snap.Prior.To)
	_, _ = fmt.Fprintf(w, "Status: %s (%d critical, %d warn, %d info)\n",
		label, snap.Summary.Critical, snap.Summary.Warn, snap.Summary.Info)

	if err := writeTotalsTable(w, snap.Totals, fmtFloat); err != nil {
		return err
	}
	if err := writeHighlightsTable(w, snap.Highlights, cfg); err != nil {
		return err
	}
	if cfg.Detail {
		if err := writeSeriesTable(w, snap.Series); err != nil {
			return err
		}
		writeBurdenLines(w, snap.Series.Burden, fmtFloat)
	}

	source := "computed"
	if snap.Cached {
		source = "cached"
	}
	_, _ = fmt.Fprintf(w, "Snapshot %s at %s, served in %v.\n", source, snap.ComputedAt.Format(contract.DateTimeFormat), duration)
	return nil
}

func formatPercent(p *int) string {
	if p == nil {
		return notAvailable
	}
	return strconv.Itoa(*p) + "%"
}

func formatOptional(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return notAvailable
	}
	return fmtFloat(*v)
}

func formatDelta(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return notAvailable
	}
	if *v > 0 {
		return "+" + fmtFloat(*v)
	}
	return fmtFloat(*v)
}

// writeTotalsTable prints the window totals as a two-column table.
func writeTotalsTable(w io.Writer, totals schema.SnapshotTotals, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Total", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := [][]string{
		{"Tasks completed", strconv.Itoa(totals.TasksCompleted)},
		{"Tasks overdue", strconv.Itoa(totals.TasksOverdue)},
		{"Tasks due today", strconv.Itoa(totals.TasksDueSoon)},
		{"Medication adherence", formatPercent(totals.MedicationAdherencePercent)},
		{"Routine completion", formatPercent(totals.RoutineCompletionPercent)},
		{"Burden score", formatOptional(totals.BurdenLastScore, fmtFloat)},
		{"Burden change", formatDelta(totals.BurdenDelta, fmtFloat)},
		{"Notes created", strconv.Itoa(totals.NotesCreated)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeHighlightsTable prints one row per highlight in rule order.
func writeHighlightsTable(w io.Writer, highlights []schema.Highlight, cfg *contract.Config) error {
	if len(highlights) == 0 {
		_, _ = fmt.Fprintln(w, "No highlights for this window.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Severity", "Highlight", "Detail", "Chart"}
	if cfg.Detail {
		headers = append(headers, "Link")
	}
	table.Header(headers)

	maxDetail := getMaxDetailWidth(cfg)
	var data [][]string
	for _, h := range highlights {
		severity := contract.GetPlainSeverity(h.Severity)
		if cfg.UseColors {
			severity = contract.GetColorSeverity(h.Severity)
		}
		row := []string{severity, h.Title, contract.TruncateText(h.Detail, maxDetail), h.ChartAnchor}
		if cfg.Detail {
			row = append(row, h.RelatedLink)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// seriesByDay indexes a dense series by day.
func seriesByDay(points []schema.SeriesPoint) map[schema.CalendarDay]map[string]float64 {
	index := make(map[schema.CalendarDay]map[string]float64, len(points))
	for _, p := range points {
		index[p.Date] = p.Metrics
	}
	return index
}

// writeSeriesTable prints the dense daily series of every source side by side.
func writeSeriesTable(w io.Writer, series schema.SnapshotSeries) error {
	if len(series.Tasks) == 0 {
		return nil
	}
	meds := seriesByDay(series.Medications)
	moods := seriesByDay(series.Mood)
	routine := seriesByDay(series.Routine)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Day", "Done", "Overdue", "Due", "Meds", "Positive", "Low", "Agitated", "Routine"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	count := func(m map[string]float64, key string) string {
		return strconv.Itoa(int(m[key]))
	}
	ratio := func(m map[string]float64) string {
		if m[schema.MetricTotal] == 0 {
			return "-"
		}
		return fmt.Sprintf("%d/%d", int(m[schema.MetricCompleted]), int(m[schema.MetricTotal]))
	}

	var data [][]string
	for _, p := range series.Tasks {
		mood := moods[p.Date]
		data = append(data, []string{
			p.Date.String(),
			count(p.Metrics, schema.MetricCompleted),
			count(p.Metrics, schema.MetricOverdue),
			count(p.Metrics, schema.MetricDueSoon),
			ratio(meds[p.Date]),
			count(mood, schema.MetricPositive),
			count(mood, schema.MetricLow),
			count(mood, schema.MetricAgitated),
			ratio(routine[p.Date]),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeBurdenLines(w io.Writer, burden []schema.BurdenPoint, fmtFloat func(float64) string) {
	for _, p := range burden {
		_, _ = fmt.Fprintf(w, "Burden assessment %s: %s\n", p.Date, fmtFloat(p.Score))
	}
}
