// Package parquet provides data structures and functions for exporting care
// snapshots to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesRow is one metric value of one day of a snapshot series.
type SeriesRow struct {
	// EntityID is the care team the snapshot belongs to
	EntityID string `parquet:"entity_id,snappy,dict"`

	// WindowDays is the snapshot window size (7 or 30)
	WindowDays int32 `parquet:"window_days,snappy"`

	// ComputedAt is when the snapshot was computed (stored as TIMESTAMP with nanosecond precision)
	ComputedAt time.Time `parquet:"computed_at,snappy"`

	// Source is the event stream (tasks, medications, mood, routine, burden)
	Source string `parquet:"source,snappy,dict"`

	// Day is the UTC calendar day as YYYY-MM-DD
	Day string `parquet:"day,snappy"`

	// Metric is the metric key within the source
	Metric string `parquet:"metric,snappy,dict"`

	// Value is the metric value for the day
	Value float64 `parquet:"value,snappy"`
}

// HighlightRow is one highlight of a snapshot.
type HighlightRow struct {
	EntityID    string    `parquet:"entity_id,snappy,dict"`
	WindowDays  int32     `parquet:"window_days,snappy"`
	ComputedAt  time.Time `parquet:"computed_at,snappy"`
	Severity    string    `parquet:"severity,snappy,dict"`
	Title       string    `parquet:"title,snappy"`
	Detail      string    `parquet:"detail,snappy"`
	RelatedLink *string   `parquet:"related_link,optional,snappy"`
	ChartAnchor *string   `parquet:"chart_anchor,optional,snappy"`
}

// SeriesRowsFrom flattens the series of a snapshot into rows.
func SeriesRowsFrom(snap schema.EnrichedSnapshot) []SeriesRow {
	values := schema.FlattenSeries(snap.Series)
	rows := make([]SeriesRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, SeriesRow{
			EntityID:   snap.EntityID,
			WindowDays: int32(snap.WindowDays),
			ComputedAt: snap.ComputedAt,
			Source:     v.Source,
			Day:        v.Date.String(),
			Metric:     v.Metric,
			Value:      v.Value,
		})
	}
	return rows
}

// HighlightRowsFrom converts the highlights of a snapshot into rows.
func HighlightRowsFrom(snap schema.EnrichedSnapshot) []HighlightRow {
	rows := make([]HighlightRow, 0, len(snap.Highlights))
	for _, h := range snap.Highlights {
		rows = append(rows, HighlightRow{
			EntityID:    snap.EntityID,
			WindowDays:  int32(snap.WindowDays),
			ComputedAt:  snap.ComputedAt,
			Severity:    string(h.Severity),
			Title:       h.Title,
			Detail:      h.Detail,
			RelatedLink: optionalString(h.RelatedLink),
			ChartAnchor: optionalString(h.ChartAnchor),
		})
	}
	return rows
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteSeriesParquet writes a slice of SeriesRow structs to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteHighlightsParquet writes a slice of HighlightRow structs to a Parquet file.
func WriteHighlightsParquet(data []HighlightRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with the schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
