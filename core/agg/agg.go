// Package agg turns sparse per-record data into dense per-day series.
package agg

import (
	"github.com/LakGar/Coco-sub001/schema"
)

// Bucket holds one day's counters, keyed by metric name.
type Bucket map[string]float64

// KeyFunc returns the calendar day a record belongs to. Returning false skips the record.
type KeyFunc[T any] func(record T) (schema.CalendarDay, bool)

// ReduceFunc merges a record into the bucket of its day.
type ReduceFunc[T any] func(bucket Bucket, record T)

// BuildDenseDays returns every calendar day from from through to, inclusive and
// in order. It returns nil when from is after to or either bound is not a valid day.
func BuildDenseDays(from, to schema.CalendarDay) []schema.CalendarDay {
	start, end := from.Time(), to.Time()
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}

	days := make([]schema.CalendarDay, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, schema.DayOf(d))
	}
	return days
}

// Fold buckets records by day into one SeriesPoint per entry of days. Every
// bucket starts with each of keys set to zero; records whose day falls outside
// days are dropped.
func Fold[T any](days []schema.CalendarDay, keys []string, records []T, keyFn KeyFunc[T], reduceFn ReduceFunc[T]) []schema.SeriesPoint {
	buckets := make(map[schema.CalendarDay]Bucket, len(days))
	points := make([]schema.SeriesPoint, len(days))
	for i, day := range days {
		bucket := make(Bucket, len(keys))
		for _, key := range keys {
			bucket[key] = 0
		}
		buckets[day] = bucket
		points[i] = schema.SeriesPoint{Date: day, Metrics: bucket}
	}

	for _, record := range records {
		day, ok := keyFn(record)
		if !ok {
			continue
		}
		bucket, inRange := buckets[day]
		if !inRange {
			continue
		}
		reduceFn(bucket, record)
	}

	return points
}

// Sum adds up one metric across a series.
func Sum(points []schema.SeriesPoint, key string) float64 {
	var total float64
	for _, p := range points {
		total += p.Metrics[key]
	}
	return total
}

// Count returns a ReduceFunc that increments key by one per record.
func Count[T any](key string) ReduceFunc[T] {
	return func(bucket Bucket, _ T) {
		bucket[key]++
	}
}
