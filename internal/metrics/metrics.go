// Package metrics exposes prometheus instruments for the snapshot engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gate outcomes recorded by SnapshotRequests.
const (
	OutcomeHit         = "hit"
	OutcomeAbsent      = "absent"
	OutcomeStale       = "stale"
	OutcomeVersion     = "version_mismatch"
	OutcomeLoadError   = "load_error"
	OutcomeDecodeError = "decode_error"
	OutcomeForced      = "forced"
	OutcomeNoStore     = "no_store"
)

var (
	// Registry holds every coco collector plus the Go runtime collectors.
	Registry = prometheus.NewRegistry()

	// SnapshotRequests counts gate decisions by outcome.
	SnapshotRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coco",
		Subsystem: "snapshot",
		Name:      "requests_total",
		Help:      "Snapshot requests by staleness gate outcome.",
	}, []string{"outcome"})

	// SnapshotComputeSeconds observes full pipeline runs.
	SnapshotComputeSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "coco",
		Subsystem: "snapshot",
		Name:      "compute_seconds",
		Help:      "Time spent collecting and reducing both windows.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"window_days"})

	// SnapshotSaveFailures counts upserts that failed after a successful compute.
	SnapshotSaveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coco",
		Subsystem: "snapshot",
		Name:      "save_failures_total",
		Help:      "Snapshot upserts that failed after a successful compute.",
	})

	// SourceFailures counts event source fetches that failed, by source.
	SourceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coco",
		Subsystem: "events",
		Name:      "fetch_failures_total",
		Help:      "Event source queries that returned an error.",
	}, []string{"source"})

	// HighlightsEmitted counts highlights produced by fresh computations.
	HighlightsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coco",
		Subsystem: "snapshot",
		Name:      "highlights_total",
		Help:      "Highlights emitted by freshly computed snapshots.",
	}, []string{"severity"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		SnapshotRequests,
		SnapshotComputeSeconds,
		SnapshotSaveFailures,
		SourceFailures,
		HighlightsEmitted,
	)
}

// Handler serves the registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
