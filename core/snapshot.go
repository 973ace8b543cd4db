package core

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/metrics"
	"github.com/LakGar/Coco-sub001/schema"
)

// SnapshotResult is a snapshot together with where it came from.
type SnapshotResult struct {
	Data       *schema.SnapshotData
	ComputedAt time.Time
	Cached     bool // Served from the store without recomputing
}

// ComputeOrRefreshSnapshot returns the snapshot for (entityID, windowDays) at now.
// A fresh persisted snapshot is returned unchanged; otherwise both windows are
// collected, reduced, evaluated and upserted before returning.
func ComputeOrRefreshSnapshot(ctx context.Context, src contract.EventSource, store contract.SnapshotStore, entityID string, windowDays int, now time.Time) (*schema.SnapshotData, error) {
	result, err := RefreshSnapshot(ctx, src, store, entityID, windowDays, now)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// RefreshSnapshot is ComputeOrRefreshSnapshot with provenance. The store may be
// nil, in which case every call computes and nothing is persisted.
func RefreshSnapshot(ctx context.Context, src contract.EventSource, store contract.SnapshotStore, entityID string, windowDays int, now time.Time) (*SnapshotResult, error) {
	if err := schema.ValidateWindowDays(windowDays); err != nil {
		return nil, fmt.Errorf("window %d: %w", windowDays, err)
	}
	if src == nil {
		return nil, fmt.Errorf("no event source configured")
	}
	now = now.UTC()

	switch {
	case store == nil:
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeNoStore).Inc()
	case shouldForceRefresh(ctx):
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeForced).Inc()
	default:
		if hit := checkSnapshotHit(ctx, store, entityID, windowDays, now); hit != nil {
			return hit, nil
		}
	}
	return computeAndStore(ctx, src, store, entityID, windowDays, now)
}

// computeSnapshot collects the current and prior windows concurrently, then
// reduces them to totals and evaluates the default rules.
func computeSnapshot(ctx context.Context, src contract.EventSource, entityID string, windowDays int, now time.Time) (*schema.SnapshotData, error) {
	start := time.Now()
	currentWindow, priorWindow := schema.WindowsFor(now, windowDays)
	today := schema.DayOf(now)

	var current, prior windowData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = collectWindow(gctx, src, entityID, currentWindow, today)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = collectWindow(gctx, src, entityID, priorWindow, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currentTotals := computeTotals(current, &prior)
	priorTotals := computeTotals(prior, nil)
	highlights := EvaluateRules(DefaultRules, currentTotals, priorTotals, current.series, prior.series)
	for _, h := range highlights {
		metrics.HighlightsEmitted.WithLabelValues(string(h.Severity)).Inc()
	}

	duration := time.Since(start)
	metrics.SnapshotComputeSeconds.WithLabelValues(strconv.Itoa(windowDays)).Observe(duration.Seconds())
	contract.Logger().Info("snapshot computed",
		"entity_id", entityID,
		"window_days", windowDays,
		"highlights", len(highlights),
		"duration", duration)

	return &schema.SnapshotData{
		WindowDays: windowDays,
		Series:     current.series,
		Totals:     currentTotals,
		Highlights: highlights,
	}, nil
}
