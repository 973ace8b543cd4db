package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/metrics"
	"github.com/LakGar/Coco-sub001/schema"
)

// currentSnapshotVersion defines the version of the persisted snapshot encoding
const currentSnapshotVersion = 1

// SnapshotTTL is how long a persisted snapshot is served before it is recomputed.
const SnapshotTTL = 12 * time.Hour

// isStale reports whether a snapshot computed at computedAt is too old at now.
// A snapshot exactly SnapshotTTL old is still fresh.
func isStale(computedAt, now time.Time) bool {
	return now.Sub(computedAt) > SnapshotTTL
}

// checkSnapshotHit attempts to retrieve and validate a persisted snapshot.
// Every failure mode is a miss so the caller recomputes.
func checkSnapshotHit(ctx context.Context, store contract.SnapshotStore, entityID string, windowDays int, now time.Time) *SnapshotResult {
	log := contract.Logger().With("entity_id", entityID, "window_days", windowDays)

	record, err := store.Load(ctx, entityID, windowDays)
	if err != nil {
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeLoadError).Inc()
		log.Warn("snapshot load failed, recomputing", "error", err)
		return nil
	}
	if record == nil {
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeAbsent).Inc()
		log.Debug("no persisted snapshot")
		return nil
	}

	age := now.Sub(record.ComputedAt)
	if record.Version != currentSnapshotVersion {
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeVersion).Inc()
		log.Debug("persisted snapshot has old version", "version", record.Version)
		return nil
	}
	if isStale(record.ComputedAt, now) {
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeStale).Inc()
		log.Debug("persisted snapshot is stale", "age", age)
		return nil
	}

	var data schema.SnapshotData
	if err := json.Unmarshal(record.Data, &data); err != nil {
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeDecodeError).Inc()
		log.Warn("persisted snapshot is undecodable, recomputing", "error", err)
		return nil
	}

	metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeHit).Inc()
	log.Debug("serving persisted snapshot", "age", age)
	return &SnapshotResult{Data: &data, ComputedAt: record.ComputedAt, Cached: true}
}

// computeAndStore runs the pipeline and upserts the result. A failed upsert is
// logged and the computed snapshot is returned anyway.
func computeAndStore(ctx context.Context, src contract.EventSource, store contract.SnapshotStore, entityID string, windowDays int, now time.Time) (*SnapshotResult, error) {
	data, err := computeSnapshot(ctx, src, entityID, windowDays, now)
	if err != nil {
		return nil, err
	}
	result := &SnapshotResult{Data: data, ComputedAt: now}
	if store == nil {
		return result, nil
	}

	blob, err := json.Marshal(data)
	if err != nil {
		metrics.SnapshotSaveFailures.Inc()
		contract.LogWarn("Cannot encode snapshot", err)
		return result, nil
	}
	record := schema.SnapshotRecord{
		EntityID:   entityID,
		WindowDays: windowDays,
		ComputedAt: now,
		Version:    currentSnapshotVersion,
		Data:       blob,
	}
	if err := store.Save(ctx, record); err != nil {
		metrics.SnapshotSaveFailures.Inc()
		contract.LogWarn("Cannot persist snapshot", err)
	}
	return result, nil
}
