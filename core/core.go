// Package core has the care journey snapshot engine: collectors, totals,
// highlight rules and the staleness gate in front of them.
package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/outwriter"
	"github.com/LakGar/Coco-sub001/schema"
)

// ErrMissingEntity is returned when a snapshot is requested without an entity.
var ErrMissingEntity = errors.New("entity id is required")

// ExecuteSnapshot computes or refreshes the configured snapshot and prints it.
// It serves as the main entry point for the 'snapshot' command.
func ExecuteSnapshot(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	enriched, err := GetEnrichedSnapshot(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintSnapshot(enriched, cfg, time.Since(start))
}

// GetEnrichedSnapshot runs the gate for cfg and decorates the result for display.
func GetEnrichedSnapshot(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.EnrichedSnapshot, error) {
	result, err := GetSnapshotResult(ctx, cfg, mgr)
	if err != nil {
		return schema.EnrichedSnapshot{}, err
	}
	return schema.EnrichSnapshot(cfg.EntityID, result.ComputedAt, result.Cached, *result.Data), nil
}

// GetSnapshotResult resolves the entity, window, clock and force flag from cfg
// and runs the staleness gate against the manager's stores.
func GetSnapshotResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*SnapshotResult, error) {
	if strings.TrimSpace(cfg.EntityID) == "" {
		return nil, ErrMissingEntity
	}
	if cfg.Force {
		ctx = WithForceRefresh(ctx)
	}
	return RefreshSnapshot(ctx, mgr.GetEventSource(), mgr.GetSnapshotStore(), cfg.EntityID, cfg.WindowDays, cfg.ResolveNow())
}
