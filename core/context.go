package core

import "context"

// Context keys for snapshot options
type contextKey string

const forceRefreshKey contextKey = "forceRefresh"

// WithForceRefresh marks the context so that the staleness gate recomputes
// even when the persisted snapshot is still fresh.
func WithForceRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, forceRefreshKey, true)
}

// shouldForceRefresh returns whether the gate should be bypassed
func shouldForceRefresh(ctx context.Context) bool {
	val := ctx.Value(forceRefreshKey)
	if val == nil {
		return false // default: honor the cache
	}
	force, ok := val.(bool)
	return ok && force
}
