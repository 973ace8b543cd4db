package iocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/go-sql-driver/mysql"
)

// snapshotTable is the name of the table holding one snapshot per (entity, window).
const snapshotTable = "care_snapshots"

// SnapshotStoreImpl persists snapshots using various database backends.
type SnapshotStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.SnapshotStore = &SnapshotStoreImpl{} // Compile-time check

// NewSnapshotStore opens the backend, applies pending migrations and returns the store.
// The none backend yields a store that never hits and discards saves.
func NewSnapshotStore(backend schema.DatabaseBackend, connStr string) (*SnapshotStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &SnapshotStoreImpl{tableName: snapshotTable, backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, contract.GetSnapshotDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	if _, err := runMigrations(db, backend, snapshotMigrations, -1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate snapshot store: %w", err)
	}

	return &SnapshotStoreImpl{
		db:        db,
		tableName: snapshotTable,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

// Load returns the record for (entityID, windowDays), or nil when none exists.
func (ss *SnapshotStoreImpl) Load(ctx context.Context, entityID string, windowDays int) (*schema.SnapshotRecord, error) {
	// Always a miss for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	query := rebind(fmt.Sprintf(
		`SELECT computed_at, snapshot_version, data FROM %s WHERE owner_entity_id = ? AND window_days = ?`,
		quoteTableName(ss.tableName, ss.backend)), ss.backend)

	record := schema.SnapshotRecord{EntityID: entityID, WindowDays: windowDays}
	var ts int64
	err := ss.db.QueryRowContext(ctx, query, entityID, windowDays).Scan(&ts, &record.Version, &record.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s/%d: %w", entityID, windowDays, err)
	}
	record.ComputedAt = time.Unix(ts, 0).UTC()
	return &record, nil
}

// Save upserts the record keyed on (EntityID, WindowDays).
func (ss *SnapshotStoreImpl) Save(ctx context.Context, record schema.SnapshotRecord) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	_, err := ss.db.ExecContext(ctx, ss.getUpsertQuery(),
		record.EntityID, record.WindowDays, record.ComputedAt.Unix(), record.Version, record.Data)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s/%d: %w", record.EntityID, record.WindowDays, err)
	}
	return nil
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ss *SnapshotStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(ss.tableName, ss.backend)
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (owner_entity_id, window_days, computed_at, snapshot_version, data) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE computed_at = new.computed_at, snapshot_version = new.snapshot_version, data = new.data`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (owner_entity_id, window_days, computed_at, snapshot_version, data) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (owner_entity_id, window_days) DO UPDATE SET computed_at = EXCLUDED.computed_at, snapshot_version = EXCLUDED.snapshot_version, data = EXCLUDED.data`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (owner_entity_id, window_days, computed_at, snapshot_version, data) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ss *SnapshotStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// GetStatus returns status information about the snapshot store.
func (ss *SnapshotStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}

	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ss.tableName, ss.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*), COUNT(DISTINCT owner_entity_id) FROM %s", quotedTableName)
	if err := ss.db.QueryRow(countQuery).Scan(&status.TotalEntries, &status.TotalEntities); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	var newestTs, oldestTs int64
	rangeQuery := fmt.Sprintf("SELECT MAX(computed_at), MIN(computed_at) FROM %s", quotedTableName)
	if err := ss.db.QueryRow(rangeQuery).Scan(&newestTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get computed_at range: %w", err)
	}
	status.NewestComputedAt = time.Unix(newestTs, 0).UTC()
	status.OldestComputedAt = time.Unix(oldestTs, 0).UTC()

	status.TableSizeBytes = ss.estimateTableSize(status.TotalEntries)
	return status, nil
}

// estimateTableSize asks the backend for the table size and falls back to a
// rough per-row estimate when it cannot.
func (ss *SnapshotStoreImpl) estimateTableSize(entries int) int64 {
	fallback := int64(entries) * 1000
	var size int64

	switch ss.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := ss.db.QueryRow(sizeQuery).Scan(&size); err != nil {
			return 0
		}
		return size

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ss.connStr)
		if err != nil || cfg.DBName == "" {
			return fallback
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := ss.db.QueryRow(sizeQuery, cfg.DBName, ss.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	case schema.PostgreSQLBackend:
		if err := ss.db.QueryRow("SELECT pg_total_relation_size($1)", ss.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	default:
		return fallback
	}
}
