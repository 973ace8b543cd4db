package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationSet names a group of embedded migrations with its own version table.
type migrationSet string

const (
	snapshotMigrations migrationSet = "snapshots"
	eventMigrations    migrationSet = "events"
)

func (s migrationSet) versionTable() string {
	return "coco_" + string(s) + "_migrations"
}

// MigrationResult describes the outcome of a migration run.
type MigrationResult struct {
	From    uint
	To      uint
	Changed bool
}

// String renders the result the way the CLI reports it.
func (r MigrationResult) String() string {
	if !r.Changed {
		return fmt.Sprintf("No migration needed. Database is already at version %d", r.To)
	}
	return fmt.Sprintf("Successfully migrated from version %d to version %d", r.From, r.To)
}

// MigrateSnapshots runs the snapshot store migrations.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func MigrateSnapshots(backend schema.DatabaseBackend, connStr string, targetVersion int) (MigrationResult, error) {
	return migrateStandalone(backend, connStr, contract.GetSnapshotDBFilePath(), snapshotMigrations, targetVersion)
}

// MigrateEvents runs the care event table migrations. Hosts that own their
// schema never need this; it exists for local SQLite databases and demos.
func MigrateEvents(backend schema.DatabaseBackend, connStr string, targetVersion int) (MigrationResult, error) {
	return migrateStandalone(backend, connStr, contract.GetEventsDBFilePath(), eventMigrations, targetVersion)
}

func migrateStandalone(backend schema.DatabaseBackend, connStr, defaultPath string, set migrationSet, targetVersion int) (MigrationResult, error) {
	if backend == schema.NoneBackend {
		return MigrationResult{}, fmt.Errorf("migrations are not supported for NoneBackend")
	}
	db, err := openDatabase(backend, connStr, defaultPath)
	if err != nil {
		return MigrationResult{}, err
	}
	defer func() { _ = db.Close() }()
	return runMigrations(db, backend, set, targetVersion)
}

// runMigrations applies the embedded migration set on an open connection.
// The migrate instance is never closed here because that would close db.
func runMigrations(db *sql.DB, backend schema.DatabaseBackend, set migrationSet, targetVersion int) (MigrationResult, error) {
	var result MigrationResult

	driver, dir, err := migrationDriver(db, backend, set)
	if err != nil {
		return result, err
	}

	// Get the migrations subdirectory
	migrationFS, err := fs.Sub(migrationsFS, "migrations/"+string(set)+"/"+dir)
	if err != nil {
		return result, fmt.Errorf("failed to access migrations directory: %w", err)
	}

	// Create source driver from embedded FS
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return result, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(backend), driver)
	if err != nil {
		return result, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return result, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return result, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}
	result.From = currentVersion

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return result, fmt.Errorf("failed to migrate %s to version %d: %w", set, targetVersion, err)
	}
	result.Changed = err == nil

	newVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return result, fmt.Errorf("failed to read migration version: %w", err)
	}
	result.To = newVersion
	return result, nil
}

// migrationDriver returns the migrate database driver and the migrations
// subdirectory for the backend.
func migrationDriver(db *sql.DB, backend schema.DatabaseBackend, set migrationSet) (database.Driver, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{MigrationsTable: set.versionTable()})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create SQLite migrate driver: %w", err)
		}
		return driver, "sqlite", nil

	case schema.MySQLBackend:
		driver, err := migratemysql.WithInstance(db, &migratemysql.Config{MigrationsTable: set.versionTable()})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create MySQL migrate driver: %w", err)
		}
		return driver, "mysql", nil

	case schema.PostgreSQLBackend:
		driver, err := migratepgx.WithInstance(db, &migratepgx.Config{MigrationsTable: set.versionTable()})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create PostgreSQL migrate driver: %w", err)
		}
		return driver, "postgres", nil

	default:
		return nil, "", fmt.Errorf("%w: %s", schema.ErrUnsupportedBackend, backend)
	}
}
