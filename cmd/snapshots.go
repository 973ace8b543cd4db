package cmd

import (
	"fmt"
	"os"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/iocache"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for snapshot store operations.
// This is used by commands that need store access without the full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseDatabaseBackend(viper.GetString("snapshot-backend"))
	if err != nil {
		return fmt.Errorf("invalid snapshot backend: %w", err)
	}
	connStr := viper.GetString("snapshot-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// The event source is not needed to inspect or clear snapshots
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// snapshotsCmd focused on snapshot store management.
//
// Note: these subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by the snapshot command.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage stored snapshots",
	Long: `Manage the store that keeps the latest snapshot per care team and window.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (always recompute)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored snapshots
  migrate - Apply or roll back snapshot store migrations

Examples:
  # Check store status
  coco snapshots status

  # Drop every stored snapshot
  coco snapshots clear`,
}

// snapshotsClearCmd clears the snapshot store.
var snapshotsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored snapshots",
	Long: `Delete every stored snapshot from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Rolls the snapshot migrations back to version 0

Examples:
  # Clear MySQL store (set connection string via env variable)
  COCO_SNAPSHOT_BACKEND=mysql COCO_SNAPSHOT_DB_CONNECT="..." coco snapshots clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release our own handle before the file or tables go away
		iocache.CloseStores()
		if err := iocache.ClearSnapshots(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshots", err)
		}
		fmt.Println("Snapshots cleared successfully.")
	},
}

// snapshotsStatusCmd shows snapshot store status.
var snapshotsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot store statistics and connection details",
	Long: `Show the backend, connection status, number of stored snapshots,
the newest and oldest computation times and the approximate table size.`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

// snapshotsMigrateCmd runs the snapshot store migrations.
var snapshotsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the snapshot store schema",
	Long: `Apply the snapshot store migrations up to --target-version.

-1 migrates to the latest version and 0 rolls every migration back.

Examples:
  # Migrate to the latest schema
  coco snapshots migrate

  # Roll back to an empty database
  coco snapshots migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion, _ := cmd.Flags().GetInt("target-version")
		backend, err := contract.ParseDatabaseBackend(viper.GetString("snapshot-backend"))
		if err != nil {
			contract.LogFatal("Invalid snapshot backend", err)
		}
		if backend == schema.NoneBackend {
			fmt.Println("Snapshot backend is none; nothing to migrate.")
			return
		}
		result, err := iocache.MigrateSnapshots(backend, viper.GetString("snapshot-db-connect"), targetVersion)
		if err != nil {
			contract.LogFatal("Failed to migrate snapshot store", err)
		}
		fmt.Println(result.String())
	},
}
