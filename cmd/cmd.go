// Package cmd defines the command-line interface for coco.
package cmd

import (
	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to their parents
	snapshotsCmd.AddCommand(snapshotsStatusCmd)
	snapshotsCmd.AddCommand(snapshotsClearCmd)
	snapshotsCmd.AddCommand(snapshotsMigrateCmd)
	eventsCmd.AddCommand(eventsMigrateCmd)
	eventsCmd.AddCommand(eventsSeedCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns (0-2)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.SQLiteBackend), "Snapshot store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for the snapshot store (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("events-backend", string(schema.SQLiteBackend), "Care events backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("events-db-connect", "", "Database connection string for the care events database")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of snapshotCmd to Viper
	snapshotCmd.Flags().Int("window", contract.DefaultWindowDays, "Window size in days: 7 or 30")
	snapshotCmd.Flags().String("now", "", "Compute as of this RFC3339 instant instead of the wall clock")
	snapshotCmd.Flags().Bool("force", false, "Recompute even when the stored snapshot is fresh")
	snapshotCmd.Flags().Bool("detail", false, "Print the daily series and highlight links")
	if err := viper.BindPFlags(snapshotCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot flags", err)
	}

	// Migrate and seed flags share names across commands, so they are read
	// from the command itself rather than bound to Viper
	snapshotsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	eventsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	eventsSeedCmd.Flags().Int("days", 60, "Number of days of demo history to write")
	eventsSeedCmd.Flags().String("now", "", "Last day of the seeded history as RFC3339 (default: now)")

	// Bind all flags of mcpCmd to Viper
	mcpCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g., :9090)")
	if err := viper.BindPFlags(mcpCmd.Flags()); err != nil {
		contract.LogFatal("Error binding mcp flags", err)
	}
}
