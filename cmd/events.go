package cmd

import (
	"fmt"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// eventsCmd groups the care database helpers.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage the care events database",
	Long: `Prepare the database snapshots are computed from.

Subcommands:
  migrate - Create or roll back the care events tables
  seed    - Write demo history for one care team`,
}

// eventsMigrateCmd runs the care events migrations.
var eventsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the care events schema",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion, _ := cmd.Flags().GetInt("target-version")
		backend, err := contract.ParseDatabaseBackend(viper.GetString("events-backend"))
		if err != nil {
			contract.LogFatal("Invalid events backend", err)
		}
		result, err := iocache.MigrateEvents(backend, viper.GetString("events-db-connect"), targetVersion)
		if err != nil {
			contract.LogFatal("Failed to migrate care events database", err)
		}
		fmt.Println(result.String())
	},
}

// eventsSeedCmd writes demo history.
var eventsSeedCmd = &cobra.Command{
	Use:   "seed <entity-id>",
	Short: "Write demo care history for a team",
	Long: `Write --days of tasks, medications, moods, routines, burden assessments
and notes for one care team, ending on --now.

Examples:
  coco events migrate
  coco events seed team-42 --days 60
  coco snapshot team-42`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	Run: func(cmd *cobra.Command, args []string) {
		days, _ := cmd.Flags().GetInt("days")
		nowStr, _ := cmd.Flags().GetString("now")
		backend, err := contract.ParseDatabaseBackend(viper.GetString("events-backend"))
		if err != nil {
			contract.LogFatal("Invalid events backend", err)
		}
		connStr := viper.GetString("events-db-connect")
		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			contract.LogFatal("Invalid events connection", err)
		}

		now := time.Now().UTC()
		if nowStr != "" {
			if now, err = time.Parse(contract.DateTimeFormat, nowStr); err != nil {
				contract.LogFatal("Invalid --now value", err)
			}
		}

		if _, err := iocache.MigrateEvents(backend, connStr, -1); err != nil {
			contract.LogFatal("Failed to migrate care events database", err)
		}
		es, err := iocache.NewSQLEventSource(backend, connStr)
		if err != nil {
			contract.LogFatal("Failed to open care events database", err)
		}
		defer func() { _ = es.Close() }()

		summary, err := iocache.SeedEvents(rootCtx, es, args[0], now.UTC(), days)
		if err != nil {
			contract.LogFatal("Failed to seed care events", err)
		}
		fmt.Printf("Seeded %s: %d tasks, %d moods, %d routines, %d routine instances, %d burden assessments, %d notes\n",
			args[0], summary.Tasks, summary.Moods, summary.Routines, summary.Instances, summary.Burden, summary.Notes)
	},
}
