package cmd

import (
	"github.com/LakGar/Coco-sub001/core"
	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/spf13/cobra"
)

// snapshotCmd computes or serves the snapshot for one care team.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot <entity-id>",
	Short: "Summarize one care team's recent window",
	Long: `Summarize a care team's tasks, medications, moods, routines and caregiver burden.

The current window ends today (UTC) and is compared against the window of the
same length right before it. Highlights call out what changed enough to act on.

A stored snapshot younger than 12 hours is served as-is. Use --force to recompute.

Examples:
  # Last 7 days for a team
  coco snapshot team-42

  # Last 30 days with the daily series
  coco snapshot team-42 --window 30 --detail

  # Reproduce a snapshot as of a fixed instant, as JSON
  coco snapshot team-42 --now 2026-03-01T09:00:00Z --output json --force`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshot(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot compute snapshot", err)
		}
	},
}
