//go:build basic

// Package integration contains end-to-end tests for the coco binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cocoparquet "github.com/LakGar/Coco-sub001/internal/parquet"
)

// sqliteEnv points both stores at files inside dir.
func sqliteEnv(dir string) []string {
	return []string{
		"COCO_SNAPSHOT_BACKEND=sqlite",
		"COCO_SNAPSHOT_DB_CONNECT=" + filepath.Join(dir, "snapshots.db"),
		"COCO_EVENTS_BACKEND=sqlite",
		"COCO_EVENTS_DB_CONNECT=" + filepath.Join(dir, "events.db"),
	}
}

// TestCocoWithSQLite runs the full CLI flow on local SQLite files.
func TestCocoWithSQLite(t *testing.T) {
	exerciseBackend(t, sqliteEnv(t.TempDir()))
}

// TestCocoUnknownEntityIsQuiet checks that an entity with no history yields an empty, valid snapshot.
func TestCocoUnknownEntityIsQuiet(t *testing.T) {
	env := sqliteEnv(t.TempDir())
	_, err := runCoco(t, env, "events", "migrate")
	require.NoError(t, err)

	snap := runSnapshotJSON(t, env, "nobody")
	assert.Empty(t, snap.Highlights)
	assert.NotNil(t, snap.Highlights)
	assert.Zero(t, snap.Totals.TasksCompleted)
	assert.Nil(t, snap.Totals.MedicationAdherencePercent)
	assert.Equal(t, "Steady", snap.Label)
}

// TestCocoTextAndCSVOutput checks the human and tabular renderings.
func TestCocoTextAndCSVOutput(t *testing.T) {
	env := append(sqliteEnv(t.TempDir()), "COCO_COLOR=no")
	_, err := runCoco(t, env, "events", "seed", "team-7", "--days", "40", "--now", fixedNow)
	require.NoError(t, err)

	text, err := runCoco(t, env, "snapshot", "team-7", "--now", fixedNow, "--detail")
	require.NoError(t, err)
	assert.Contains(t, text, "team-7")
	assert.Contains(t, text, "Snapshot computed at")

	csvOut, err := runCoco(t, env, "snapshot", "team-7", "--now", fixedNow, "--output", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "entity_id,window_days,source,date,metric,value", lines[0])
	assert.Greater(t, len(lines), 1)
}

// TestCocoParquetOutput checks that parquet output writes the series and highlights files.
func TestCocoParquetOutput(t *testing.T) {
	dir := t.TempDir()
	env := sqliteEnv(dir)
	_, err := runCoco(t, env, "events", "seed", "team-9", "--days", "20", "--now", fixedNow)
	require.NoError(t, err)

	seriesFile := filepath.Join(dir, "series.parquet")
	_, err = runCoco(t, env, "snapshot", "team-9", "--now", fixedNow, "--output", "parquet", "--output-file", seriesFile)
	require.NoError(t, err)

	rows, err := parquet.ReadFile[cocoparquet.SeriesRow](seriesFile)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "team-9", rows[0].EntityID)

	_, err = os.Stat(filepath.Join(dir, "series_highlights.parquet"))
	require.NoError(t, err)
}

// TestCocoRejectsBadWindow checks argument validation.
func TestCocoRejectsBadWindow(t *testing.T) {
	env := sqliteEnv(t.TempDir())
	_, err := runCoco(t, env, "snapshot", "team-1", "--window", "14")
	require.Error(t, err)
}
