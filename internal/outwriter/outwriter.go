// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/parquet"
	"github.com/LakGar/Coco-sub001/schema"
)

// PrintSnapshot outputs a snapshot, dispatching based on the output format configured.
func PrintSnapshot(snap schema.EnrichedSnapshot, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.ParquetOut:
		if err := writeParquetSnapshot(snap, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteSnapshot(w, snap, cfg, duration)
		})
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteSnapshot(w, snap, cfg, duration)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteSnapshot(w, snap, cfg, duration)
		})
	}
}

// WriteSnapshot writes a snapshot to w as text, JSON or CSV. Parquet needs a
// file path and is only available through PrintSnapshot.
func WriteSnapshot(w io.Writer, snap schema.EnrichedSnapshot, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, snap); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVSnapshot(w, snap, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output requires an output file")
	default:
		if err := writeSnapshotTables(w, snap, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// highlightsPath derives the highlights file that accompanies a series file.
func highlightsPath(seriesPath string) string {
	ext := filepath.Ext(seriesPath)
	return strings.TrimSuffix(seriesPath, ext) + "_highlights" + ext
}

// writeParquetSnapshot writes the series to outputFile and the highlights next to it.
func writeParquetSnapshot(snap schema.EnrichedSnapshot, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("parquet output requires an output file")
	}
	if err := parquet.WriteSeriesParquet(parquet.SeriesRowsFrom(snap), outputFile); err != nil {
		return err
	}
	highlightsFile := highlightsPath(outputFile)
	if err := parquet.WriteHighlightsParquet(parquet.HighlightRowsFrom(snap), highlightsFile); err != nil {
		return err
	}
	contract.Logger().Info("snapshot written", "path", outputFile, "highlights", highlightsFile)
	return nil
}
