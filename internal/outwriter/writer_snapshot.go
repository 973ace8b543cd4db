package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/LakGar/Coco-sub001/schema"
)

// writeCSVSnapshot writes the series of a snapshot in long format, one row per
// (source, day, metric).
func writeCSVSnapshot(w io.Writer, snap schema.EnrichedSnapshot, fmtFloat func(float64) string) error {
	header := []string{"entity_id", "window_days", "source", "date", "metric", "value"}
	windowDays := strconv.Itoa(snap.WindowDays)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range schema.FlattenSeries(snap.Series) {
			row := []string{
				snap.EntityID,
				windowDays,
				v.Source,
				v.Date.String(),
				v.Metric,
				fmtFloat(v.Value),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
