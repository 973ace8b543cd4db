package iocache

import (
	"fmt"
	"io"

	"github.com/LakGar/Coco-sub001/schema"
)

// PrintStoreStatus prints snapshot store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Snapshot Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Snapshots: %d\n", status.TotalEntries)
	_, _ = fmt.Fprintf(w, "Total Entities: %d\n", status.TotalEntities)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Newest Snapshot: %s\n", status.NewestComputedAt.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Snapshot: %s\n", status.OldestComputedAt.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}
