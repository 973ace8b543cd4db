package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LakGar/Coco-sub001/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold) // CriticalColor represents standard danger.
	WarnColor     = color.New(color.FgYellow)          // WarnColor represents standard caution, not bold.
	InfoColor     = color.New(color.FgCyan)            // InfoColor represents informational signal.
	SteadyColor   = color.New(color.FgGreen)           // SteadyColor marks a snapshot with nothing to act on.
)

// GetPlainSeverity returns the upper-case label used in tables and CSV.
func GetPlainSeverity(sev schema.Severity) string {
	return strings.ToUpper(string(sev))
}

// GetColorSeverity returns a colored severity label for console output (table).
func GetColorSeverity(sev schema.Severity) string {
	text := GetPlainSeverity(sev)
	switch sev {
	case schema.SeverityCritical:
		return CriticalColor.Sprint(text)
	case schema.SeverityWarn:
		return WarnColor.Sprint(text)
	default:
		return InfoColor.Sprint(text)
	}
}

// GetColorLabel colors the overall snapshot label produced by schema.GetPlainLabel.
func GetColorLabel(label string) string {
	switch label {
	case "Critical":
		return CriticalColor.Sprint(label)
	case "Attention":
		return WarnColor.Sprint(label)
	default:
		return SteadyColor.Sprint(label)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".coco_snapshots.db"
	}
	return filepath.Join(homeDir, ".coco_snapshots.db")
}

// GetEventsDBFilePath returns the path to the SQLite DB file holding care events.
func GetEventsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".coco.db"
	}
	return filepath.Join(homeDir, ".coco.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." and at least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
