package outwriter

import (
	"os"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"golang.org/x/term"
)

// getMaxDetailWidth calculates the maximum width of the highlight detail column
// based on terminal width and table configuration.
func getMaxDetailWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Severity + Title + Anchor columns with borders/padding
	baseWidth := 50
	if cfg.Detail {
		baseWidth += 20 // Link column
	}

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 90 {
		return 90
	}
	return available
}
