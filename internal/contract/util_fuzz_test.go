package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateText fuzzes TruncateText with random text and widths.
func FuzzTruncateText(f *testing.F) {
	seeds := []struct {
		text  string
		width int
	}{
		{"Overdue tasks rising", 10},
		{"", 0},
		{"Medication adherence low", 4},
		{"héllo", 3},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.width)
	}

	f.Fuzz(func(t *testing.T, text string, width int) {
		got := TruncateText(text, width)
		if width > 3 && utf8.RuneCountInString(text) > width {
			if n := len([]rune(got)); n != width {
				t.Fatalf("TruncateText(%q, %d) has %d runes", text, width, n)
			}
			return
		}
		if got != text {
			t.Fatalf("TruncateText(%q, %d) = %q, want unchanged", text, width, got)
		}
	})
}
