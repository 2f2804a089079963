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
		{"Sample preparation approach", 10},
		{"", 0},
		{"abc", 4},
		{"Σ mass·hcodes²", 5},
		{"x", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.width)
	}

	f.Fuzz(func(t *testing.T, text string, width int) {
		out := TruncateText(text, width)
		if width > 3 && utf8.RuneCountInString(out) > width && utf8.ValidString(text) {
			t.Fatalf("TruncateText(%q, %d) = %q exceeds width", text, width, out)
		}
	})
}

// FuzzParseBoolString checks that parsing never panics.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "1", "", "ÿ"} {
		f.Add(seed)
	}
	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}
