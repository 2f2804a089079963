// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/gacscore/gacscore/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTitleWidth calculates the maximum width for question titles in table output
// based on terminal width and table configuration.
func GetMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 45 // Dimension + Question + Type + Raw + Weight + Contrib

	// Reserve space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
