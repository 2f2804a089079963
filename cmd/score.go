package cmd

import (
	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores a whole project.
var scoreCmd = &cobra.Command{
	Use:   "score [project-file]",
	Short: "Score a project and report dimension and overall greenness scores",
	Long: `Load a project from a JSON file or the project store, score every answered question,
and roll the scores up by weight.

Each question scores on its native scale (0-100, or 0-10 for checkbox questions).
Dimension scores are Σ raw·weight/100 over their questions, and the overall score is
Σ dimension·weight/100 over the selected dimensions. The weight gate result is shown
below the report; a failed gate is a warning here and an error in 'check'.

Examples:
  # Score a project file with per-question detail
  gacscore score method.json --detail

  # Score the stored project "lab-a" on two dimensions only
  gacscore score --project lab-a --selected sample-prep,energy

  # Record the run for trend tracking and export as parquet
  gacscore score method.json --record --output parquet --output-file report.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Scoring failed", err)
		}
	},
}
