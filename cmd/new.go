package cmd

import (
	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/spf13/cobra"
)

// newCmd clears a project so the assessment can start over.
var newCmd = &cobra.Command{
	Use:   "new [project-file]",
	Short: "Start a project over with no answers and default weights",
	Long: `Clear every answer, custom weight and score of a project and write the empty
project back to its file or project store entry. The project name is kept.
--selected and configured weights apply to the new project.

WARNING: This action cannot be undone. Consider exporting the project first.

Examples:
  # Start the stored project "lab-a" over
  gacscore new --project lab-a

  # Create or reset a project file for two dimensions
  gacscore new method.json --selected sample-prep,energy`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteNew(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Failed to start a new project", err)
		}
	},
}
