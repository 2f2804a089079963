package cmd

import (
	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD weight validation.
var checkCmd = &cobra.Command{
	Use:   "check [project-file]",
	Short: "Validate that weights sum to 100 (fails build on violations)",
	Long: `Run the weight validation gate on a project.

The gate passes when the weights of the selected dimensions sum to 100 and the
question weights of every selected dimension sum to 100, each within --tolerance.
It exits with a non-zero code when the gate fails, so it can guard scoring in CI.

Examples:
  # Check a project file
  gacscore check method.json

  # Check a subset of dimensions with a looser tolerance
  gacscore check --project lab-a --selected sample-prep,energy --tolerance 0.5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Weight check failed", err)
		}
	},
}
