package cmd

import (
	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/spf13/cobra"
)

// dimensionsCmd lists the catalog.
var dimensionsCmd = &cobra.Command{
	Use:   "dimensions",
	Short: "List dimensions, modules and questions of the catalog",
	Long: `Show every catalog question with its dimension, default dimension weight and module.
Use --detail to also print how each question is scored.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDimensions(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to list dimensions", err)
		}
	},
}
