package cmd

import (
	"strings"

	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/spf13/cobra"
)

// weightsCmd shows and normalizes weights.
var weightsCmd = &cobra.Command{
	Use:   "weights [project-file]",
	Short: "Show, normalize and persist dimension and question weights",
	Long: `Display the dimension weights and the question weights of every dimension.

With --normalize, weights are reset to the uniform split: 100/n for the first n-1
entries and the remainder for the last, so they sum to exactly 100. Without
--dimensions this applies to the selected dimension weights and to the question
weights of every dimension. With --write the result is saved back to the project.

Examples:
  gacscore weights method.json
  gacscore weights method.json --normalize --write
  gacscore weights --project lab-a --normalize --dimensions energy,economy --write`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		normalize, _ := cmd.Flags().GetBool("normalize")
		write, _ := cmd.Flags().GetBool("write")
		dims, _ := cmd.Flags().GetString("dimensions")

		opts := core.WeightsOptions{Normalize: normalize, Write: write}
		for d := range strings.SplitSeq(dims, ",") {
			if d = strings.TrimSpace(d); d != "" {
				opts.Dimensions = append(opts.Dimensions, d)
			}
		}
		if err := core.ExecuteWeights(rootCtx, cfg, storeManager, opts); err != nil {
			contract.LogFatal("Weights command failed", err)
		}
	},
}
