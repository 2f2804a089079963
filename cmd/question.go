package cmd

import (
	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/spf13/cobra"
)

// questionCmd scores a single answer.
var questionCmd = &cobra.Command{
	Use:   "question <dimension> <question> [answer]",
	Short: "Score one answer against a catalog question",
	Long: `Score a single answer without loading a project.

Answers are given as text:
- input questions take a number, e.g. 0.5
- select questions take an option value, e.g. in-situ
- checkbox questions take comma separated values or a JSON array; no value means nothing selected
- multi-input questions take a JSON object, or a JSON array of rows for repeating questions

Examples:
  gacscore question sample-prep q1 0.5
  gacscore question energy q4 heating,cooling
  gacscore question sample-prep q3 '{"Y": 0.92, "A": 0.03}'`,
	Args:    cobra.RangeArgs(2, 3),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// Positional args are not a project path here
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		raw := ""
		if len(args) == 3 {
			raw = args[2]
		}
		if err := core.ExecuteQuestion(rootCtx, cfg, args[0], args[1], raw); err != nil {
			contract.LogFatal("Question scoring failed", err)
		}
	},
}
