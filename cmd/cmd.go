// Package cmd defines the command-line interface for gacscore.
package cmd

import (
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/internal/iocache"
	"github.com/gacscore/gacscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(dimensionsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-question tables and scoring rules")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project name in the project store")
	rootCmd.PersistentFlags().String("selected", "", "Comma-separated dimension ids to include in the overall score")
	rootCmd.PersistentFlags().String("project-backend", string(schema.SQLiteBackend), "Project backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("project-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "History tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for history tracking (must differ from project-db-connect)")
	rootCmd.PersistentFlags().String("autosave-delay", contract.DefaultAutosaveDelay.String(), "Quiescence window before edits are written to the project store")
	rootCmd.PersistentFlags().Float64("tolerance", schema.WeightTolerance, "Allowed deviation of weight sums from 100")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("record", false, "Record the scored run in the history store")
	scoreCmd.Flags().Bool("save", false, "Write the project back to the project store")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Flags of weightsCmd are read directly by the command
	weightsCmd.Flags().Bool("normalize", false, "Reset weights to the uniform split summing to 100")
	weightsCmd.Flags().String("dimensions", "", "Comma-separated dimensions whose question weights are normalized (default: all, including dimension weights)")
	weightsCmd.Flags().Bool("write", false, "Persist the resulting weights to the project")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}

	SetStoreManager(iocache.Manager)
}
