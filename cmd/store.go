package cmd

import (
	"fmt"
	"strings"

	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/internal/iocache"
	"github.com/gacscore/gacscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for project store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := backendFromViper("project-backend", schema.SQLiteBackend)
	connStr := viper.GetString("project-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize stores with the loaded config (no history tracking for store commands)
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize project store: %w", err)
	}

	cfg.ProjectBackend = backend
	cfg.ProjectDBConnect = connStr
	cfg.ProjectName = strings.TrimSpace(viper.GetString("project"))
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on project store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage saved projects in the project store",
	Long: `Manage the project store that holds saved assessments.

Each project is stored as one consolidated JSON document plus one document per
dimension, keyed by project name. Edits are written after a quiet period so that
rapid changes are consolidated into a single write.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show project store statistics
  clear  - Remove all saved projects
  import - Load a project file into the store
  export - Write a stored project to a file`,
}

// storeStatusCmd shows project store status.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display project store statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetProjectStore()
		if store == nil {
			contract.LogFatal("Failed to get store status", fmt.Errorf("project store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintProjectStatus(status)
	},
}

// storeClearCmd clears the project store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved projects",
	Long: `Delete every project stored in the project store.

WARNING: This action cannot be undone. Consider exporting projects first.

Examples:
  gacscore store export --project lab-a lab-a.json
  gacscore store clear`,
	Args:    cobra.NoArgs,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearProjects(cfg.ProjectBackend, contract.GetProjectDBFilePath(), cfg.ProjectDBConnect); err != nil {
			contract.LogFatal("Failed to clear project store", err)
		}
		fmt.Println("Project store cleared successfully.")
	},
}

// storeImportCmd loads a project file into the store.
var storeImportCmd = &cobra.Command{
	Use:   "import <project-file>",
	Short: "Load a project file into the project store",
	Long: `Read a project JSON file and save it under its name, or under --project when given.

Examples:
  gacscore store import method.json
  gacscore store import method.json --project lab-a`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteProjectImport(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Failed to import project", err)
		}
	},
}

// storeExportCmd writes a stored project to a file.
var storeExportCmd = &cobra.Command{
	Use:   "export <project-file>",
	Short: "Write a stored project to a JSON file",
	Long: `Load the project named by --project (default "default") from the store and write it as JSON.

Examples:
  gacscore store export --project lab-a lab-a.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteProjectExport(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Failed to export project", err)
		}
	},
}
