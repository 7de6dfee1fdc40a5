package cmd

import (
	"fmt"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/internal/history"
	"github.com/archstat/archstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.HistoryBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for server-based backends
	if err := contract.ValidateHistoryConnection(backend, connStr); err != nil {
		return err
	}

	if err := history.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyCmd focused on report history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by evaluation commands. This avoids repository
// validation for operations that never load a model.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded report history",
	Long: `Manage the report history that archstat records on every evaluation.

Each report or compare run stores its metric values in the configured backend,
so you can track how model health evolves over time.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics and connection info
  clear   - Remove all recorded runs
  export  - Export recorded runs to Parquet files
  migrate - Apply or roll back history schema migrations

Examples:
  # Check history status
  archstat history status

  # Export everything for offline analysis
  archstat history export --output-file archstat-history`,
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the recorded report history.

Displays:
- Backend type
- Total number of recorded runs
- Row counts per table

Examples:
  # Check history status
  archstat history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.Manager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded report history",
	Long: `Delete all recorded runs and metric values from the configured backend.

Use this when:
- Repository history was rewritten (rebase, force push)
- The model was restructured and old runs are no longer comparable
- Testing with a clean slate

Examples:
  # Clear SQLite history (default)
  archstat history clear

  # Clear MySQL history (set connection string via env variable)
  ARCHSTAT_HISTORY_BACKEND=mysql ARCHSTAT_HISTORY_DB_CONNECT="..." archstat history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.Manager.GetReportStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded report history to Parquet files",
	Long: `Export all recorded runs and metric values to Parquet files.

Two files are written next to each other:
  <output-file>.runs.parquet          - one row per evaluation run
  <output-file>.metric_values.parquet - one row per metric value

Use these with DuckDB, Polars or pandas for longitudinal analysis.

Examples:
  # Export everything
  archstat history export --output-file archstat-history

  # Export from a shared PostgreSQL backend
  ARCHSTAT_HISTORY_BACKEND=postgresql archstat history export --output-file team-history`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd applies schema migrations to the history database.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back history schema migrations",
	Long: `Apply versioned schema migrations to the history database.

By default the database is migrated to the latest version. Pass an explicit
--target-version to move to a specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest schema
  archstat history migrate

  # Roll back to the initial state
  archstat history migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations manage the schema themselves, so skip store
		// initialization and only load backend settings.
		if err := loadConfigFile(); err != nil {
			return err
		}
		backend := schema.HistoryBackend(viper.GetString("history-backend"))
		connStr := viper.GetString("history-db-connect")
		if err := contract.ValidateHistoryConnection(backend, connStr); err != nil {
			return err
		}
		cfg.HistoryBackend = backend
		cfg.HistoryDBConnect = connStr
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate history database", err)
		}
	},
}
