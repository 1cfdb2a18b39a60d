package cmd

import (
	"fmt"

	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/internal/outwriter"
	"github.com/thermoflux/heattrap/internal/runstore"
	"github.com/thermoflux/heattrap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// archiveSetup loads minimal configuration needed for archive operations.
// This is used by commands that need archive access without full shared setup.
func archiveSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateArchiveConnect(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by the runs and export commands)
	outputFile := viper.GetString("output-file")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")
	cfg.UseColors = contract.ParseYesNo(viper.GetString("color"))

	// Initialize the store with the loaded config
	store, err := runstore.New(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	runStore = store

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// archiveSetupWrapper wraps archiveSetup to provide PreRunE for archive commands.
func archiveSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveSetup()
}

// archiveMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func archiveMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateArchiveConnect(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.ArchiveDBFilePath()
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr

	return nil
}

// archiveMigrateSetupWrapper wraps archiveMigrateSetup to provide PreRunE for migrate command.
func archiveMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveMigrateSetup()
}

// archiveCmd focused on run archive management.
//
// Note: Archive subcommands use minimal initialization (archiveSetup) instead
// of the full sharedSetup used by figure commands. This avoids figure config
// processing for simple archive operations.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage historical figure run tracking and exports",
	Long: `Manage the run archive that tracks every figure build.

When enabled, heattrap records every figure build, storing:
- Run metadata (timestamp, source file, alignment parameters)
- Per-period results (rows retained, axis bounds, shift, status)

This enables comparing builds over time and exporting history for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run archive statistics
  runs    - List archived figure runs
  export  - Export data to Parquet for analytics
  clear   - Remove all archived runs
  migrate - Run database schema migrations

Examples:
  # Check archive status
  heattrap archive status

  # Export for analysis in pandas/DuckDB
  heattrap archive export --output-file heattrap-runs.parquet`,
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run archive statistics and connection details",
	Long: `Show detailed information about the figure run archive.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total periods recorded across all runs
- Database table sizes

Examples:
  # Check archive status
  heattrap archive status`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runStore.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		runstore.PrintArchiveStatus(status)
	},
}

// archiveClearCmd clears the archived run data.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived figure run data",
	Long: `Delete all stored figure runs and period results.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting run history after reworking figure definitions
- Database storage is full
- Testing archive features

Examples:
  # Export before clearing
  heattrap archive export --output-file backup.parquet
  heattrap archive clear`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runStore.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear archive data", err)
		}
		fmt.Println("Archive data cleared successfully.")
	},
}

// archiveRunsCmd lists the archived figure runs.
var archiveRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived figure runs",
	Long: `List every archived figure run with its timestamps and period count.

Respects --output and --output-file, so run history can be reviewed as a
table or exported as CSV/JSON.

Examples:
  # Review recent builds
  heattrap archive runs

  # Export the run log
  heattrap archive runs --output csv --output-file runs.csv`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := runStore.GetAllRuns(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to list archived runs", err)
		}
		if err := outwriter.NewOutWriter().WriteArchiveRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to print archived runs", err)
		}
	},
}

// archiveExportCmd exports archived run data to Parquet files.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all archived run data to Parquet format for use with analytics tools.

Exports two datasets:
- Figure runs - metadata about each build
- Period results - per-period axis bounds, shifts and statuses

Requires: --output-file parameter

Examples:
  # Export all data
  heattrap archive export --output-file heattrap-runs.parquet

  # Use with DuckDB for analysis
  heattrap archive export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.figure_runs.parquet') LIMIT 10"`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExecuteArchiveExport(rootCtx, runStore, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export archive data", err)
		}
	},
}

// archiveMigrateCmd runs database migrations for the run archive.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run archive.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  heattrap archive migrate

  # Migrate to specific version
  heattrap archive migrate --target-version 1

  # Rollback to initial state
  heattrap archive migrate --target-version 0`,
	PreRunE: archiveMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
