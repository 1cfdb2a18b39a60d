// Package cmd defines the command-line interface for heattrap.
package cmd

import (
	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(figuresCmd)
	rootCmd.AddCommand(spectraCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the archive subcommands to the parent archive command
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.AddCommand(archiveRunsCmd)
	archiveCmd.AddCommand(archiveClearCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("figure", "f", "", "Name of the figure definition to build")
	rootCmd.PersistentFlags().String("preroll", "2m", "Lead-in retained before each period start (e.g. 2m, 90s)")
	rootCmd.PersistentFlags().Float64("min-seconds", 0, "Window lower bound on the relative-seconds axis")
	rootCmd.PersistentFlags().Float64("max-seconds", 0, "Window upper bound on the relative-seconds axis")
	rootCmd.PersistentFlags().String("reference-column", "", "Column watched for the alignment crossing")
	rootCmd.PersistentFlags().Float64("target-temp", 0, "Alignment target: first sample at or below this value")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("out-dir", "", "Directory for per-figure dataset files")
	rootCmd.PersistentFlags().Int("precision", schema.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("archive-backend", string(schema.NoneBackend), "Run archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of spectraCmd to Viper
	spectraCmd.Flags().String("spectra-dir", "data", "Directory for generated spectra datasets")
	spectraCmd.Flags().Float64("temperature", 65.0, "Graybody source temperature in Celsius")
	spectraCmd.Flags().Float64("emissivity", 0.9, "Graybody source emissivity")
	if err := viper.BindPFlags(spectraCmd.Flags()); err != nil {
		contract.LogFatal("Error binding spectra flags", err)
	}

	// Bind all flags of archiveMigrateCmd to Viper
	archiveMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(archiveMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive migrate flags", err)
	}
}
