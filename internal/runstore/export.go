package runstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/internal/parquet"
	"github.com/thermoflux/heattrap/schema"
)

// ExecuteArchiveExport exports the run archive to Parquet files.
func ExecuteArchiveExport(ctx context.Context, store contract.RunStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no archived runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total figure runs: %d\n", status.TotalRuns)
	fmt.Printf("Total period records: %d\n", status.TableSizes[periodResultsTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve figure runs: %w", err)
	}

	// Retrieve all period summaries
	archived, err := store.GetAllPeriodReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve period results: %w", err)
	}

	runIDs := make([]int64, len(archived))
	reports := make([]schema.PeriodReport, len(archived))
	for i, ap := range archived {
		runIDs[i] = ap.RunID
		reports[i] = ap.Report
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetPeriods := parquet.ConvertPeriodReports(runIDs, reports)

	// Write figure runs to Parquet
	runsFile := outputFile + ".figure_runs.parquet"
	if err := parquet.WriteFigureRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write figure runs: %w", err)
	}
	fmt.Printf("Exported %d figure runs to: %s\n", len(parquetRuns), runsFile)

	// Write period results to Parquet
	periodsFile := outputFile + ".period_results.parquet"
	if err := parquet.WritePeriodResultsParquet(parquetPeriods, periodsFile); err != nil {
		return fmt.Errorf("failed to write period results: %w", err)
	}
	fmt.Printf("Exported %d period records to: %s\n", len(parquetPeriods), periodsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
