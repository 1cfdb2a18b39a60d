package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/internal/parquet"
	"github.com/thermoflux/heattrap/schema"
)

// PrintAlignResults outputs the aligner results, dispatching based on the output format configured.
func PrintAlignResults(res *schema.AlignResult, reports []schema.PeriodReport, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForAlign(res, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForAlign(res, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForAlign(res, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printAlignTable(res, reports, cfg, intFmt); err != nil {
			return fmt.Errorf("error writing align table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForAlign handles opening the file and calling the JSON writer.
func printJSONResultsForAlign(res *schema.AlignResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, res)
	}, "Wrote JSON align results")
}

// printCSVResultsForAlign handles opening the file and calling the CSV writer.
// Samples are written in long format, one reading per row.
func printCSVResultsForAlign(res *schema.AlignResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"period", "seconds", "column", "value"}, func(csvWriter *csv.Writer) error {
			return writeCSVRowsForAlign(csvWriter, res, fmtFloat)
		})
	}, "Wrote CSV align results")
}

// writeCSVRowsForAlign writes the long-format sample rows. NaN readings are
// written as empty cells.
func writeCSVRowsForAlign(w *csv.Writer, res *schema.AlignResult, fmtFloat func(float64) string) error {
	for _, name := range res.Order {
		ws, ok := res.Periods[name]
		if !ok {
			continue
		}
		for _, col := range ws.Columns {
			vals := ws.Values[col]
			for i, sec := range ws.Seconds {
				value := ""
				if i < len(vals) && !math.IsNaN(vals[i]) {
					value = fmtFloat(vals[i])
				}
				rec := []string{name, fmtFloat(sec), col, value}
				if err := w.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
	}
	return nil
}

// printParquetResultsForAlign exports the windowed samples to a Parquet file.
func printParquetResultsForAlign(res *schema.AlignResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	samples := parquet.ConvertWindowedSeries(cfg.Figure, res)
	if err := parquet.WriteWindowedSamplesParquet(samples, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %d Parquet samples to %s\n", len(samples), cfg.OutputFile)
	return nil
}

// printAlignTable prints the per-period diagnostics in a six-column table.
func printAlignTable(res *schema.AlignResult, reports []schema.PeriodReport, cfg *contract.Config, intFmt string) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Period", "Samples", "First", "Last", "Shift", "Status"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	maxWidth := GetMaxPeriodWidth(cfg)
	var data [][]string
	for _, r := range reports {
		status := contract.GetPlainStatus(r.Status)
		if cfg.UseColors {
			status = contract.GetColorStatus(r.Status)
		}
		row := []string{
			contract.TruncateName(r.Period, maxWidth),
			fmt.Sprintf(intFmt, r.RowsRetained),
			schema.FormatRelTime(r.FirstSeconds),
			schema.FormatRelTime(r.LastSeconds),
			schema.FormatRelTime(r.ShiftSeconds),
			status,
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	printAlignSummary(res)
	return nil
}

// printAlignSummary prints a one-line recap after the diagnostics table.
func printAlignSummary(res *schema.AlignResult) {
	if res.Aligned && len(res.Shifts) > 0 {
		var total float64
		for _, shift := range res.Shifts {
			total += shift
		}
		mean := total / float64(len(res.Shifts))
		fmt.Printf("Crossing alignment applied to %d periods (mean shift %s)\n", len(res.Shifts), schema.FormatRelTime(mean))
	} else {
		fmt.Println("Crossing alignment not applied. Periods share the pre-roll axis only.")
	}
	if len(res.Skipped) > 0 {
		fmt.Printf("Skipped %d periods with no samples in range\n", len(res.Skipped))
	}
}
