package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/internal/parquet"
	"github.com/thermoflux/heattrap/schema"
)

// PrintSpectraResults outputs the transmission summaries, dispatching based on the output format configured.
func PrintSpectraResults(summaries []*schema.TransmissionSummary, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSpectra(summaries, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSpectra(summaries, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSpectra(summaries, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSpectraTable(summaries, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing spectra table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSpectra handles opening the file and calling the JSON writer.
func printJSONResultsForSpectra(summaries []*schema.TransmissionSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, summaries)
	}, "Wrote JSON spectra results")
}

// printCSVResultsForSpectra handles opening the file and calling the CSV writer.
func printCSVResultsForSpectra(summaries []*schema.TransmissionSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"material", "temperature_c", "emissivity", "emitted_w_m2", "band_w_m2", "transmitted_w_m2", "band_fraction", "total_fraction"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, s := range summaries {
				rec := []string{
					s.Material,
					fmtFloat(s.TemperatureC),
					fmtFloat(s.Emissivity),
					fmtFloat(s.EmittedPower),
					fmtFloat(s.BandPower),
					fmtFloat(s.TransmittedPower),
					fmtFloat(s.BandFraction),
					fmtFloat(s.TotalFraction),
				}
				if err := csvWriter.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV spectra results")
}

// printParquetResultsForSpectra exports the transmission summaries to a Parquet file.
func printParquetResultsForSpectra(summaries []*schema.TransmissionSummary, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	results := parquet.ConvertTransmissionSummaries(summaries)
	if err := parquet.WriteTransmissionResultsParquet(results, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %d Parquet transmission summaries to %s\n", len(results), cfg.OutputFile)
	return nil
}

// printSpectraTable prints the pane transmission summaries in a table.
func printSpectraTable(summaries []*schema.TransmissionSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Material", "Emitted (W/m²)", "Band (W/m²)", "Passed (W/m²)", "Band %", "Total %"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range summaries {
		row := []string{
			s.Material,
			fmtFloat(s.EmittedPower),
			fmtFloat(s.BandPower),
			fmtFloat(s.TransmittedPower),
			fmtFloat(s.BandFraction * 100),
			fmtFloat(s.TotalFraction * 100),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(summaries) > 0 {
		fmt.Printf("Graybody source: %.1f°C at emissivity %.2f\n", summaries[0].TemperatureC, summaries[0].Emissivity)
	}
	return nil
}
