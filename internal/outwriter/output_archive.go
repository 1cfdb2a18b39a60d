package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/schema"
)

// PrintArchiveRuns outputs the archived figure runs, dispatching based on the output format configured.
func PrintArchiveRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForArchive(runs, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForArchive(runs, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printArchiveTable(runs); err != nil {
			return fmt.Errorf("error writing archive table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForArchive handles opening the file and calling the JSON writer.
func printJSONResultsForArchive(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, runs)
	}, "Wrote JSON archive runs")
}

// printCSVResultsForArchive handles opening the file and calling the CSV writer.
func printCSVResultsForArchive(runs []schema.RunRecord, cfg *contract.Config) error {
	header := []string{"run_id", "figure", "started_at", "finished_at", "total_periods"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, r := range runs {
				finished := ""
				if r.FinishedAt != nil {
					finished = r.FinishedAt.Format(schema.DateTimeLayout)
				}
				rec := []string{
					strconv.FormatInt(r.RunID, 10),
					r.Figure,
					r.StartedAt.Format(schema.DateTimeLayout),
					finished,
					strconv.Itoa(r.TotalPeriods),
				}
				if err := csvWriter.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV archive runs")
}

// printArchiveTable prints the archived runs in a table.
func printArchiveTable(runs []schema.RunRecord) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Run ID", "Figure", "Started", "Finished", "Periods"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		finished := "running"
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Format(schema.DateTimeLayout)
		}
		row := []string{
			strconv.FormatInt(r.RunID, 10),
			r.Figure,
			r.StartedAt.Format(schema.DateTimeLayout),
			finished,
			strconv.Itoa(r.TotalPeriods),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
