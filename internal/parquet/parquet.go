// Package parquet provides data structures and functions for exporting
// windowed series and archived run data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/thermoflux/heattrap/schema"
)

// WindowedSample is one long-format row of a windowed series: a single
// reading of one sensor column at one relative-seconds offset.
type WindowedSample struct {
	// Figure is the figure definition the sample belongs to
	Figure string `parquet:"figure,snappy"`

	// Period is the experiment period name
	Period string `parquet:"period,snappy"`

	// Seconds is the position on the relative-seconds axis
	Seconds float64 `parquet:"seconds,snappy"`

	// Column is the sensor column name
	Column string `parquet:"column,snappy"`

	// Value is the reading; NaN readings are exported as nulls
	Value *float64 `parquet:"value,optional,snappy"`
}

// FigureRun represents a single archived figure build with metadata.
// This struct maps to the heattrap_figure_runs database table.
type FigureRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Figure is the figure definition that was built
	Figure string `parquet:"figure,snappy"`

	// StartedAt is when the build began
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the build completed (nullable)
	FinishedAt *time.Time `parquet:"finished_at,optional,snappy"`

	// ConfigParams contains the JSON-encoded build parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`

	// TotalPeriods is the number of periods processed in this run
	TotalPeriods int32 `parquet:"total_periods,snappy"`
}

// PeriodResult represents the archived processing summary for one period.
// This struct maps to the heattrap_period_results database table.
type PeriodResult struct {
	// RunID references the parent figure run
	RunID int64 `parquet:"run_id,snappy"`

	// Period is the experiment period name
	Period string `parquet:"period,snappy"`

	// RowsRetained is the number of samples kept after slicing
	RowsRetained int32 `parquet:"rows_retained,snappy"`

	// FirstSeconds is the first retained sample's relative position
	FirstSeconds float64 `parquet:"first_seconds,snappy"`

	// LastSeconds is the last retained sample's relative position
	LastSeconds float64 `parquet:"last_seconds,snappy"`

	// ShiftSeconds is the crossing anchor shift applied to the axis
	ShiftSeconds float64 `parquet:"shift_seconds,snappy"`

	// Status is the processing outcome (aligned, unaligned, skipped)
	Status string `parquet:"status,snappy"`
}

// TransmissionResult represents one pane material's transmission summary.
type TransmissionResult struct {
	// Material is the pane material name
	Material string `parquet:"material,snappy"`

	// TemperatureC is the graybody source temperature in Celsius
	TemperatureC float64 `parquet:"temperature_c,snappy"`

	// Emissivity is the graybody source emissivity
	Emissivity float64 `parquet:"emissivity,snappy"`

	// EmittedPower is the total hemispherical emitted power (W/m2)
	EmittedPower float64 `parquet:"emitted_w_m2,snappy"`

	// BandPower is the emitted power within the sampled band (W/m2)
	BandPower float64 `parquet:"band_w_m2,snappy"`

	// TransmittedPower is the power passed by the pane (W/m2)
	TransmittedPower float64 `parquet:"transmitted_w_m2,snappy"`

	// BandFraction is TransmittedPower over BandPower
	BandFraction float64 `parquet:"band_fraction,snappy"`

	// TotalFraction is TransmittedPower over EmittedPower
	TotalFraction float64 `parquet:"total_fraction,snappy"`
}

// WriteWindowedSamplesParquet writes a slice of WindowedSample structs to a
// Parquet file.
func WriteWindowedSamplesParquet(data []WindowedSample, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFigureRunsParquet writes a slice of FigureRun structs to a Parquet file.
func WriteFigureRunsParquet(data []FigureRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WritePeriodResultsParquet writes a slice of PeriodResult structs to a
// Parquet file.
func WritePeriodResultsParquet(data []PeriodResult, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTransmissionResultsParquet writes a slice of TransmissionResult
// structs to a Parquet file.
func WriteTransmissionResultsParquet(data []TransmissionResult, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet creates outputPath and writes data with a schema inferred
// from the row type's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertWindowedSeries flattens aligned periods into long-format samples
// for Parquet export. Periods are visited in the result's original order.
func ConvertWindowedSeries(figure string, res *schema.AlignResult) []WindowedSample {
	var result []WindowedSample
	for _, name := range res.Order {
		ws, ok := res.Periods[name]
		if !ok {
			continue
		}
		for _, col := range ws.Columns {
			vals := ws.Values[col]
			for i, sec := range ws.Seconds {
				sample := WindowedSample{
					Figure:  figure,
					Period:  name,
					Seconds: sec,
					Column:  col,
				}
				if i < len(vals) && !math.IsNaN(vals[i]) {
					v := vals[i]
					sample.Value = &v
				}
				result = append(result, sample)
			}
		}
	}
	return result
}

// ConvertTransmissionSummaries converts spectra summaries to
// TransmissionResult for Parquet export.
func ConvertTransmissionSummaries(summaries []*schema.TransmissionSummary) []TransmissionResult {
	result := make([]TransmissionResult, len(summaries))
	for i, s := range summaries {
		result[i] = TransmissionResult{
			Material:         s.Material,
			TemperatureC:     s.TemperatureC,
			Emissivity:       s.Emissivity,
			EmittedPower:     s.EmittedPower,
			BandPower:        s.BandPower,
			TransmittedPower: s.TransmittedPower,
			BandFraction:     s.BandFraction,
			TotalFraction:    s.TotalFraction,
		}
	}
	return result
}

// ConvertRunRecords converts schema.RunRecord to FigureRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []FigureRun {
	result := make([]FigureRun, len(records))
	for i, record := range records {
		result[i] = FigureRun{
			RunID:        record.RunID,
			Figure:       record.Figure,
			StartedAt:    record.StartedAt,
			FinishedAt:   record.FinishedAt,
			ConfigParams: record.ConfigParams,
			TotalPeriods: int32(record.TotalPeriods),
		}
	}
	return result
}

// ConvertPeriodReports converts archived period summaries to PeriodResult
// for Parquet export.
func ConvertPeriodReports(runIDs []int64, reports []schema.PeriodReport) []PeriodResult {
	result := make([]PeriodResult, len(reports))
	for i, report := range reports {
		var runID int64
		if i < len(runIDs) {
			runID = runIDs[i]
		}
		result[i] = PeriodResult{
			RunID:        runID,
			Period:       report.Period,
			RowsRetained: int32(report.RowsRetained),
			FirstSeconds: report.FirstSeconds,
			LastSeconds:  report.LastSeconds,
			ShiftSeconds: report.ShiftSeconds,
			Status:       string(report.Status),
		}
	}
	return result
}
