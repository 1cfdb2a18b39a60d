package parquet

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermoflux/heattrap/schema"
)

func TestWindowedSampleStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(WindowedSample))
	require.NotNil(t, sch)

	for _, colName := range []string{"figure", "period", "seconds", "column", "value"} {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFigureRunStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(FigureRun))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id",
		"figure",
		"started_at",
		"finished_at",
		"config_params",
		"total_periods",
	}
	for _, colName := range expectedColumns {
		_, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestPeriodResultStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(PeriodResult))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id",
		"period",
		"rows_retained",
		"first_seconds",
		"last_seconds",
		"shift_seconds",
		"status",
	}
	for _, colName := range expectedColumns {
		_, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteWindowedSamplesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "samples.parquet")

	v1, v2 := 21.4, 44.9
	data := []WindowedSample{
		{Figure: "figure2", Period: "single pane", Seconds: -120, Column: "Box Air", Value: &v1},
		{Figure: "figure2", Period: "single pane", Seconds: -110, Column: "Box Air", Value: &v2},
		{Figure: "figure2", Period: "single pane", Seconds: -100, Column: "Box Air", Value: nil},
	}
	require.NoError(t, WriteWindowedSamplesParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[WindowedSample](file)
	defer func() { _ = reader.Close() }()

	readData := make([]WindowedSample, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, "single pane", readData[0].Period)
	require.NotNil(t, readData[0].Value)
	assert.InDelta(t, v1, *readData[0].Value, 1e-9)
	// NaN readings round-trip as nulls.
	assert.Nil(t, readData[2].Value)
}

func TestWriteFigureRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	now := time.Now()
	finished := now.Add(2 * time.Second)
	params := `{"preroll":"2m0s"}`
	data := []FigureRun{
		{RunID: 1, Figure: "figure2", StartedAt: now, FinishedAt: &finished, ConfigParams: &params, TotalPeriods: 4},
		{RunID: 2, Figure: "figure3", StartedAt: now, FinishedAt: nil, ConfigParams: nil, TotalPeriods: 0},
	}
	require.NoError(t, WriteFigureRunsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[FigureRun](file)
	defer func() { _ = reader.Close() }()

	readData := make([]FigureRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, int64(1), readData[0].RunID)
	require.NotNil(t, readData[0].FinishedAt)
	assert.WithinDuration(t, finished, *readData[0].FinishedAt, time.Nanosecond)
	assert.Nil(t, readData[1].FinishedAt)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWriteParquetEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WritePeriodResultsParquet([]PeriodResult{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteWindowedSamplesParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

func TestConvertWindowedSeries(t *testing.T) {
	res := &schema.AlignResult{
		Order: []string{"single pane", "double pane"},
		Periods: map[string]*schema.WindowedSeries{
			"single pane": {
				Period:  "single pane",
				Columns: []string{"Box Air"},
				Seconds: []float64{-120, -110},
				Values:  map[string][]float64{"Box Air": {21.4, math.NaN()}},
			},
			"double pane": {
				Period:  "double pane",
				Columns: []string{"Box Air"},
				Seconds: []float64{-120},
				Values:  map[string][]float64{"Box Air": {19.8}},
			},
		},
	}

	samples := ConvertWindowedSeries("figure2", res)
	require.Len(t, samples, 3)

	// Order follows the result's period order.
	assert.Equal(t, "single pane", samples[0].Period)
	assert.Equal(t, "double pane", samples[2].Period)
	assert.Equal(t, "figure2", samples[0].Figure)

	require.NotNil(t, samples[0].Value)
	assert.InDelta(t, 21.4, *samples[0].Value, 1e-9)
	assert.Nil(t, samples[1].Value, "NaN readings export as null")
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	records := []schema.RunRecord{
		{RunID: 7, Figure: "figure2", StartedAt: now, TotalPeriods: 4},
	}
	runs := ConvertRunRecords(records)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, int32(4), runs[0].TotalPeriods)
	assert.Nil(t, runs[0].FinishedAt)
}

func TestConvertPeriodReports(t *testing.T) {
	reports := []schema.PeriodReport{
		{Period: "single pane", RowsRetained: 73, FirstSeconds: -120, LastSeconds: 600, Status: schema.AlignedStatus},
	}
	results := ConvertPeriodReports([]int64{7}, reports)
	require.Len(t, results, 1)
	assert.Equal(t, int64(7), results[0].RunID)
	assert.Equal(t, int32(73), results[0].RowsRetained)
	assert.Equal(t, "aligned", results[0].Status)
}
