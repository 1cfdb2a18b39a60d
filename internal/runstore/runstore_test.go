package runstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermoflux/heattrap/schema"
)

func newSQLiteStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	store, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

func TestRunLifecycleSQLite(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	startedAt := time.Now().UTC()
	runID, err := store.BeginRun(ctx, "figure2", startedAt, map[string]any{"preroll": "2m0s"})
	require.NoError(t, err)
	assert.NotZero(t, runID)

	report := schema.PeriodReport{
		Period:       "single pane",
		RowsRetained: 73,
		FirstSeconds: -120,
		LastSeconds:  600,
		ShiftSeconds: 50,
		Status:       schema.AlignedStatus,
	}
	require.NoError(t, store.RecordPeriod(ctx, runID, report))
	require.NoError(t, store.EndRun(ctx, runID, startedAt.Add(2*time.Second), 1))

	runs, err := store.GetAllRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "figure2", runs[0].Figure)
	assert.WithinDuration(t, startedAt, runs[0].StartedAt, time.Microsecond)
	require.NotNil(t, runs[0].FinishedAt)
	assert.Equal(t, 1, runs[0].TotalPeriods)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "preroll")

	periods, err := store.GetAllPeriodReports(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, runID, periods[0].RunID)
	assert.Equal(t, report, periods[0].Report)
}

func TestRunIDsAreDistinct(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	first, err := store.BeginRun(ctx, "figure2", time.Now(), nil)
	require.NoError(t, err)
	second, err := store.BeginRun(ctx, "figure3", time.Now().Add(time.Millisecond), nil)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := store.GetAllRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Oldest first.
	assert.Equal(t, first, runs[0].RunID)
	assert.Equal(t, second, runs[1].RunID)
}

func TestGetStatusSQLite(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	startedAt := time.Now().UTC()
	runID, err := store.BeginRun(ctx, "figure2", startedAt, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordPeriod(ctx, runID, schema.PeriodReport{Period: "single pane", Status: schema.UnalignedStatus}))
	require.NoError(t, store.EndRun(ctx, runID, startedAt.Add(time.Second), 1))

	status, err = store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, int64(1), status.TotalPeriods)
	assert.Equal(t, int64(1), status.TableSizes[figureRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[periodResultsTable])
}

func TestClearSQLite(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	runID, err := store.BeginRun(ctx, "figure2", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordPeriod(ctx, runID, schema.PeriodReport{Period: "single pane"}))

	require.NoError(t, store.Clear(ctx))

	runs, err := store.GetAllRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
	periods, err := store.GetAllPeriodReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestNoneBackendIsNoop(t *testing.T) {
	ctx := context.Background()
	store, err := New(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(ctx, "figure2", time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, runID)
	assert.NoError(t, store.RecordPeriod(ctx, runID, schema.PeriodReport{Period: "single pane"}))
	assert.NoError(t, store.EndRun(ctx, runID, time.Now(), 1))
	assert.NoError(t, store.Clear(ctx))

	runs, err := store.GetAllRuns(ctx)
	require.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := New(schema.DatabaseBackend("oracle"), "dsn")
	assert.Error(t, err)
}

func TestMigrateSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	// Up to latest, then all the way back down.
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))

	assert.Error(t, Migrate(schema.NoneBackend, "", -1))
}
