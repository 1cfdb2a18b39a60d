// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/thermoflux/heattrap/schema"
)

// RunStore defines the interface for the figure-build run archive.
// This allows the archive layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new archived run and returns its unique ID.
	BeginRun(ctx context.Context, figure string, startedAt time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(ctx context.Context, runID int64, finishedAt time.Time, totalPeriods int) error

	// RecordPeriod stores the processing summary for one period.
	RecordPeriod(ctx context.Context, runID int64, report schema.PeriodReport) error

	// GetAllRuns returns every archived run, oldest first.
	GetAllRuns(ctx context.Context) ([]schema.RunRecord, error)

	// GetAllPeriodReports returns every archived period summary with its run ID.
	GetAllPeriodReports(ctx context.Context) ([]ArchivedPeriod, error)

	// GetStatus returns status information about the archive.
	GetStatus(ctx context.Context) (schema.ArchiveStatus, error)

	// Clear removes all archived data.
	Clear(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}

// ArchivedPeriod is a period summary joined with its run ID.
type ArchivedPeriod struct {
	RunID  int64
	Report schema.PeriodReport
}
