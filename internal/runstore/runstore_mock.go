package runstore

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/schema"
)

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(ctx context.Context, figure string, startedAt time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(ctx, figure, startedAt, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(ctx context.Context, runID int64, finishedAt time.Time, totalPeriods int) error {
	args := m.Called(ctx, runID, finishedAt, totalPeriods)
	return args.Error(0)
}

// RecordPeriod implements the RunStore interface.
func (m *MockRunStore) RecordPeriod(ctx context.Context, runID int64, report schema.PeriodReport) error {
	args := m.Called(ctx, runID, report)
	return args.Error(0)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns(ctx context.Context) ([]schema.RunRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllPeriodReports implements the RunStore interface.
func (m *MockRunStore) GetAllPeriodReports(ctx context.Context) ([]contract.ArchivedPeriod, error) {
	args := m.Called(ctx)
	reports, _ := args.Get(0).([]contract.ArchivedPeriod)
	return reports, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus(ctx context.Context) (schema.ArchiveStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.ArchiveStatus), args.Error(1)
}

// Clear implements the RunStore interface.
func (m *MockRunStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
