package schema

import (
	"fmt"
	"time"
)

// Frame is an immutable snapshot of one logger CSV: an ordered sequence of
// timestamps plus one numeric column per sensor. Timestamps are strictly
// non-decreasing; missing readings are stored as NaN.
type Frame struct {
	Name    string
	Columns []string
	Times   []time.Time
	Values  map[string][]float64
}

// Len returns the number of rows in the frame.
func (f *Frame) Len() int {
	return len(f.Times)
}

// HasColumn reports whether the frame contains the named sensor column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.Values[name]
	return ok
}

// Column returns the values of the named sensor column, or a data error
// naming the frame and column when it is absent.
func (f *Frame) Column(name string) ([]float64, error) {
	vals, ok := f.Values[name]
	if !ok {
		return nil, fmt.Errorf("frame %q has no column %q", f.Name, name)
	}
	return vals, nil
}

// TimeRange is a closed absolute-time interval.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range (inclusive).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Period is a named experiment segment: a slice of one source frame bounded
// by absolute start and end timestamps, with a pre-roll span of baseline
// context retained before the start.
type Period struct {
	Name    string
	Source  *Frame
	Start   time.Time
	End     time.Time
	Preroll time.Duration
}

// AlignmentSpec names the sensor column and target value used to re-anchor
// periods at a common reference crossing. The crossing is the first sample
// that reaches or drops below the target, matching the cooling-curve use.
type AlignmentSpec struct {
	ReferenceColumn string
	TargetValue     float64
}

// WindowedSeries is a period's samples re-expressed on a relative-seconds
// axis, ready for clipping to one or more display windows.
type WindowedSeries struct {
	Period  string               `json:"period"`
	Columns []string             `json:"columns"`
	Seconds []float64            `json:"seconds"`
	Values  map[string][]float64 `json:"values"`
	Shift   float64              `json:"shift_seconds"`
	Status  PeriodStatus         `json:"status"`
}

// Len returns the number of retained samples.
func (w *WindowedSeries) Len() int {
	return len(w.Seconds)
}

// AlignResult is the output of one aligner batch: windowed series keyed by
// period name, the deterministic period order, and the per-period shifts
// applied when reference alignment succeeded.
type AlignResult struct {
	Order   []string                   `json:"order"`
	Periods map[string]*WindowedSeries `json:"periods"`
	Aligned bool                       `json:"aligned"`
	Shifts  map[string]float64         `json:"shifts,omitempty"`
	Skipped []string                   `json:"skipped,omitempty"`
}

// PeriodReport summarizes one period's processing for the run archive.
type PeriodReport struct {
	Period       string
	RowsRetained int
	FirstSeconds float64
	LastSeconds  float64
	ShiftSeconds float64
	Status       PeriodStatus
}

// RunRecord is one archived figure-build run.
type RunRecord struct {
	RunID        int64
	Figure       string
	StartedAt    time.Time
	FinishedAt   *time.Time
	ConfigParams *string
	TotalPeriods int
}

// ArchiveStatus holds status information about the run archive.
type ArchiveStatus struct {
	Backend      DatabaseBackend
	Connected    bool
	TotalRuns    int64
	LastRunID    int64
	LastRunTime  time.Time
	OldestRun    time.Time
	TotalPeriods int64
	TableSizes   map[string]int64
}
