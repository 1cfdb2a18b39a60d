// Package frame loads thermocouple logger CSV files into immutable frames
// and provides the row-level transforms applied before alignment: empty-row
// drops, clock-offset correction, gap exclusion and span in-fill.
package frame

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/thermoflux/heattrap/schema"
)

// maskedCopy returns a new frame containing the rows of f where keep[i] is
// true, preserving column order.
func maskedCopy(f *schema.Frame, keep []bool) *schema.Frame {
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	out := &schema.Frame{
		Name:    f.Name,
		Columns: append([]string(nil), f.Columns...),
		Times:   make([]time.Time, 0, n),
		Values:  make(map[string][]float64, len(f.Columns)),
	}
	for _, col := range f.Columns {
		out.Values[col] = make([]float64, 0, n)
	}
	for i, k := range keep {
		if !k {
			continue
		}
		out.Times = append(out.Times, f.Times[i])
		for _, col := range f.Columns {
			out.Values[col] = append(out.Values[col], f.Values[col][i])
		}
	}
	return out
}

// DropEmpty returns a copy of f without the rows where any of the named
// sensor columns holds a missing reading. This mirrors how the logger
// leaves blank cells while a probe is disconnected.
func DropEmpty(f *schema.Frame, columns []string) (*schema.Frame, error) {
	for _, col := range columns {
		if !f.HasColumn(col) {
			return nil, fmt.Errorf("frame %q has no column %q", f.Name, col)
		}
	}
	keep := make([]bool, f.Len())
	for i := range keep {
		keep[i] = true
		for _, col := range columns {
			if math.IsNaN(f.Values[col][i]) {
				keep[i] = false
				break
			}
		}
	}
	return maskedCopy(f, keep), nil
}

// Exclude returns a copy of f without the rows that fall inside any of the
// given absolute-time gaps. Used for logger outages that would otherwise
// draw a false straight line across the gap.
func Exclude(f *schema.Frame, gaps []schema.TimeRange) *schema.Frame {
	if len(gaps) == 0 {
		return f
	}
	keep := make([]bool, f.Len())
	for i, t := range f.Times {
		keep[i] = true
		for _, g := range gaps {
			if g.Contains(t) {
				keep[i] = false
				break
			}
		}
	}
	return maskedCopy(f, keep)
}

// Segments splits f into contiguous sub-frames around the given gaps, so a
// renderer can draw each segment as its own line.
func Segments(f *schema.Frame, gaps []schema.TimeRange) []*schema.Frame {
	if len(gaps) == 0 {
		return []*schema.Frame{f}
	}
	var out []*schema.Frame
	keep := make([]bool, f.Len())
	segStart := -1
	flush := func(end int) {
		if segStart < 0 {
			return
		}
		for i := range keep {
			keep[i] = i >= segStart && i < end
		}
		seg := maskedCopy(f, keep)
		seg.Name = fmt.Sprintf("%s#%d", f.Name, len(out)+1)
		out = append(out, seg)
		segStart = -1
	}
	for i, t := range f.Times {
		inGap := false
		for _, g := range gaps {
			if g.Contains(t) {
				inGap = true
				break
			}
		}
		if inGap {
			flush(i)
			continue
		}
		if segStart < 0 {
			segStart = i
		}
	}
	flush(f.Len())
	return out
}

// InfillSpan returns a copy of f where the named column is linearly
// interpolated between the last sample at or before from and the first
// sample at or after to. Used to splice over a short stretch of bad probe
// contact without dropping the rows.
func InfillSpan(f *schema.Frame, column string, from, to time.Time) (*schema.Frame, error) {
	vals, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("infill span for %q is empty: %s >= %s", column, from, to)
	}

	lo, hi := -1, -1
	for i, t := range f.Times {
		if !t.After(from) {
			lo = i
		}
		if hi < 0 && !t.Before(to) {
			hi = i
		}
	}
	if lo < 0 || hi < 0 || hi <= lo {
		return nil, fmt.Errorf("infill span for %q not covered by frame %q", column, f.Name)
	}

	keep := make([]bool, f.Len())
	for i := range keep {
		keep[i] = true
	}
	out := maskedCopy(f, keep)

	t0 := f.Times[lo]
	dt := f.Times[hi].Sub(t0).Seconds()
	v0, v1 := vals[lo], vals[hi]
	for i := lo + 1; i < hi; i++ {
		frac := f.Times[i].Sub(t0).Seconds() / dt
		out.Values[column][i] = v0 + (v1-v0)*frac
	}
	return out, nil
}

// SampleInterval estimates the logger's sampling interval as the median
// spacing of the first hundred rows.
func SampleInterval(f *schema.Frame) time.Duration {
	n := f.Len()
	if n < 2 {
		return 0
	}
	if n > 100 {
		n = 100
	}
	diffs := make([]time.Duration, 0, n-1)
	for i := 1; i < n; i++ {
		diffs = append(diffs, f.Times[i].Sub(f.Times[i-1]))
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i] < diffs[j] })
	return diffs[len(diffs)/2]
}
