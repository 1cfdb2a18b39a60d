// Package smooth provides the moving-average filter used for the outside
// air reference trace.
package smooth

import (
	"time"

	"github.com/thermoflux/heattrap/core/frame"
	"github.com/thermoflux/heattrap/schema"
)

// MovingAverage returns the centered moving average of values with the
// given window size, clamping at the edges so the output keeps the input
// length. Window sizes below two return a copy of the input.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window < 2 || len(values) == 0 {
		copy(out, values)
		return out
	}
	// Centered window with the extra sample on the left for even sizes,
	// indices clamped to the nearest edge.
	left := window / 2
	right := window - left - 1
	for i := range values {
		sum := 0.0
		for j := i - left; j <= i+right; j++ {
			k := j
			if k < 0 {
				k = 0
			} else if k >= len(values) {
				k = len(values) - 1
			}
			sum += values[k]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// WindowSize derives the sample count covering span at the frame's
// sampling interval, never less than one.
func WindowSize(f *schema.Frame, span time.Duration) int {
	dt := frame.SampleInterval(f)
	if dt <= 0 {
		return 1
	}
	n := int(span / dt)
	if n < 1 {
		n = 1
	}
	return n
}

// Column returns a copy of f with an extra column holding the moving
// average of the named sensor over the given wall-clock span. The new
// column is named after the source with the span appended.
func Column(f *schema.Frame, column string, span time.Duration) (*schema.Frame, string, error) {
	vals, err := f.Column(column)
	if err != nil {
		return nil, "", err
	}
	avg := MovingAverage(vals, WindowSize(f, span))

	name := column + " (" + span.String() + " avg)"
	out := &schema.Frame{
		Name:    f.Name,
		Columns: append(append([]string(nil), f.Columns...), name),
		Times:   append([]time.Time(nil), f.Times...),
		Values:  make(map[string][]float64, len(f.Columns)+1),
	}
	for _, col := range f.Columns {
		out.Values[col] = append([]float64(nil), f.Values[col]...)
	}
	out.Values[name] = avg
	return out, name, nil
}
