package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermoflux/heattrap/schema"
)

// tenSecondFrame builds a frame with one sample every 10 seconds.
func tenSecondFrame(t *testing.T, n int, col string, value func(i int) float64) *schema.Frame {
	t.Helper()
	base := time.Date(2024, 10, 17, 13, 0, 0, 0, time.UTC)
	f := &schema.Frame{
		Name:    "fixture.csv",
		Columns: []string{col},
		Values:  map[string][]float64{col: {}},
	}
	for i := 0; i < n; i++ {
		f.Times = append(f.Times, base.Add(time.Duration(i)*10*time.Second))
		f.Values[col] = append(f.Values[col], value(i))
	}
	return f
}

func TestExclude(t *testing.T) {
	f := tenSecondFrame(t, 10, "Temp", func(i int) float64 { return float64(i) })
	gap := schema.TimeRange{
		Start: f.Times[3],
		End:   f.Times[6],
	}

	out := Exclude(f, []schema.TimeRange{gap})
	assert.Equal(t, 6, out.Len())
	vals, err := out.Column("Temp")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 7, 8, 9}, vals)

	// Original frame untouched
	assert.Equal(t, 10, f.Len())
}

func TestSegments(t *testing.T) {
	f := tenSecondFrame(t, 10, "Temp", func(i int) float64 { return float64(i) })
	gap := schema.TimeRange{Start: f.Times[4], End: f.Times[5]}

	segs := Segments(f, []schema.TimeRange{gap})
	require.Len(t, segs, 2)
	assert.Equal(t, 4, segs[0].Len())
	assert.Equal(t, 4, segs[1].Len())
	assert.Equal(t, "fixture.csv#1", segs[0].Name)
	assert.Equal(t, "fixture.csv#2", segs[1].Name)

	// No gaps returns the frame unchanged
	whole := Segments(f, nil)
	require.Len(t, whole, 1)
	assert.Equal(t, f, whole[0])
}

func TestInfillSpan(t *testing.T) {
	f := tenSecondFrame(t, 5, "Temp", func(i int) float64 { return 50.0 })
	// Pretend rows 1..3 are bad probe contact
	f.Values["Temp"][1] = 90
	f.Values["Temp"][2] = 95
	f.Values["Temp"][3] = 60
	f.Values["Temp"][4] = 46

	out, err := InfillSpan(f, "Temp", f.Times[0], f.Times[4])
	require.NoError(t, err)
	vals, err := out.Column("Temp")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, vals[0], 1e-9)
	assert.InDelta(t, 49.0, vals[1], 1e-9)
	assert.InDelta(t, 48.0, vals[2], 1e-9)
	assert.InDelta(t, 47.0, vals[3], 1e-9)
	assert.InDelta(t, 46.0, vals[4], 1e-9)

	// Original untouched
	assert.Equal(t, 90.0, f.Values["Temp"][1])
}

func TestInfillSpanErrors(t *testing.T) {
	f := tenSecondFrame(t, 5, "Temp", func(i int) float64 { return 50.0 })

	_, err := InfillSpan(f, "Missing", f.Times[0], f.Times[4])
	assert.Error(t, err)

	_, err = InfillSpan(f, "Temp", f.Times[4], f.Times[0])
	assert.Error(t, err)

	_, err = InfillSpan(f, "Temp", f.Times[4].Add(time.Hour), f.Times[4].Add(2*time.Hour))
	assert.Error(t, err)
}

func TestSampleInterval(t *testing.T) {
	f := tenSecondFrame(t, 20, "Temp", func(i int) float64 { return 0 })
	assert.Equal(t, 10*time.Second, SampleInterval(f))

	short := tenSecondFrame(t, 1, "Temp", func(i int) float64 { return 0 })
	assert.Equal(t, time.Duration(0), SampleInterval(short))
}
