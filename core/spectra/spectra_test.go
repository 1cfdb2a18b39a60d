package spectra

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermoflux/heattrap/schema"
)

func TestBlackbodyShape(t *testing.T) {
	// 65 C graybody, the apparatus operating point.
	s, err := Blackbody(0.1, 20, 1000, DefaultTemperatureC+273.15, DefaultEmissivity)
	require.NoError(t, err)
	require.Equal(t, 1000, s.Len())

	peakIdx := 0
	for i, v := range s.Values {
		assert.False(t, math.IsNaN(v))
		assert.GreaterOrEqual(t, v, 0.0)
		if v > s.Values[peakIdx] {
			peakIdx = i
		}
	}
	// Wien's law: peak near 2898/338.15 ~ 8.6 um.
	assert.InDelta(t, 8.6, s.Wavelengths[peakIdx], 0.3)
}

func TestBlackbodyEmissivityScales(t *testing.T) {
	full, err := Blackbody(1, 20, 100, 338.15, 1.0)
	require.NoError(t, err)
	gray, err := Blackbody(1, 20, 100, 338.15, 0.9)
	require.NoError(t, err)
	for i := range full.Values {
		assert.InDelta(t, full.Values[i]*0.9, gray.Values[i], full.Values[i]*1e-9)
	}
}

func TestBlackbodyErrors(t *testing.T) {
	_, err := Blackbody(0.1, 20, 1, 338.15, 1.0)
	assert.Error(t, err)
	_, err = Blackbody(20, 0.1, 100, 338.15, 1.0)
	assert.Error(t, err)
	_, err = Blackbody(0.1, 20, 100, -5, 1.0)
	assert.Error(t, err)
}

func TestPCHIPHitsKnots(t *testing.T) {
	interp, err := newPCHIP(caf2Um, caf2Pct)
	require.NoError(t, err)
	for i, x := range caf2Um {
		assert.InDelta(t, caf2Pct[i], interp.at(x), 1e-9)
	}
}

func TestPCHIPMonotoneSegments(t *testing.T) {
	// A monotone run of knots must interpolate without overshoot.
	xs := []float64{7.5, 11.0, 12.0}
	ys := []float64{93, 5, 0}
	interp, err := newPCHIP(xs, ys)
	require.NoError(t, err)
	prev := interp.at(7.5)
	for x := 7.6; x <= 12.0; x += 0.1 {
		v := interp.at(x)
		assert.LessOrEqual(t, v, prev+1e-9)
		prev = v
	}
}

func TestPCHIPErrors(t *testing.T) {
	_, err := newPCHIP([]float64{1}, []float64{1})
	assert.Error(t, err)
	_, err = newPCHIP([]float64{1, 1}, []float64{1, 2})
	assert.Error(t, err)
	_, err = newPCHIP([]float64{1, 2}, []float64{1})
	assert.Error(t, err)
}

func TestTransmissionCurves(t *testing.T) {
	boro, err := Borosilicate(500)
	require.NoError(t, err)
	caf2, err := CaF2(500)
	require.NoError(t, err)

	for _, s := range []struct {
		name string
		wl   []float64
		vals []float64
	}{{"boro", boro.Wavelengths, boro.Values}, {"caf2", caf2.Wavelengths, caf2.Values}} {
		for i, v := range s.vals {
			assert.GreaterOrEqualf(t, v, 0.0, "%s[%d]", s.name, i)
			assert.LessOrEqualf(t, v, 100.0, "%s[%d]", s.name, i)
		}
	}

	// CaF2 is opaque past 12 um.
	for i, um := range caf2.Wavelengths {
		if um > 12.0 {
			assert.Zero(t, caf2.Values[i])
		}
	}
}

func TestTrapezoid(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}
	assert.InDelta(t, 4.5, Trapezoid(x, y), 1e-9)
	assert.Zero(t, Trapezoid([]float64{1}, []float64{5}))
}

func TestInterp1(t *testing.T) {
	xs := []float64{1, 2, 4}
	ys := []float64{10, 20, 40}
	assert.InDelta(t, 15.0, Interp1(xs, ys, 1.5), 1e-9)
	assert.InDelta(t, 30.0, Interp1(xs, ys, 3), 1e-9)
	// Zero fill outside the sampled range.
	assert.Zero(t, Interp1(xs, ys, 0.5))
	assert.Zero(t, Interp1(xs, ys, 5))
}

func TestSummarize(t *testing.T) {
	bb, err := Blackbody(0.1, 20, DefaultPoints, DefaultTemperatureC+273.15, DefaultEmissivity)
	require.NoError(t, err)
	boro, err := Borosilicate(DefaultPoints)
	require.NoError(t, err)
	caf2, err := CaF2(DefaultPoints)
	require.NoError(t, err)

	boroSum, err := Summarize("borosilicate", bb, boro, DefaultTemperatureC, DefaultEmissivity)
	require.NoError(t, err)
	caf2Sum, err := Summarize("caf2", bb, caf2, DefaultTemperatureC, DefaultEmissivity)
	require.NoError(t, err)

	// A 65 C graybody emits almost nothing below 4 um, where borosilicate
	// stops transmitting, while CaF2 stays clear out to 10 um.
	assert.Less(t, boroSum.BandFraction, 0.05)
	assert.Greater(t, caf2Sum.BandFraction, 0.2)
	assert.Greater(t, caf2Sum.BandFraction, boroSum.BandFraction)

	for _, s := range []*schema.TransmissionSummary{boroSum, caf2Sum} {
		assert.GreaterOrEqual(t, s.BandFraction, 0.0)
		assert.LessOrEqual(t, s.BandFraction, 1.0)
		assert.GreaterOrEqual(t, s.TotalFraction, 0.0)
		assert.LessOrEqual(t, s.TotalFraction, 1.0)
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	paths, err := WriteAll(dir, DefaultTemperatureC, DefaultEmissivity)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
