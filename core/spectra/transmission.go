package spectra

import (
	"errors"

	"github.com/thermoflux/heattrap/schema"
)

// Published transmission anchor points for the two pane materials, in
// micrometers and percent. The curves between anchors are monotone-cubic
// interpolated and clipped to [0, 100].
var (
	borosilicateUm  = []float64{0.20, 0.25, 1.2, 1.7, 2.1, 2.2, 2.7, 3.0, 3.2, 3.7, 3.8}
	borosilicatePct = []float64{0, 90, 88, 90, 90, 88, 50, 25, 42, 5, 0}

	caf2Um  = []float64{0.25, 0.5, 4.5, 7.5, 11.0, 12.0, 20.0}
	caf2Pct = []float64{90, 92, 95, 93, 5, 0, 0}

	// CaF2 is opaque past this wavelength no matter what the
	// interpolant does.
	caf2CutoffUm = 12.0
)

// Borosilicate samples the borosilicate glass transmission curve over its
// published range, in percent.
func Borosilicate(points int) (*schema.Spectrum, error) {
	return interpolated("borosilicate", borosilicateUm, borosilicatePct, 0.2, 4.0, points, -1)
}

// CaF2 samples the calcium fluoride transmission curve over its published
// range, in percent.
func CaF2(points int) (*schema.Spectrum, error) {
	return interpolated("caf2", caf2Um, caf2Pct, 0.2, 20.0, points, caf2CutoffUm)
}

func interpolated(name string, knotsUm, knotsPct []float64, minUm, maxUm float64, points int, cutoffUm float64) (*schema.Spectrum, error) {
	if points < 2 {
		return nil, errors.New("transmission spectrum needs at least two points")
	}
	interp, err := newPCHIP(knotsUm, knotsPct)
	if err != nil {
		return nil, err
	}

	s := &schema.Spectrum{
		Name:        name,
		Wavelengths: make([]float64, points),
		Values:      make([]float64, points),
	}
	step := (maxUm - minUm) / float64(points-1)
	for i := 0; i < points; i++ {
		um := minUm + float64(i)*step
		pct := interp.at(um)
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		if cutoffUm > 0 && um > cutoffUm {
			pct = 0
		}
		s.Wavelengths[i] = um
		s.Values[i] = pct
	}
	return s, nil
}
