package spectra

import (
	"fmt"
	"math"

	"github.com/thermoflux/heattrap/schema"
)

// Trapezoid integrates y over x with the trapezoidal rule.
func Trapezoid(x, y []float64) float64 {
	sum := 0.0
	for i := 1; i < len(x) && i < len(y); i++ {
		sum += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return sum
}

// Interp1 linearly interpolates a sampled curve at x, returning zero
// outside the sampled range. Matches how the transmission curves are
// resampled onto the emission wavelength grid.
func Interp1(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if n == 0 || x < xs[0] || x > xs[n-1] {
		return 0
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	if xs[hi] == xs[lo] {
		return ys[lo]
	}
	t := (x - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + t*(ys[hi]-ys[lo])
}

// Transmitted multiplies an emission spectrum by a transmission curve
// given in percent, resampled onto the emission wavelengths.
func Transmitted(emission, transmission *schema.Spectrum) *schema.Spectrum {
	out := &schema.Spectrum{
		Name:        transmission.Name + "_transmitted",
		Wavelengths: append([]float64(nil), emission.Wavelengths...),
		Values:      make([]float64, emission.Len()),
	}
	for i, um := range emission.Wavelengths {
		frac := Interp1(transmission.Wavelengths, transmission.Values, um) / 100.0
		out.Values[i] = emission.Values[i] * frac
	}
	return out
}

// Summarize integrates the emission and transmitted spectra and reports
// what fraction of the graybody's power the pane material passes. Spectral
// radiance is per steradian, so band powers carry a factor of pi for the
// hemisphere.
func Summarize(material string, emission, transmission *schema.Spectrum, tempC, emissivity float64) (*schema.TransmissionSummary, error) {
	if emission.Len() < 2 {
		return nil, fmt.Errorf("emission spectrum for %s is too short to integrate", material)
	}
	trans := Transmitted(emission, transmission)

	bandRadiance := Trapezoid(emission.Wavelengths, emission.Values)
	passedRadiance := Trapezoid(trans.Wavelengths, trans.Values)

	bandPower := math.Pi * bandRadiance
	transmittedPower := math.Pi * passedRadiance
	total := GraybodyPower(tempC+273.15, emissivity)

	s := &schema.TransmissionSummary{
		Material:         material,
		TemperatureC:     tempC,
		Emissivity:       emissivity,
		EmittedPower:     total,
		BandPower:        bandPower,
		TransmittedPower: transmittedPower,
	}
	if bandPower > 0 {
		s.BandFraction = transmittedPower / bandPower
	}
	if total > 0 {
		s.TotalFraction = transmittedPower / total
	}
	return s, nil
}
