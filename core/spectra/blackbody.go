// Package spectra generates the emission and transmission datasets behind
// the pane-material comparison figure: a graybody emission spectrum for the
// heated black bottom, published transmission curves for the two pane
// materials, and the transmitted-power summary that combines them.
package spectra

import (
	"errors"
	"math"

	"github.com/thermoflux/heattrap/schema"
)

// Physical constants (SI).
const (
	planckConst     = 6.62607015e-34 // J*s
	lightSpeed      = 2.99792458e8   // m/s
	boltzmannConst  = 1.380649e-23   // J/K
	stefanBoltzmann = 5.670374419e-8 // W/(m^2*K^4)
)

// Graybody defaults matching the apparatus: black bottom held at 65 C with
// emissivity 0.9.
const (
	DefaultTemperatureC = 65.0
	DefaultEmissivity   = 0.9
)

// Blackbody samples Planck's law over [minUm, maxUm] micrometers at the
// given temperature in Kelvin, scaled by emissivity. Radiance is reported
// in W/m^2/sr/um.
func Blackbody(minUm, maxUm float64, points int, tempK, emissivity float64) (*schema.Spectrum, error) {
	if points < 2 {
		return nil, errors.New("blackbody spectrum needs at least two points")
	}
	if maxUm <= minUm {
		return nil, errors.New("blackbody wavelength range is empty")
	}
	if tempK <= 0 {
		return nil, errors.New("blackbody temperature must be positive Kelvin")
	}
	// Guard the 1/lambda^5 pole.
	if minUm <= 0 {
		minUm = 0.1
	}

	s := &schema.Spectrum{
		Name:        "blackbody",
		Wavelengths: make([]float64, points),
		Values:      make([]float64, points),
	}
	step := (maxUm - minUm) / float64(points-1)
	for i := 0; i < points; i++ {
		um := minUm + float64(i)*step
		m := um * 1e-6
		num := 2.0 * planckConst * lightSpeed * lightSpeed
		den := math.Pow(m, 5) * (math.Exp(planckConst*lightSpeed/(m*boltzmannConst*tempK)) - 1.0)
		// W/m^2/sr/m down to per-micrometer
		s.Wavelengths[i] = um
		s.Values[i] = emissivity * num / den * 1e-6
	}
	return s, nil
}

// GraybodyPower is the total hemispherical emission of a graybody at tempK,
// in W/m^2.
func GraybodyPower(tempK, emissivity float64) float64 {
	return emissivity * stefanBoltzmann * math.Pow(tempK, 4)
}
