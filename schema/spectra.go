package schema

// Spectrum is a sampled curve over wavelength, in micrometers.
type Spectrum struct {
	Name        string    `json:"name"`
	Wavelengths []float64 `json:"wavelengths_um"`
	Values      []float64 `json:"values"`
}

// Len returns the number of sampled points.
func (s *Spectrum) Len() int {
	return len(s.Wavelengths)
}

// TransmissionSummary reports how much of a graybody emission spectrum a
// pane material passes, integrated over the sampled wavelength range.
type TransmissionSummary struct {
	Material         string  `json:"material"`
	TemperatureC     float64 `json:"temperature_c"`
	Emissivity       float64 `json:"emissivity"`
	EmittedPower     float64 `json:"emitted_power_w_m2"`     // Stefan-Boltzmann graybody total
	BandPower        float64 `json:"band_power_w_m2"`        // emission integrated over the sampled band
	TransmittedPower float64 `json:"transmitted_power_w_m2"` // band power behind the pane
	BandFraction     float64 `json:"band_fraction"`          // transmitted / band
	TotalFraction    float64 `json:"total_fraction"`         // transmitted / Stefan-Boltzmann total
}
