package spectra

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Dataset file names, kept stable because the figure script looks them up
// by name.
const (
	BlackbodyFile    = "blackbody_spectrum.csv"
	BorosilicateFile = "borosilicate_transmission.csv"
	CaF2File         = "caf2_transmission.csv"
)

// DefaultPoints is the sampling resolution of the generated datasets.
const DefaultPoints = 1000

// WriteAll generates the three spectra datasets into dataDir and returns
// the file paths written.
func WriteAll(dataDir string, tempC, emissivity float64) ([]string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	bb, err := Blackbody(0.1, 20, DefaultPoints, tempC+273.15, emissivity)
	if err != nil {
		return nil, err
	}
	boro, err := Borosilicate(DefaultPoints)
	if err != nil {
		return nil, err
	}
	caf2, err := CaF2(DefaultPoints)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name   string
		header []string
		wl     []float64
		vals   []float64
	}{
		{BlackbodyFile, []string{"Wavelength (um)", "Spectral Radiance (W/m²/sr/μm)"}, bb.Wavelengths, bb.Values},
		{BorosilicateFile, []string{"Wavelength (um)", "Transmission (%)"}, boro.Wavelengths, boro.Values},
		{CaF2File, []string{"Wavelength (um)", "Transmission (%)"}, caf2.Wavelengths, caf2.Values},
	}

	var paths []string
	for _, f := range files {
		path := filepath.Join(dataDir, f.name)
		if err := writeCurveCSV(path, f.header, f.wl, f.vals); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCurveCSV(path string, header []string, wl, vals []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range wl {
		row := []string{
			strconv.FormatFloat(wl[i], 'g', -1, 64),
			strconv.FormatFloat(vals[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
