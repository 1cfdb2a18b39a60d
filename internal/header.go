package internal

import (
	"fmt"
	"time"

	"github.com/thermoflux/heattrap/schema"
)

// LogFigureHeader prints a concise, 2-line header for each figure build.
func LogFigureHeader(figure, source string, rows, periods int, preroll time.Duration) {
	// Line 1: The figure summary (name and source frame)
	fmt.Printf("🌡️ Figure: %s (source: %s, %d rows)\n", figure, source, rows)

	// Line 2: The period count and preroll in effect
	fmt.Printf("📅 Periods: %d (preroll %s)\n", periods, preroll)
}

// LogSpectraHeader prints a header for spectra dataset generation.
func LogSpectraHeader(tempC, emissivity float64) {
	fmt.Printf("🌡️ Graybody source: %.1f°C (emissivity %.2f)\n", tempC, emissivity)
}

// LogAlignmentSpec prints the crossing alignment in effect, if any.
func LogAlignmentSpec(spec *schema.AlignmentSpec) {
	if spec == nil {
		return
	}
	fmt.Printf("🎯 Crossing: %s reaches or drops below %.2f\n", spec.ReferenceColumn, spec.TargetValue)
}
