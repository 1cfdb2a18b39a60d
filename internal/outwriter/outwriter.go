// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAlign prints aligner results using the configured output format.
func (ow *OutWriter) WriteAlign(res *schema.AlignResult, reports []schema.PeriodReport, cfg *contract.Config) error {
	return PrintAlignResults(res, reports, cfg)
}

// WriteSpectra prints spectra transmission summaries using the configured output format.
func (ow *OutWriter) WriteSpectra(summaries []*schema.TransmissionSummary, cfg *contract.Config) error {
	return PrintSpectraResults(summaries, cfg)
}

// WriteArchiveRuns prints archived figure runs using the configured output format.
func (ow *OutWriter) WriteArchiveRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return PrintArchiveRuns(runs, cfg)
}

// GetMaxPeriodWidth calculates the maximum width for period names in table
// output based on terminal width.
func GetMaxPeriodWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns (Samples, First, Last, Shift,
	// Status) plus table borders, separators, and padding.
	baseWidth := 50

	// Calculate available space for the period name
	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable period name width
		return 12
	}
	if available > 50 {
		// Maximum name width to keep tables compact
		return 50
	}
	return available
}
