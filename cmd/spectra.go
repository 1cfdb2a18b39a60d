package cmd

import (
	"github.com/thermoflux/heattrap/core"
	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/spf13/cobra"
)

// spectraCmd generates the radiation spectra datasets.
var spectraCmd = &cobra.Command{
	Use:   "spectra",
	Short: "Generate blackbody and pane transmission spectra datasets.",
	Long: `Generate the graybody emission spectrum and the pane transmission
curves, then summarize how much radiated power each pane material passes.

Writes three CSV datasets into the spectra directory:
- Graybody spectral radiance over 0.1-20 microns
- Borosilicate glass transmission
- Calcium fluoride (CaF2) transmission

The summary table integrates the spectrum against each transmission curve
to show the transmitted power and band fractions.

Examples:
  # Generate with the default 65C source
  heattrap spectra

  # A hotter source shifts the band fractions
  heattrap spectra --temperature 120 --emissivity 0.85

  # Export the summary for the figure caption
  heattrap spectra --output csv --output-file transmission.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSpectra(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate spectra", err)
		}
	},
}
