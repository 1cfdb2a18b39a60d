package cmd

import (
	"github.com/thermoflux/heattrap/core"
	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/spf13/cobra"
)

// figuresCmd builds every configured figure dataset in one pass.
var figuresCmd = &cobra.Command{
	Use:   "figures [data-dir]",
	Short: "Build dataset files for every configured figure.",
	Long: `Build every figure definition from the config file, writing one dataset
file per figure and window into the output directory.

For each figure this loads the source export, applies the declared
corrections (clock offset, gap exclusion, in-fill, smoothing), aligns the
periods and clips the result to each declared window. Diagnostics print to
the terminal while the dataset files land in --out-dir.

Examples:
  # Build everything declared in .heattrap.yaml
  heattrap figures

  # Write Parquet datasets into a custom directory
  heattrap figures --output parquet --out-dir build/figures

  # Archive run history while building
  heattrap figures --archive-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFigures(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot build figures", err)
		}
	},
}
