package cmd

import (
	"github.com/thermoflux/heattrap/core"
	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/spf13/cobra"
)

// alignCmd builds one figure's aligned dataset.
var alignCmd = &cobra.Command{
	Use:   "align [data-dir]",
	Short: "Slice one figure's periods onto a shared relative-seconds axis.",
	Long: `Load a logger export, slice out the figure's experiment periods and
re-express them on a relative-seconds axis.

Each period keeps the samples from its pre-roll lead-in through its end, with
the first retained sample at -preroll seconds. When the figure declares a
reference crossing, every period is shifted so the first sample at or below
the target lands at zero; if any period never crosses, the shift is skipped
for all of them and a warning is printed.

Examples:
  # Build the configured figure and review the period table
  heattrap align --figure figure2

  # Override the crossing from the command line
  heattrap align --figure figure2 --reference-column "Oven Air" --target-temp 45

  # Clip the axis and export the long-format dataset
  heattrap align --figure figure2 --min-seconds -120 --max-seconds 600 \
    --output csv --output-file figure2.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAlign(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot build figure", err)
		}
	},
}
