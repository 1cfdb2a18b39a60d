// Package core has core logic for loading, aligning and exporting figure data.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thermoflux/heattrap/core/align"
	"github.com/thermoflux/heattrap/core/frame"
	"github.com/thermoflux/heattrap/core/smooth"
	"github.com/thermoflux/heattrap/core/spectra"
	"github.com/thermoflux/heattrap/internal"
	"github.com/thermoflux/heattrap/internal/contract"
	"github.com/thermoflux/heattrap/internal/outwriter"
	"github.com/thermoflux/heattrap/schema"
)

// ExecutorFunc defines the function signature for executing different pipeline modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.RunStore) error

// ExecuteAlign runs the aligner for one named figure definition and prints
// the windowed dataset and diagnostics. It serves as the main entry point
// for the 'align' command.
func ExecuteAlign(ctx context.Context, cfg *contract.Config, store contract.RunStore) error {
	if cfg.Figure == "" {
		return errors.New("--figure is required")
	}
	fig, err := cfg.FigureByName(cfg.Figure)
	if err != nil {
		return err
	}

	res, reports, err := buildFigure(cfg, fig)
	if err != nil {
		return err
	}

	out := res
	if len(fig.Windows) > 0 {
		w := fig.Windows[0]
		out = align.ClipAll(res, w.Min, w.Max)
	}

	if err := outwriter.NewOutWriter().WriteAlign(out, reports, cfg); err != nil {
		return err
	}

	archiveRun(ctx, store, fig, reports)
	return nil
}

// ExecuteFigures builds datasets for every configured figure definition,
// writing one file per figure and window into the output directory. It
// serves as the main entry point for the 'figures' command.
func ExecuteFigures(ctx context.Context, cfg *contract.Config, store contract.RunStore) error {
	if len(cfg.Figures) == 0 {
		return errors.New("no figure definitions configured")
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "figures"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ow := outwriter.NewOutWriter()
	for i := range cfg.Figures {
		fig := &cfg.Figures[i]
		res, reports, err := buildFigure(cfg, fig)
		if err != nil {
			return fmt.Errorf("figure %q: %w", fig.Name, err)
		}

		// Per-figure diagnostics go to the terminal regardless of the
		// dataset format.
		textCfg := *cfg
		textCfg.Output = schema.TextOut
		textCfg.OutputFile = ""
		if err := ow.WriteAlign(res, reports, &textCfg); err != nil {
			return fmt.Errorf("figure %q: %w", fig.Name, err)
		}

		if err := writeFigureDatasets(ow, cfg, fig, res, reports, outDir); err != nil {
			return fmt.Errorf("figure %q: %w", fig.Name, err)
		}

		archiveRun(ctx, store, fig, reports)
	}
	return nil
}

// ExecuteSpectra generates the spectra datasets and prints the pane
// transmission summary. It serves as the main entry point for the
// 'spectra' command.
func ExecuteSpectra(_ context.Context, cfg *contract.Config) error {
	dir := cfg.SpectraDir
	if dir == "" {
		dir = "data"
	}
	tempC := cfg.TemperatureC
	if tempC == 0 {
		tempC = spectra.DefaultTemperatureC
	}
	emissivity := cfg.Emissivity
	if emissivity == 0 {
		emissivity = spectra.DefaultEmissivity
	}

	internal.LogSpectraHeader(tempC, emissivity)

	paths, err := spectra.WriteAll(dir, tempC, emissivity)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %d spectra datasets to %s\n", len(paths), dir)

	bb, err := spectra.Blackbody(0.1, 20, spectra.DefaultPoints, tempC+273.15, emissivity)
	if err != nil {
		return err
	}
	boro, err := spectra.Borosilicate(spectra.DefaultPoints)
	if err != nil {
		return err
	}
	caf2, err := spectra.CaF2(spectra.DefaultPoints)
	if err != nil {
		return err
	}

	boroSum, err := spectra.Summarize("borosilicate", bb, boro, tempC, emissivity)
	if err != nil {
		return err
	}
	caf2Sum, err := spectra.Summarize("caf2", bb, caf2, tempC, emissivity)
	if err != nil {
		return err
	}

	summaries := []*schema.TransmissionSummary{boroSum, caf2Sum}
	return outwriter.NewOutWriter().WriteSpectra(summaries, cfg)
}

// buildFigure loads the figure's source frame, applies its corrections, and
// runs the aligner over its periods.
func buildFigure(cfg *contract.Config, fig *contract.FigureSpec) (*schema.AlignResult, []schema.PeriodReport, error) {
	f, err := loadFigureFrame(cfg, fig)
	if err != nil {
		return nil, nil, err
	}

	internal.LogFigureHeader(fig.Name, fig.Source, f.Len(), len(fig.Periods), fig.Preroll)
	internal.LogAlignmentSpec(fig.Alignment)

	periods := make([]schema.Period, 0, len(fig.Periods))
	for _, p := range fig.Periods {
		periods = append(periods, schema.Period{
			Name:    p.Name,
			Source:  f,
			Start:   p.Start,
			End:     p.End,
			Preroll: fig.Preroll,
		})
	}

	res, err := align.Extract(periods, fig.Alignment)
	if err != nil {
		return nil, nil, err
	}
	return res, align.Reports(res), nil
}

// loadFigureFrame loads the figure's source CSV and applies the declared
// in-fill and smoothing corrections.
func loadFigureFrame(cfg *contract.Config, fig *contract.FigureSpec) (*schema.Frame, error) {
	path := fig.Source
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.DataDir, path)
	}

	f, err := frame.Load(path, fig.LoadOptions())
	if err != nil {
		return nil, err
	}

	if fig.Infill != nil {
		f, err = frame.InfillSpan(f, fig.Infill.Column, fig.Infill.From, fig.Infill.To)
		if err != nil {
			return nil, err
		}
	}
	if fig.Smooth != nil {
		f, _, err = smooth.Column(f, fig.Smooth.Column, fig.Smooth.Span)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// writeFigureDatasets clips the result to each declared window and writes
// one dataset file per window. Figures without windows export unclipped.
func writeFigureDatasets(ow *outwriter.OutWriter, cfg *contract.Config, fig *contract.FigureSpec, res *schema.AlignResult, reports []schema.PeriodReport, outDir string) error {
	// Datasets are CSV unless parquet was asked for explicitly.
	outMode, ext := schema.CSVOut, "csv"
	if cfg.Output == schema.ParquetOut {
		outMode, ext = schema.ParquetOut, "parquet"
	}

	windows := fig.Windows
	if len(windows) == 0 {
		windows = []contract.WindowSpec{{}}
	}

	for _, w := range windows {
		out := res
		name := fmt.Sprintf("%s.%s", fig.Name, ext)
		if w.Min != 0 || w.Max != 0 {
			out = align.ClipAll(res, w.Min, w.Max)
			name = fmt.Sprintf("%s_%gs_%gs.%s", fig.Name, w.Min, w.Max, ext)
		}

		fileCfg := *cfg
		fileCfg.Figure = fig.Name
		fileCfg.Output = outMode
		fileCfg.OutputFile = filepath.Join(outDir, name)
		if err := ow.WriteAlign(out, reports, &fileCfg); err != nil {
			return err
		}
	}
	return nil
}

// archiveRun records a completed figure build in the run archive. Archive
// failures never fail the build.
func archiveRun(ctx context.Context, store contract.RunStore, fig *contract.FigureSpec, reports []schema.PeriodReport) {
	if store == nil {
		return
	}

	params := map[string]any{
		"source":  fig.Source,
		"preroll": fig.Preroll.String(),
	}
	if fig.Alignment != nil {
		params["reference_column"] = fig.Alignment.ReferenceColumn
		params["target_value"] = fig.Alignment.TargetValue
	}

	runID, err := store.BeginRun(ctx, fig.Name, time.Now(), params)
	if err != nil {
		contract.LogWarn("archiving figure run", err)
		return
	}
	for _, r := range reports {
		if err := store.RecordPeriod(ctx, runID, r); err != nil {
			contract.LogWarn("archiving period result", err)
			return
		}
	}
	if err := store.EndRun(ctx, runID, time.Now(), len(reports)); err != nil {
		contract.LogWarn("archiving figure run completion", err)
	}
}
