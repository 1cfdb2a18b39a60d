package contract

import (
	"fmt"
	"time"

	"github.com/thermoflux/heattrap/core/frame"
	"github.com/thermoflux/heattrap/schema"
)

// WindowSpec is one display window over the relative-seconds axis.
type WindowSpec struct {
	Min float64
	Max float64
}

// SmoothSpec requests a moving-average companion column.
type SmoothSpec struct {
	Column string
	Span   time.Duration
}

// InfillSpec requests a linear splice over a bad stretch of one column.
type InfillSpec struct {
	Column string
	From   time.Time
	To     time.Time
}

// PeriodSpec is one named experiment segment of a figure definition.
type PeriodSpec struct {
	Name  string
	Start time.Time
	End   time.Time
}

// FigureSpec is one validated figure definition: a source file, its load
// corrections, the experiment periods and the alignment/window parameters.
type FigureSpec struct {
	Name        string
	Source      string
	SkipRows    int
	ClockOffset time.Duration
	DropEmpty   []string
	Gaps        []schema.TimeRange
	Smooth      *SmoothSpec
	Infill      *InfillSpec
	Alignment   *schema.AlignmentSpec
	Preroll     time.Duration
	Windows     []WindowSpec
	Periods     []PeriodSpec
}

// LoadOptions builds the frame loader options for this figure.
func (f *FigureSpec) LoadOptions() *frame.LoadOptions {
	return &frame.LoadOptions{
		Name:        f.Source,
		SkipRows:    f.SkipRows,
		ClockOffset: f.ClockOffset,
		DropEmpty:   f.DropEmpty,
		Gaps:        f.Gaps,
	}
}

// Config holds the runtime configuration for a figure build.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir    string
	OutDir     string
	Figure     string
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	SpectraDir   string
	TemperatureC float64
	Emissivity   float64

	Figures []FigureSpec
}

// FigureByName returns the named figure definition.
func (c *Config) FigureByName(name string) (*FigureSpec, error) {
	for i := range c.Figures {
		if c.Figures[i].Name == name {
			return &c.Figures[i], nil
		}
	}
	return nil, fmt.Errorf("no figure definition named %q", name)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Figure           string  `mapstructure:"figure"`
	Preroll          string  `mapstructure:"preroll"`
	MinSeconds       float64 `mapstructure:"min-seconds"`
	MaxSeconds       float64 `mapstructure:"max-seconds"`
	TargetTemp       float64 `mapstructure:"target-temp"`
	ReferenceColumn  string  `mapstructure:"reference-column"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	OutDir           string  `mapstructure:"out-dir"`
	Precision        int     `mapstructure:"precision"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	ArchiveBackend   string  `mapstructure:"archive-backend"`
	ArchiveDBConnect string  `mapstructure:"archive-db-connect"`

	// --- Fields from spectraCmd.Flags() ---
	SpectraDir   string  `mapstructure:"spectra-dir"`
	TemperatureC float64 `mapstructure:"temperature"`
	Emissivity   float64 `mapstructure:"emissivity"`

	// --- Figure definitions from the YAML config file ---
	Figures []FigureRawInput `mapstructure:"figures"`
}

// FigureRawInput is one unvalidated figure definition from the config file.
type FigureRawInput struct {
	Name            string           `mapstructure:"name"`
	Source          string           `mapstructure:"source"`
	SkipRows        *int             `mapstructure:"skip-rows"`
	ClockOffset     string           `mapstructure:"clock-offset"`
	DropEmpty       []string         `mapstructure:"drop-empty"`
	Gaps            []RangeRawInput  `mapstructure:"gaps"`
	Smooth          *SmoothRawInput  `mapstructure:"smooth"`
	Infill          *InfillRawInput  `mapstructure:"infill"`
	ReferenceColumn string           `mapstructure:"reference-column"`
	TargetTemp      *float64         `mapstructure:"target-temp"`
	Preroll         string           `mapstructure:"preroll"`
	Windows         []WindowRawInput `mapstructure:"windows"`
	Periods         []PeriodRawInput `mapstructure:"periods"`
}

// RangeRawInput is an unvalidated absolute-time range.
type RangeRawInput struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// SmoothRawInput is an unvalidated smoothing request.
type SmoothRawInput struct {
	Column string `mapstructure:"column"`
	Span   string `mapstructure:"span"`
}

// InfillRawInput is an unvalidated in-fill request.
type InfillRawInput struct {
	Column string `mapstructure:"column"`
	From   string `mapstructure:"from"`
	To     string `mapstructure:"to"`
}

// WindowRawInput is an unvalidated display window.
type WindowRawInput struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// PeriodRawInput is an unvalidated period definition.
type PeriodRawInput struct {
	Name  string `mapstructure:"name"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// ProcessAndValidate runs all validation and complex parsing, populating
// cfg from input.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDirStr
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	cfg.OutDir = input.OutDir
	cfg.Figure = input.Figure
	cfg.OutputFile = input.OutputFile
	cfg.UseColors = ParseYesNo(input.Color)
	cfg.SpectraDir = input.SpectraDir
	cfg.TemperatureC = input.TemperatureC
	cfg.Emissivity = input.Emissivity

	switch out := schema.OutputMode(input.Output); out {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
		cfg.Output = out
	default:
		return fmt.Errorf("invalid output mode %q. Must be text, csv, json, or parquet", input.Output)
	}

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("precision %d out of range [0, 10]", input.Precision)
	}
	cfg.Precision = input.Precision
	if input.Width < 0 {
		return fmt.Errorf("width must be non-negative, got %d", input.Width)
	}
	cfg.Width = input.Width

	if input.Emissivity < 0 || input.Emissivity > 1 {
		return fmt.Errorf("emissivity %.2f out of range [0, 1]", input.Emissivity)
	}

	backend := schema.DatabaseBackend(input.ArchiveBackend)
	if input.ArchiveBackend == "" {
		backend = schema.NoneBackend
	}
	if err := ValidateArchiveConnect(backend, input.ArchiveDBConnect); err != nil {
		return err
	}
	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = input.ArchiveDBConnect

	defaultPreroll, err := parseOptionalDuration(input.Preroll, schema.DefaultPreroll)
	if err != nil {
		return fmt.Errorf("invalid preroll: %w", err)
	}

	seen := make(map[string]bool, len(input.Figures))
	for _, raw := range input.Figures {
		spec, err := processFigure(raw, defaultPreroll, input)
		if err != nil {
			return err
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate figure definition %q", spec.Name)
		}
		seen[spec.Name] = true
		cfg.Figures = append(cfg.Figures, *spec)
	}

	if cfg.Figure != "" {
		if _, err := cfg.FigureByName(cfg.Figure); err != nil {
			return err
		}
	}
	return nil
}

// processFigure validates one figure definition, applying the CLI-level
// alignment and window overrides.
func processFigure(raw FigureRawInput, defaultPreroll time.Duration, input *ConfigRawInput) (*FigureSpec, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("figure definition missing a name")
	}
	if raw.Source == "" {
		return nil, fmt.Errorf("figure %q missing a source file", raw.Name)
	}
	if len(raw.Periods) == 0 {
		return nil, fmt.Errorf("figure %q has no periods", raw.Name)
	}

	spec := &FigureSpec{
		Name:      raw.Name,
		Source:    raw.Source,
		SkipRows:  schema.DefaultSkipRows,
		DropEmpty: raw.DropEmpty,
	}
	if raw.SkipRows != nil {
		if *raw.SkipRows < 0 {
			return nil, fmt.Errorf("figure %q has negative skip-rows", raw.Name)
		}
		spec.SkipRows = *raw.SkipRows
	}

	var err error
	if spec.ClockOffset, err = parseOptionalDuration(raw.ClockOffset, 0); err != nil {
		return nil, fmt.Errorf("figure %q clock-offset: %w", raw.Name, err)
	}
	if spec.Preroll, err = parseOptionalDuration(raw.Preroll, defaultPreroll); err != nil {
		return nil, fmt.Errorf("figure %q preroll: %w", raw.Name, err)
	}
	if spec.Preroll < 0 {
		return nil, fmt.Errorf("figure %q has negative preroll", raw.Name)
	}

	for _, g := range raw.Gaps {
		r, err := parseRange(g.Start, g.End)
		if err != nil {
			return nil, fmt.Errorf("figure %q gap: %w", raw.Name, err)
		}
		spec.Gaps = append(spec.Gaps, r)
	}

	if raw.Smooth != nil {
		if raw.Smooth.Column == "" {
			return nil, fmt.Errorf("figure %q smooth spec missing a column", raw.Name)
		}
		span, err := parseOptionalDuration(raw.Smooth.Span, 15*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("figure %q smooth span: %w", raw.Name, err)
		}
		spec.Smooth = &SmoothSpec{Column: raw.Smooth.Column, Span: span}
	}

	if raw.Infill != nil {
		from, err := parseDateTime(raw.Infill.From)
		if err != nil {
			return nil, fmt.Errorf("figure %q infill from: %w", raw.Name, err)
		}
		to, err := parseDateTime(raw.Infill.To)
		if err != nil {
			return nil, fmt.Errorf("figure %q infill to: %w", raw.Name, err)
		}
		if !from.Before(to) {
			return nil, fmt.Errorf("figure %q infill span is empty", raw.Name)
		}
		spec.Infill = &InfillSpec{Column: raw.Infill.Column, From: from, To: to}
	}

	// CLI flags override the figure's own alignment spec
	refCol, target := raw.ReferenceColumn, raw.TargetTemp
	if input.ReferenceColumn != "" {
		refCol = input.ReferenceColumn
	}
	if input.TargetTemp != 0 {
		t := input.TargetTemp
		target = &t
	}
	if refCol != "" && target != nil {
		spec.Alignment = &schema.AlignmentSpec{ReferenceColumn: refCol, TargetValue: *target}
	} else if refCol != "" || target != nil {
		return nil, fmt.Errorf("figure %q alignment needs both reference-column and target-temp", raw.Name)
	}

	for _, w := range raw.Windows {
		if w.Min >= w.Max {
			return nil, fmt.Errorf("figure %q window [%.0f, %.0f] is empty", raw.Name, w.Min, w.Max)
		}
		spec.Windows = append(spec.Windows, WindowSpec{Min: w.Min, Max: w.Max})
	}
	if input.MinSeconds != 0 || input.MaxSeconds != 0 {
		if input.MinSeconds >= input.MaxSeconds {
			return nil, fmt.Errorf("window [%.0f, %.0f] is empty", input.MinSeconds, input.MaxSeconds)
		}
		spec.Windows = []WindowSpec{{Min: input.MinSeconds, Max: input.MaxSeconds}}
	}

	names := make(map[string]bool, len(raw.Periods))
	for _, p := range raw.Periods {
		if p.Name == "" {
			return nil, fmt.Errorf("figure %q has a period without a name", raw.Name)
		}
		if names[p.Name] {
			return nil, fmt.Errorf("figure %q has duplicate period %q", raw.Name, p.Name)
		}
		names[p.Name] = true
		r, err := parseRange(p.Start, p.End)
		if err != nil {
			return nil, fmt.Errorf("figure %q period %q: %w", raw.Name, p.Name, err)
		}
		spec.Periods = append(spec.Periods, PeriodSpec{Name: p.Name, Start: r.Start, End: r.End})
	}
	return spec, nil
}

func parseDateTime(s string) (time.Time, error) {
	ts, err := time.Parse(schema.DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (want %s)", s, schema.DateTimeLayout)
	}
	return ts, nil
}

func parseRange(start, end string) (schema.TimeRange, error) {
	s, err := parseDateTime(start)
	if err != nil {
		return schema.TimeRange{}, err
	}
	e, err := parseDateTime(end)
	if err != nil {
		return schema.TimeRange{}, err
	}
	if !s.Before(e) {
		return schema.TimeRange{}, fmt.Errorf("range start %q is not before end %q", start, end)
	}
	return schema.TimeRange{Start: s, End: e}, nil
}

func parseOptionalDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
