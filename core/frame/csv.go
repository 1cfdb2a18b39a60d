package frame

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thermoflux/heattrap/schema"
	"golang.org/x/text/encoding/charmap"
)

// timeLayouts are the timestamp layouts the logger firmware has been seen
// to emit, tried in order for every row.
var timeLayouts = []string{
	schema.DateTimeLayout,
	"2006-01-02 15:04:05.000",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// LoadOptions holds options for loading a logger CSV file.
type LoadOptions struct {
	Name        string             // display name; defaults to the file base name
	SkipRows    int                // preamble rows before the header
	ClockOffset time.Duration      // correction added to every timestamp
	DropEmpty   []string           // drop rows where any of these columns is empty
	Gaps        []schema.TimeRange // logger outages to exclude
}

// DefaultLoadOptions returns the options matching the logger's stock export.
func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{SkipRows: schema.DefaultSkipRows}
}

// Load reads a logger CSV file into an immutable frame.
func Load(path string, opts *LoadOptions) (*schema.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if opts == nil {
		opts = DefaultLoadOptions()
	}
	if opts.Name == "" {
		o := *opts
		o.Name = filepath.Base(path)
		opts = &o
	}
	return LoadFromReader(file, opts)
}

// LoadFromReader reads a logger CSV export from r. The logger writes a
// fixed metadata preamble before the header and uses a degree sign in
// column names, so the bytes are decoded as Latin-1 whenever they are not
// valid UTF-8.
func LoadFromReader(r io.Reader, opts *LoadOptions) (*schema.Frame, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data file as Latin-1: %w", err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip the logger preamble
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("failed to skip preamble row %d: %w", i+1, err)
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	if len(header) < 2 {
		return nil, errors.New("header must contain a timestamp column and at least one sensor column")
	}

	f := &schema.Frame{
		Name:   opts.Name,
		Values: make(map[string][]float64, len(header)-1),
	}
	for _, h := range header[1:] {
		col := strings.TrimSpace(h)
		if col == "" {
			continue
		}
		f.Columns = append(f.Columns, col)
		f.Values[col] = nil
	}

	var prev time.Time
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		ts, ok := parseTimestamp(record[0])
		if !ok {
			// Trailing junk rows after the data block are common
			continue
		}
		ts = ts.Add(opts.ClockOffset)
		if !prev.IsZero() && ts.Before(prev) {
			return nil, fmt.Errorf("frame %q timestamps go backwards at %s", opts.Name, ts.Format(schema.DateTimeLayout))
		}
		prev = ts

		f.Times = append(f.Times, ts)
		idx := 1
		for _, col := range f.Columns {
			v := math.NaN()
			if idx < len(record) {
				v = parseValue(record[idx])
			}
			f.Values[col] = append(f.Values[col], v)
			idx++
		}
	}

	if f.Len() == 0 {
		return nil, fmt.Errorf("frame %q has no data rows", opts.Name)
	}

	if len(opts.DropEmpty) > 0 {
		f, err = DropEmpty(f, opts.DropEmpty)
		if err != nil {
			return nil, err
		}
	}
	if len(opts.Gaps) > 0 {
		f = Exclude(f, opts.Gaps)
	}
	return f, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseValue(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
