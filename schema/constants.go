package schema

import "time"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run archive.
	DatabaseBackend string

	// PeriodStatus represents the processing outcome for a single period.
	PeriodStatus string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All period statuses supported.
const (
	AlignedStatus   PeriodStatus = "aligned"
	UnalignedStatus PeriodStatus = "unaligned"
	SkippedStatus   PeriodStatus = "skipped"
)

// Defaults shared between flag registration and validation.
const (
	// DefaultPreroll is the span of baseline context retained before each
	// period's nominal start.
	DefaultPreroll = 120 * time.Second

	// DefaultSkipRows is the number of logger preamble rows before the CSV
	// header in the data files produced by the thermocouple logger.
	DefaultSkipRows = 3

	// DefaultPrecision is the decimal precision for numeric output columns.
	DefaultPrecision = 2
)

// DateTimeLayout is the timestamp layout used in figure definitions and
// logger CSV files.
const DateTimeLayout = "2006-01-02 15:04:05"
