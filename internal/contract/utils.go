package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/thermoflux/heattrap/schema"
)

// Color variables for console output.
var (
	AlignedColor   = color.New(color.FgGreen)           // alignedColor marks a period anchored at its crossing.
	UnalignedColor = color.New(color.FgYellow)          // unalignedColor marks a period on the preroll axis only.
	SkippedColor   = color.New(color.FgRed, color.Bold) // skippedColor marks a period that retained no samples.
)

// GetPlainStatus returns the plain text label for a period status. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainStatus(status schema.PeriodStatus) string {
	return string(status)
}

// GetColorStatus returns a colored status label for console output (table).
// It uses GetPlainStatus to determine the string, and then applies the
// appropriate color.
func GetColorStatus(status schema.PeriodStatus) string {
	text := GetPlainStatus(status)

	switch status {
	case schema.AlignedStatus:
		return AlignedColor.Sprint(text)
	case schema.SkippedStatus:
		return SkippedColor.Sprint(text)
	default: // "unaligned"
		return UnalignedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ArchiveDBFilePath returns the path to the SQLite DB file for run archiving.
func ArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".heattrap_archive.db"
	}
	return filepath.Join(homeDir, ".heattrap_archive.db")
}

// ValidateArchiveConnect checks the backend / connection string pairing
// before anything touches the database.
func ValidateArchiveConnect(backend schema.DatabaseBackend, connect string) error {
	switch backend {
	case schema.NoneBackend:
		return nil
	case schema.SQLiteBackend:
		// SQLite defaults to a file in the home directory.
		return nil
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connect == "" {
			return fmt.Errorf("archive backend %s requires a connection string", backend)
		}
		return nil
	default:
		return fmt.Errorf("invalid archive backend %q. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// TruncateName truncates a period or column name to a maximum width with
// ellipsis suffix. Requires maxWidth > 3 so there is space for both the
// "..." and at least one character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseYesNo parses a yes/no style string into a boolean. Accepts "yes",
// "no", "true", "false", "1", "0" (case-insensitive). Anything else is
// treated as false.
func ParseYesNo(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
