package runstore

import (
	"fmt"

	"github.com/thermoflux/heattrap/schema"
)

// PrintArchiveStatus prints run archive status information.
func PrintArchiveStatus(status schema.ArchiveStatus) {
	fmt.Printf("Archive Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format(schema.DateTimeLayout))
		fmt.Printf("Oldest Run: %s\n", status.OldestRun.Format(schema.DateTimeLayout))
		fmt.Printf("Total Periods Processed: %d\n", status.TotalPeriods)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
