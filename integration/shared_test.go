//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	// sharedHeattrapPath holds the path to a shared heattrap binary built once for all tests.
	sharedHeattrapPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getHeattrapBinary returns the path to the heattrap binary, building it once if needed.
func getHeattrapBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "heattrap-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		heattrapPath := filepath.Join(tempDir, "heattrap")
		buildCmd := exec.Command("go", "build", "-o", heattrapPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build heattrap: %v", err))
		}

		sharedHeattrapPath = heattrapPath
	})

	return sharedHeattrapPath
}

// writeFixture creates a working directory holding a logger export and a
// figure config, and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	t0 := time.Date(2023, 10, 17, 12, 0, 0, 0, time.UTC)
	var b strings.Builder
	b.WriteString("Logger Model,TC-08\n")
	b.WriteString("Firmware,2.1\n")
	b.WriteString("Export,raw\n")
	b.WriteString("Timestamp,Oven Air,Box Air\n")
	for off := -300 * time.Second; off <= 900*time.Second; off += 10 * time.Second {
		oven := 50.0
		if off >= 50*time.Second {
			oven = 40.0
		}
		b.WriteString(fmt.Sprintf("%s,%.2f,%.3f\n",
			t0.Add(off).Format("2006-01-02 15:04:05"), oven, 21.0+float64(off/time.Second)/1000.0))
	}
	if err := os.WriteFile(filepath.Join(dir, "oven_log.csv"), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("failed to write fixture export: %v", err)
	}

	config := `output: text
figures:
  - name: figure2
    source: oven_log.csv
    reference-column: Oven Air
    target-temp: 45
    preroll: 2m
    windows:
      - min: -120
        max: 600
    periods:
      - name: single pane
        start: 2023-10-17 12:00:00
        end: 2023-10-17 12:10:00
`
	if err := os.WriteFile(filepath.Join(dir, ".heattrap.yaml"), []byte(config), 0o644); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}
	return dir
}

// runHeattrapCommand runs the shared binary inside dir and logs output on failure.
func runHeattrapCommand(t *testing.T, dir string, args ...string) error {
	heattrapPath := getHeattrapBinary()
	cmd := exec.Command(heattrapPath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
