// main holds the entry logic for the heattrap CLI.
package main

import (
	"github.com/thermoflux/heattrap/cmd"
	"github.com/thermoflux/heattrap/internal"
)

func main() {
	if err := cmd.Execute(); err != nil {
		internal.FatalError("Command failed", err)
	}
}
