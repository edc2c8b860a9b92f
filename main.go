// Package main is the entry point for the tickctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tickctl/tickctl/cmd"
	"github.com/tickctl/tickctl/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
