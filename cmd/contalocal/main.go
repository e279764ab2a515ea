// Package main is the entry point for the contalocal CLI.
package main

import (
	"os"

	"github.com/mfrancor/contalocal/cmd/contalocal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
