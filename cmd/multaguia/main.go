// Package main provides the entry point for the multaguia CLI.
package main

import (
	"os"

	"github.com/multaguia/multaguia/cmd/multaguia/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
