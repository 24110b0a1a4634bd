// Package main provides the pipeforge CLI entry point.
package main

import (
	"os"

	"github.com/pipeforge-labs/pipeforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
