// Package main is the entry point for the confed application.
package main

import (
	"os"

	"github.com/billie-coop/confed/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
