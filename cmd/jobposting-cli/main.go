// Package main provides the command-line entry point for running the job
// posting pipeline on local files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
