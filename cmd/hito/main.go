// This is the main entry point for the hito CLI.
// Build with: go build -o bin/hito ./cmd/hito
// Usage: hito <command> [options]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
