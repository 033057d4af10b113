// Command photodedup is the CLI entry point: one subcommand per
// invocation. Built with cobra rather than the stdlib flag package.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
