// Package main is the entry point for the ci CLI.
package main

import (
	"os"

	"github.com/thoreinstein/ci/cmd/ci/commands"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/legacy"
)

func main() {
	// Invocation through a legacy symlink maps to the current command.
	os.Args = legacy.RewriteArgs(os.Args)

	if err := commands.Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
