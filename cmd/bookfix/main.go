// Package main is the entry point for the bookfix CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/bookfix/internal/cli"
	"github.com/yaklabco/bookfix/internal/logging"
)

// Build-time variables injected via ldflags by the stave build target.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		// ErrIssuesFound only selects the exit code; the report already explains it.
		if !errors.Is(err, cli.ErrIssuesFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitFailure
	}

	return cli.ExitSuccess
}
