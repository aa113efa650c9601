package cli

import (
	"errors"

	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/runner"
)

// ErrIssuesFound is returned by check when findings fail the run.
// It only selects the exit code and is not logged.
var ErrIssuesFound = errors.New("issues found")

// Exit codes for bookfix.
const (
	// ExitSuccess indicates successful execution with no failing findings.
	ExitSuccess = 0

	// ExitFailure indicates failing findings or a command error.
	ExitFailure = 1
)

// ExitCodeFromResult determines the check exit code.
// Errors and warnings fail the run; strict mode also fails on info findings.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	minSeverity := config.SeverityWarning
	if strict {
		minSeverity = config.SeverityInfo
	}
	if result.HasFindings(minSeverity) {
		return ExitFailure
	}
	return ExitSuccess
}

