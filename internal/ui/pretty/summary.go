package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line suited to the run mode.
// Examples:
//
//	"Fixed 3 lines in 2 files (14 files scanned)"
//	"4 issues (3 warnings, 1 info) in 2 files (14 files scanned)"
func (s *Styles) FormatSummaryOneLine(result *runner.Result) string {
	stats := result.Stats
	scanned := s.Dim.Render(fmt.Sprintf(" (%d %s scanned)", stats.FilesScanned, plural(stats.FilesScanned, "file")))

	switch {
	case stats.OutputsInserted > 0 || stats.OutputsLeftover > 0:
		verb := "Inserted"
		if result.Mode == runner.ModeDryRun {
			verb = "Would insert"
		}
		msg := s.Success.Render(fmt.Sprintf("%s %d output %s in %d %s", verb,
			stats.OutputsInserted, plural(stats.OutputsInserted, "block"),
			stats.FilesChanged, plural(stats.FilesChanged, "file")))
		if stats.OutputsLeftover > 0 {
			msg += ", " + s.Warning.Render(fmt.Sprintf("%d unplaced", stats.OutputsLeftover))
		}
		return msg + scanned + "\n"

	case result.Mode == runner.ModeCheck:
		return s.formatFindingsSummary(stats) + scanned + "\n"

	case stats.LinesChanged == 0:
		return s.Success.Render("Nothing to fix") + scanned + "\n"

	default:
		verb := "Fixed"
		if result.Mode == runner.ModeDryRun {
			verb = "Would fix"
		}
		return s.Success.Render(fmt.Sprintf("%s %d %s in %d %s", verb,
			stats.LinesChanged, plural(stats.LinesChanged, "line"),
			stats.FilesChanged, plural(stats.FilesChanged, "file"))) + scanned + "\n"
	}
}

func (s *Styles) formatFindingsSummary(stats runner.Stats) string {
	if stats.FindingsTotal == 0 {
		return s.Success.Render("No issues found")
	}

	var parts []string
	if n := stats.FindingsBySeverity[config.SeverityError]; n > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error"))))
	}
	if n := stats.FindingsBySeverity[config.SeverityWarning]; n > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning"))))
	}
	if n := stats.FindingsBySeverity[config.SeverityInfo]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	return fmt.Sprintf("%d %s (%s) in %d %s",
		stats.FindingsTotal, plural(stats.FindingsTotal, "issue"),
		strings.Join(parts, ", "),
		stats.FilesWithFindings, plural(stats.FilesWithFindings, "file"))
}
