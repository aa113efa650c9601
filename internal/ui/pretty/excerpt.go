package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/latex"
)

// ellipsis marks a truncated excerpt.
const ellipsis = "..."

// Truncate shortens s to at most width display cells, ending in "..." when cut.
// A width of zero or less disables truncation.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// FormatFileHeader formats a file header, with a count when count > 0.
func (s *Styles) FormatFileHeader(path string, count int, noun string) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, noun)))
	}
	return header
}

// FormatChange formats one rewritten line: line number, category and excerpt.
func (s *Styles) FormatChange(change latex.Change, width int) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.Location.Render(fmt.Sprintf("%4d", change.Line)),
		s.Message.Render(change.Category),
		s.Excerpt.Render(Truncate(strings.TrimSpace(change.Original), width)),
	)
}

// FormatFinding formats one finding with its severity and rule identifier.
func (s *Styles) FormatFinding(finding latex.Finding, width int, ruleFormat config.RuleFormat) string {
	rule := ruleFormat.Label(finding.RuleID, finding.RuleName)
	line := fmt.Sprintf("  %s  %s  %s  %s",
		s.Location.Render(fmt.Sprintf("%4d", finding.Line)),
		s.FormatSeverity(finding.Severity),
		s.Message.Render(finding.Message),
		s.RuleID.Render("("+rule+")"),
	)
	if finding.Fixable {
		line += " " + s.Fixable.Render("[fixable]")
	}
	return line + "\n      " + s.Excerpt.Render(Truncate(finding.Excerpt, width)) + "\n"
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	switch {
	case strings.HasSuffix(noun, "x"), strings.HasSuffix(noun, "s"):
		return noun + "es"
	default:
		return noun + "s"
	}
}
