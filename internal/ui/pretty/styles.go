// Package pretty renders bookfix reports with Lipgloss styles.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indices.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGrey   = "8"
	colorSilver = "7"
)

// Styles holds the renderers used by the report printers and help output.
type Styles struct {
	Error, Warning, Info lipgloss.Style

	FilePath, Location, RuleID, Message, Excerpt lipgloss.Style

	DiffHeader, DiffHunk, DiffAdd, DiffRemove, DiffContext lipgloss.Style

	SummaryTitle, Success lipgloss.Style

	TableHeader, TableBorder, Fixable lipgloss.Style

	Dim, Bold lipgloss.Style
}

// NewStyles builds the style set. With color disabled every style renders its
// input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return style
		}
		return style.Bold(true)
	}
	plain := lipgloss.NewStyle()

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Info:    bold(fg(colorBlue)),

		FilePath: bold(plain),
		Location: fg(colorGrey),
		RuleID:   fg(colorGrey),
		Message:  plain,
		Excerpt:  fg(colorSilver),

		DiffHeader:  bold(plain),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGrey),

		SummaryTitle: bold(plain),
		Success:      bold(fg(colorGreen)),

		TableHeader: bold(fg(colorSilver)),
		TableBorder: fg(colorGrey),
		Fixable:     fg(colorGreen),

		Dim:  fg(colorGrey),
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never" are
// absolute; anything else means auto: color only on a terminal with NO_COLOR unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
