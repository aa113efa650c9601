// Package reporter prints run results as text, JSON or unified diffs.
package reporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/runner"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Format names a report layout.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDiff Format = "diff"
)

// constructors maps each format to its reporter.
//
//nolint:gochecknoglobals // Read-only lookup table.
var constructors = map[Format]func(Options) Reporter{
	FormatText: func(o Options) Reporter { return NewTextReporter(o) },
	FormatJSON: func(o Options) Reporter { return NewJSONReporter(o) },
	FormatDiff: func(o Options) Reporter { return NewDiffReporter(o) },
}

// ParseFormat maps a --format value to a Format. Empty means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	f := Format(name)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff", name)
	}
	return f, nil
}

// IsValid reports whether f has a reporter.
func (f Format) IsValid() bool {
	_, ok := constructors[f]
	return ok
}

// Options configures a Reporter.
type Options struct {
	Writer       io.Writer
	Format       Format
	Color        string // auto, always or never
	ExcerptWidth int    // display cells; 0 disables truncation
	ShowSummary  bool
	RuleFormat   config.RuleFormat
}

// DefaultOptions returns text output to stdout with a summary.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ExcerptWidth: config.DefaultExcerptWidth,
		ShowSummary:  true,
		RuleFormat:   config.RuleFormatName,
	}
}

// Reporter writes a run result.
type Reporter interface {
	// Report writes result and returns how many items (changes, findings or
	// diffs) it printed.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("unsupported format: %w", err)
	}
	return constructors[format](opts), nil
}
