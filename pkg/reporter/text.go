package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/bookfix/internal/ui/pretty"
	"github.com/yaklabco/bookfix/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No chapter files found."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		switch {
		case len(file.Findings) > 0:
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.DisplayPath, len(file.Findings), "issue"))
			for _, finding := range file.Findings {
				fmt.Fprint(r.bw, r.styles.FormatFinding(finding, r.opts.ExcerptWidth, r.opts.RuleFormat))
			}
			total += len(file.Findings)

		case len(file.Changes) > 0:
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.DisplayPath, len(file.Changes), "change"))
			for _, change := range file.Changes {
				fmt.Fprint(r.bw, r.styles.FormatChange(change, r.opts.ExcerptWidth))
			}
			total += len(file.Changes)

		case file.Inserted > 0:
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.DisplayPath, file.Inserted, "output block"))
			total += file.Inserted

		default:
			continue
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result))
	}

	return total, nil
}
