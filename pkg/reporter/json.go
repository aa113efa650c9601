package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/bookfix/pkg/latex"
	"github.com/yaklabco/bookfix/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Mode           string           `json:"mode"`
	RuleSetVersion string           `json:"ruleSetVersion"`
	Files          []JSONFileResult `json:"files"`
	Warnings       []string         `json:"warnings,omitempty"`
	Summary        JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string          `json:"path"`
	Changes  []latex.Change  `json:"changes,omitempty"`
	Findings []latex.Finding `json:"findings,omitempty"`
	Inserted int             `json:"outputsInserted,omitempty"`
	Leftover int             `json:"outputsLeftover,omitempty"`
	Written  bool            `json:"written"`
	Backup   string          `json:"backup,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesScanned      int            `json:"filesScanned"`
	FilesChanged      int            `json:"filesChanged"`
	FilesWritten      int            `json:"filesWritten"`
	LinesChanged      int            `json:"linesChanged"`
	FilesWithFindings int            `json:"filesWithFindings"`
	TotalFindings     int            `json:"totalFindings"`
	BySeverity        map[string]int `json:"bySeverity"`
	OutputsInserted   int            `json:"outputsInserted"`
	OutputsLeftover   int            `json:"outputsLeftover"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Every scanned file appears in the output.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{
		Files: []JSONFileResult{},
		Summary: JSONSummary{
			BySeverity: map[string]int{},
		},
	}

	var total int
	if result != nil {
		output.Mode = string(result.Mode)
		output.RuleSetVersion = result.RuleSetVersion
		output.Warnings = result.Warnings
		output.Summary = summarize(result.Stats)

		for _, file := range result.Files {
			output.Files = append(output.Files, JSONFileResult{
				Path:     file.DisplayPath,
				Changes:  file.Changes,
				Findings: file.Findings,
				Inserted: file.Inserted,
				Leftover: file.Leftover,
				Written:  file.Written,
				Backup:   file.BackupPath,
			})
			total += len(file.Changes) + len(file.Findings) + file.Inserted
		}
	}

	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}

	return total, nil
}

func summarize(stats runner.Stats) JSONSummary {
	bySeverity := make(map[string]int, len(stats.FindingsBySeverity))
	for sev, n := range stats.FindingsBySeverity {
		bySeverity[string(sev)] = n
	}
	return JSONSummary{
		FilesScanned:      stats.FilesScanned,
		FilesChanged:      stats.FilesChanged,
		FilesWritten:      stats.FilesWritten,
		LinesChanged:      stats.LinesChanged,
		FilesWithFindings: stats.FilesWithFindings,
		TotalFindings:     stats.FindingsTotal,
		BySeverity:        bySeverity,
		OutputsInserted:   stats.OutputsInserted,
		OutputsLeftover:   stats.OutputsLeftover,
	}
}
