package runner

import (
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/diff"
	"github.com/yaklabco/bookfix/pkg/latex"
)

// FileOutcome is the result of processing one chapter.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// DisplayPath is Path relative to the working directory when possible.
	DisplayPath string

	// Changes holds the rewritten lines (fix and dry-run).
	Changes []latex.Change

	// Findings holds rule violations (check).
	Findings []latex.Finding

	// Inserted is the number of output blocks injected (outputs).
	Inserted int

	// Leftover is the number of output blocks with no remaining target (outputs).
	Leftover int

	// Diff is the unified diff of the change, nil when nothing changed.
	Diff *diff.Diff

	// Written is true when the file was rewritten on disk.
	Written bool

	// BackupPath is set when a backup was created before writing.
	BackupPath string
}

// Changed reports whether the outcome modified the document.
func (o *FileOutcome) Changed() bool {
	return len(o.Changes) > 0 || o.Inserted > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesScanned int
	FilesChanged int
	FilesWritten int

	// LinesChanged counts original lines replaced.
	LinesChanged int

	FindingsTotal      int
	FindingsBySeverity map[config.Severity]int
	FilesWithFindings  int

	OutputsInserted int
	OutputsLeftover int
}

// Result is the overall outcome of a run.
type Result struct {
	Mode Mode

	// RuleSetVersion identifies the patterns the run used.
	RuleSetVersion string

	// Files are in path order.
	Files []FileOutcome

	Stats Stats

	// Warnings describe inputs that were skipped.
	Warnings []string
}

func newResult(mode Mode) *Result {
	return &Result{
		Mode:           mode,
		RuleSetVersion: latex.RuleSetVersion,
		Stats: Stats{
			FindingsBySeverity: make(map[config.Severity]int),
		},
	}
}

// HasFindings reports whether any finding at or above min severity was recorded.
// Severity order is info < warning < error.
func (r *Result) HasFindings(minSeverity config.Severity) bool {
	if r == nil {
		return false
	}
	for sev, n := range r.Stats.FindingsBySeverity {
		if n > 0 && severityRank(sev) >= severityRank(minSeverity) {
			return true
		}
	}
	return false
}

// HasChanges reports whether any file changed.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

func severityRank(s config.Severity) int {
	switch s {
	case config.SeverityError:
		return 2
	case config.SeverityWarning:
		return 1
	default:
		return 0
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.FilesScanned++

	if outcome.Changed() {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	r.Stats.LinesChanged += len(outcome.Changes)
	r.Stats.OutputsInserted += outcome.Inserted
	r.Stats.OutputsLeftover += outcome.Leftover

	if len(outcome.Findings) > 0 {
		r.Stats.FilesWithFindings++
	}
	for _, f := range outcome.Findings {
		r.Stats.FindingsTotal++
		r.Stats.FindingsBySeverity[f.Severity]++
	}
}
