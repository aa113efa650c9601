package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/bookfix/internal/logging"
	"github.com/yaklabco/bookfix/pkg/diff"
	"github.com/yaklabco/bookfix/pkg/document"
	"github.com/yaklabco/bookfix/pkg/fsutil"
	"github.com/yaklabco/bookfix/pkg/latex"
)

// Runner processes chapters sequentially with a rewriter and a checker.
type Runner struct {
	Rewriter *latex.Rewriter
	Checker  *latex.Checker
}

// New creates a Runner.
func New(rewriter *latex.Rewriter, checker *latex.Checker) *Runner {
	return &Runner{Rewriter: rewriter, Checker: checker}
}

// Run discovers the chapters named by opts and processes each in turn.
// One file is read, transformed, and written before the next is opened.
// A read or write error stops the run; the partial result is returned with it.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	mode := opts.effectiveMode()

	found, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult(mode)
	result.Warnings = found.Warnings
	for _, warning := range found.Warnings {
		logger.Warn(warning)
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	for _, path := range found.Files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run cancelled: %w", err)
		}

		outcome, err := r.processFile(ctx, path, displayPath(workDir, path), mode, opts.Backups)
		if err != nil {
			return result, err
		}
		result.accumulate(*outcome)

		logger.Debug("processed",
			logging.FieldPath, outcome.DisplayPath,
			logging.FieldLinesChanged, len(outcome.Changes),
			logging.FieldFindings, len(outcome.Findings))
	}

	return result, nil
}

func (r *Runner) processFile(
	ctx context.Context,
	path, display string,
	mode Mode,
	backups fsutil.BackupConfig,
) (*FileOutcome, error) {
	doc, info, err := document.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", display, err)
	}

	outcome := &FileOutcome{Path: path, DisplayPath: display}

	if mode == ModeCheck {
		outcome.Findings = r.Checker.Check(doc)
		return outcome, nil
	}

	rewritten := r.Rewriter.Rewrite(doc)
	if !rewritten.Changed() {
		return outcome, nil
	}

	outcome.Changes = rewritten.Changes
	outcome.Diff = diff.FromEdits(display, doc.Lines, changeEdits(rewritten.Changes))

	if !mode.Writes() {
		return outcome, nil
	}

	if err := writeDocument(ctx, rewritten.Document, info, backups, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// writeDocument backs up the original when configured, then saves doc.
func writeDocument(
	ctx context.Context,
	doc *document.Document,
	info *fsutil.FileInfo,
	backups fsutil.BackupConfig,
	outcome *FileOutcome,
) error {
	created, err := fsutil.CreateBackup(ctx, doc.Path, backups)
	if err != nil {
		return fmt.Errorf("backup %s: %w", doc.Path, err)
	}
	if created {
		outcome.BackupPath = fsutil.BackupPath(doc.Path, backups.Mode)
	}

	if err := document.Save(ctx, doc, info); err != nil {
		return fmt.Errorf("save %s: %w", doc.Path, err)
	}
	outcome.Written = true
	return nil
}

func changeEdits(changes []latex.Change) []diff.Edit {
	edits := make([]diff.Edit, 0, len(changes))
	for _, c := range changes {
		edits = append(edits, diff.Edit{Start: c.Line, Remove: 1, Insert: c.Replacement})
	}
	return edits
}

func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
