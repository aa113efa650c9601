package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yaklabco/bookfix/internal/logging"
	"github.com/yaklabco/bookfix/pkg/diff"
	"github.com/yaklabco/bookfix/pkg/document"
	"github.com/yaklabco/bookfix/pkg/fsutil"
	"github.com/yaklabco/bookfix/pkg/outputs"
)

// OutputsOptions controls an output injection run.
type OutputsOptions struct {
	// Dir is the chapter directory table file names are resolved against.
	Dir string

	// WorkingDir resolves a relative Dir. Empty means the process working directory.
	WorkingDir string

	Table *outputs.Table

	// Language is the code block language receiving output blocks.
	Language string

	DryRun bool

	Backups fsutil.BackupConfig
}

// RunOutputs injects the table's output blocks into each listed chapter, in table order.
// A chapter that does not exist produces a warning and is skipped.
func RunOutputs(ctx context.Context, opts OutputsOptions) (*Result, error) {
	logger := logging.FromContext(ctx)

	mode := ModeFix
	if opts.DryRun {
		mode = ModeDryRun
	}
	result := newResult(mode)

	if opts.Table == nil {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	injector := outputs.NewInjector(opts.Language)

	for _, entry := range opts.Table.Files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run cancelled: %w", err)
		}

		path := filepath.Join(absPath(workDir, opts.Dir), filepath.FromSlash(entry.File))
		display := displayPath(workDir, path)

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			warning := fmt.Sprintf("file not found: %s", display)
			result.Warnings = append(result.Warnings, warning)
			logger.Warn(warning)
			continue
		}

		outcome, err := injectFile(ctx, injector, path, display, entry.Outputs, mode, opts.Backups)
		if err != nil {
			return result, err
		}
		if outcome.Leftover > 0 {
			warning := fmt.Sprintf("%s: %d output block(s) had no code block left to follow", display, outcome.Leftover)
			result.Warnings = append(result.Warnings, warning)
			logger.Warn(warning)
		}
		result.accumulate(*outcome)

		logger.Debug("processed",
			logging.FieldPath, display,
			logging.FieldOutputsInserted, outcome.Inserted,
			logging.FieldOutputsLeftover, outcome.Leftover)
	}

	return result, nil
}

func injectFile(
	ctx context.Context,
	injector *outputs.Injector,
	path, display string,
	blocks []string,
	mode Mode,
	backups fsutil.BackupConfig,
) (*FileOutcome, error) {
	doc, info, err := document.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", display, err)
	}

	injected := injector.Inject(doc, blocks)
	outcome := &FileOutcome{
		Path:        path,
		DisplayPath: display,
		Inserted:    injected.Inserted,
		Leftover:    len(injected.Leftover),
	}
	if !injected.Changed() {
		return outcome, nil
	}

	edits := make([]diff.Edit, 0, len(injected.Insertions))
	for _, ins := range injected.Insertions {
		edits = append(edits, diff.Edit{Start: ins.After + 1, Insert: ins.Lines})
	}
	outcome.Diff = diff.FromEdits(display, doc.Lines, edits)

	if !mode.Writes() {
		return outcome, nil
	}

	if err := writeDocument(ctx, injected.Document, info, backups, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}
