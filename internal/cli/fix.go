package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bookfix/internal/logging"
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/runner"
)

type fixFlags struct {
	chapterFlags
	dryRun    bool
	noBackups bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [dirs...]",
		Short: "Rewrite bracketed display formulas as \\[ ... \\]",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show changes without writing files")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation")

	return cmd
}

const fixLongDescription = `Rewrite display formulas written as a single bracketed line.

A line such as

  [ \sum_{i=1}^n x_i ]

becomes three lines: \[, the formula, and \]. Links, reference
definitions, footnotes, task boxes and citations such as [12] are
never touched, and neither are lines inside fenced code blocks unless
--include-code is given.

Directories are scanned non-recursively (default: part2 part3).

Examples:
  bookfix fix                      # Fix part2/ and part3/
  bookfix fix part4                # Fix another directory
  bookfix fix --dry-run            # List changes without writing
  bookfix fix --dry-run --format diff`

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{DryRun: flags.dryRun, NoBackups: flags.noBackups}
	flags.apply(cmd, args, cliCfg)

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	fixer, err := newRunner(cfg)
	if err != nil {
		return err
	}

	mode := runner.ModeFix
	if cfg.DryRun {
		mode = runner.ModeDryRun
	}
	opts := runner.OptionsFromConfig(cfg, mode)
	opts.WorkingDir = workDir

	logger.Debug("starting fix run",
		logging.FieldMode, mode,
		logging.FieldWorkingDir, workDir,
		logging.FieldBackup, opts.Backups.Enabled,
	)

	result, runErr := fixer.Run(ctx, opts)
	if result != nil {
		if err := report(ctx, cmd, cfg, result); err != nil {
			return errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		return errors.Join(errors.New("fix run failed"), runErr)
	}

	logger.Debug("fix run complete",
		logging.FieldFilesScanned, result.Stats.FilesScanned,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldLinesChanged, result.Stats.LinesChanged,
	)
	return nil
}
