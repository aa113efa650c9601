package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bookfix/internal/logging"
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/fsutil"
	"github.com/yaklabco/bookfix/pkg/outputs"
	"github.com/yaklabco/bookfix/pkg/runner"
)

type outputsFlags struct {
	table     string
	dir       string
	language  string
	format    string
	dryRun    bool
	noBackups bool
}

func newOutputsCommand() *cobra.Command {
	flags := &outputsFlags{}

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Insert canned output blocks after Python code samples",
		Long: `Insert the "**Output:**" blocks listed in an outputs table after the
Python code blocks of each chapter, in order.

Code blocks already followed by an output block are skipped, so the
command can be re-run safely. Output blocks left over once a chapter
runs out of code blocks are reported.

The table is YAML:

  files:
    - file: ch01_datasets.md
      outputs:
        - |
          **Output:**
          ...

Examples:
  bookfix outputs                         # outputs.yml into part1/
  bookfix outputs --table canned.yml --dir part1
  bookfix outputs --dry-run --format diff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOutputs(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.table, "table", "", "outputs table file (default outputs.yml)")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "chapter directory (default part1)")
	cmd.Flags().StringVar(&flags.language, "language", "", "code block language receiving outputs (default python)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show insertions without writing files")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation")

	return cmd
}

func runOutputs(cmd *cobra.Command, flags *outputsFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		DryRun:    flags.dryRun,
		NoBackups: flags.noBackups,
		Outputs: config.OutputsConfig{
			Dir:      flags.dir,
			Table:    flags.table,
			Language: flags.language,
		},
	}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	tablePath := cfg.Outputs.Table
	if !filepath.IsAbs(tablePath) {
		tablePath = filepath.Join(workDir, tablePath)
	}

	table, err := outputs.LoadTable(ctx, tablePath)
	if err != nil {
		return fmt.Errorf("load outputs table: %w", err)
	}

	logger.Debug("loaded outputs table",
		logging.FieldPath, tablePath,
		logging.FieldFiles, len(table.Files),
	)

	result, runErr := runner.RunOutputs(ctx, runner.OutputsOptions{
		Dir:        cfg.Outputs.Dir,
		WorkingDir: workDir,
		Table:      table,
		Language:   cfg.Outputs.Language,
		DryRun:     cfg.DryRun,
		Backups: fsutil.BackupConfig{
			Enabled: cfg.BackupsActive(),
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
	})
	if result != nil {
		if err := report(ctx, cmd, cfg, result); err != nil {
			return errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		return errors.Join(errors.New("outputs run failed"), runErr)
	}

	logger.Debug("outputs run complete",
		logging.FieldOutputsInserted, result.Stats.OutputsInserted,
		logging.FieldOutputsLeftover, result.Stats.OutputsLeftover,
	)
	return nil
}
