package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bookfix/internal/logging"
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/runner"
)

type checkFlags struct {
	chapterFlags
	strict bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [dirs...]",
		Short: "Report math delimiter problems without changing files",
		Long: `Report every rule finding in the chapter files. Nothing is written.

The command exits with status 1 when an error or warning is found.
With --strict, info findings fail the run as well.

Examples:
  bookfix check                    # Check part2/ and part3/
  bookfix check --format json      # Machine-readable report
  bookfix check --rule-format id   # Show TX001 instead of rule names`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on info findings too")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	flags.apply(cmd, args, cliCfg)

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	checker, err := newRunner(cfg)
	if err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(cfg, runner.ModeCheck)
	opts.WorkingDir = workDir

	result, err := checker.Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	if err := report(ctx, cmd, cfg, result); err != nil {
		return err
	}

	logger.Debug("check run complete",
		logging.FieldFilesScanned, result.Stats.FilesScanned,
		logging.FieldFindings, result.Stats.FindingsTotal,
	)

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}
