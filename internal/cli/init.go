package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bookfix/internal/configloader"
	"github.com/yaklabco/bookfix/internal/logging"
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/fsutil"
	"github.com/yaklabco/bookfix/pkg/latex"
)

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .bookfix.yml with the default settings",
		Long: `Create a .bookfix.yml configuration file in the current directory.
The file holds the default settings and lists every rule, commented out,
so rules can be disabled or re-severitied by uncommenting them.

An existing file is only replaced with --force, or after confirmation
when running in a terminal.

Examples:
  bookfix init                       Create .bookfix.yml
  bookfix init --output book.yml     Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(commandContext(cmd), cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "output file path")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !configloader.IsInteractive() {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		overwrite, err := configloader.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("%s already exists. Overwrite?", flags.output), false)
		if err != nil {
			return err
		}
		if !overwrite {
			logger.Info("left existing file unchanged", logging.FieldPath, flags.output)
			return nil
		}
	}

	rules := latex.DefaultRuleSet()
	infos := make([]config.RuleInfo, 0, len(rules.Rules()))
	for _, rule := range rules.Rules() {
		infos = append(infos, rule.Info())
	}

	content, err := config.GenerateTemplate(infos)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'bookfix rules' to see all available rules")

	return nil
}
