package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bookfix/internal/configloader"
	"github.com/yaklabco/bookfix/internal/logging"
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/latex"
	"github.com/yaklabco/bookfix/pkg/reporter"
	"github.com/yaklabco/bookfix/pkg/runner"
)

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves configuration files, environment and the flags in cliCfg.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// newRunner builds the detector, rewriter and checker described by cfg.
func newRunner(cfg *config.Config) (*runner.Runner, error) {
	rules, _, err := latex.DefaultRuleSet().Configure(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("configure rules: %w", err)
	}

	detector := latex.NewDetector(cfg.FormulaMode)
	return runner.New(
		latex.NewRewriter(rules, detector, cfg.SkipCode()),
		latex.NewChecker(rules, detector, cfg.SkipCode()),
	), nil
}

// report writes result in the configured format to the command's output.
func report(ctx context.Context, cmd *cobra.Command, cfg *config.Config, result *runner.Result) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        colorMode,
		ExcerptWidth: cfg.ExcerptWidth,
		ShowSummary:  true,
		RuleFormat:   cfg.RuleFormat,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// chapterFlags are the discovery flags shared by fix and check.
type chapterFlags struct {
	format      string
	ruleFormat  string
	extensions  []string
	ignore      []string
	includeCode bool
}

func (f *chapterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().StringVar(&f.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "chapter file extensions (default .md)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&f.includeCode, "include-code", false, "also scan lines inside fenced code blocks")
}

// apply copies the flags the user set onto cfg, along with positional directories.
func (f *chapterFlags) apply(cmd *cobra.Command, args []string, cfg *config.Config) {
	if len(args) > 0 {
		cfg.Directories = args
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if f.includeCode {
		skip := false
		cfg.SkipCodeBlocks = &skip
	}
}
