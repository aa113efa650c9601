// Package cli provides the Cobra command structure for bookfix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bookfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root bookfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "bookfix",
		Short: "Keep textbook chapters' math delimiters and code outputs consistent",
		Long: `bookfix maintains the Markdown chapters of a statistics textbook.

It rewrites display formulas written as a bracketed line ("[ x^2 ]") into
the \[ ... \] form the book's renderer expects, reports other delimiter
problems, and inserts canned "**Output:**" blocks after Python code samples.

With no configuration it processes part2/ and part3/ *.md files in place.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newOutputsCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
