package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bookfix/internal/ui/pretty"
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/latex"
)

const formatJSON = "json"

// rulesOutput is the JSON form of the rule set.
type rulesOutput struct {
	Version string            `json:"version"`
	Rules   []config.RuleInfo `json:"rules"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule set",
		Long: `List every rule with its ID, name, default severity, whether
"bookfix fix" repairs it, and a description. The rule set version
identifies the exact patterns in use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := latex.DefaultRuleSet()
			out := cmd.OutOrStdout()

			switch format {
			case formatJSON:
				return outputRulesJSON(out, rules)
			case "text", "":
				colorMode, err := cmd.Flags().GetString("color")
				if err != nil {
					colorMode = "auto"
				}
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
				_, err = fmt.Fprint(out, styles.FormatRulesTable(rules))
				return err
			default:
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func outputRulesJSON(w io.Writer, rules *latex.RuleSet) error {
	payload := rulesOutput{Version: rules.Version}
	for _, rule := range rules.Rules() {
		payload.Rules = append(payload.Rules, rule.Info())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
