package config

import (
	"bytes"
	"fmt"
	"strings"
)

// RuleInfo is the rule metadata written into generated templates.
type RuleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Fixable     bool     `json:"fixable"`
}

// GenerateTemplate renders a commented .bookfix.yml with the defaults filled in.
// Each rule in rules is listed, commented out, under the rules key.
func GenerateTemplate(rules []RuleInfo) ([]byte, error) {
	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("# bookfix configuration\n")
	buf.WriteString("# Precedence: flags > BOOKFIX_* env > this file > user config > system config.\n\n")
	buf.Write(body)

	if len(rules) > 0 {
		buf.WriteString("\n# Per-rule overrides, keyed by ID or name:\n")
		buf.WriteString("# rules:\n")
		for _, rule := range rules {
			fixable := ""
			if rule.Fixable {
				fixable = ", fixable"
			}
			fmt.Fprintf(&buf, "#   %s: # %s (%s%s)\n", rule.ID, rule.Name, rule.Severity, fixable)
			fmt.Fprintf(&buf, "#     # %s\n", strings.TrimSpace(rule.Description))
			buf.WriteString("#     enabled: true\n")
		}
	}

	return buf.Bytes(), nil
}
