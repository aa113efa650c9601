// Package latex detects and repairs LaTeX display-math delimiters in textbook chapters.
//
// The package holds three pieces driven by one versioned rule set: a Detector that
// recognizes bracket-wrapped formula lines, a Rewriter that turns them into proper
// \[ ... \] blocks, and a Checker that reports every rule violation without editing.
package latex

import (
	"fmt"
	"slices"

	"github.com/yaklabco/bookfix/pkg/config"
)

// RuleSetVersion identifies the detection patterns. Bump it whenever a pattern or
// guard changes so reports from different builds can be compared.
const RuleSetVersion = "1.0.0"

// Rule identifiers.
const (
	RuleBracketDisplayMath  = "TX001"
	RuleDisplayMathOwnLine  = "TX002"
	RuleDisplayMathSpacing  = "TX003"
	RuleBracketCommandStart = "TX004"
	RuleNoDollarMath        = "TX005"
)

// Rule describes one check in the rule set.
type Rule struct {
	ID          string
	Name        string
	Description string

	// Category is the short message attached to every finding and change.
	Category string

	Severity config.Severity
	Fixable  bool
}

// Info converts the rule to the metadata used by config templates.
func (r Rule) Info() config.RuleInfo {
	return config.RuleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Severity:    r.Severity,
		Fixable:     r.Fixable,
	}
}

// RuleSet is an ordered, read-only collection of rules.
type RuleSet struct {
	Version string
	rules   []Rule
}

// defaultRules is the built-in rule table.
//
//nolint:gochecknoglobals // read-only table
var defaultRules = []Rule{
	{
		ID:          RuleBracketDisplayMath,
		Name:        "bracket-display-math",
		Description: "A display formula is wrapped in plain square brackets instead of \\[ and \\].",
		Category:    "bracket display math",
		Severity:    config.SeverityWarning,
		Fixable:     true,
	},
	{
		ID:          RuleDisplayMathOwnLine,
		Name:        "display-math-own-line",
		Description: "A \\[ or \\] display marker touches a word character.",
		Category:    "display math marker glued to text",
		Severity:    config.SeverityWarning,
	},
	{
		ID:          RuleDisplayMathSpacing,
		Name:        "display-math-spacing",
		Description: "A letter sits directly before \\[ or directly after \\].",
		Category:    "missing space around display math",
		Severity:    config.SeverityWarning,
	},
	{
		ID:          RuleBracketCommandStart,
		Name:        "bracket-command-start",
		Description: "A line opens with [ followed by a LaTeX command; the bracket may be a mistyped \\[.",
		Category:    "possible wrong display bracket",
		Severity:    config.SeverityInfo,
	},
	{
		ID:          RuleNoDollarMath,
		Name:        "no-dollar-math",
		Description: "Dollar math delimiters are used; the book uses \\( \\) and \\[ \\].",
		Category:    "dollar math delimiter",
		Severity:    config.SeverityWarning,
	},
}

// DefaultRuleSet returns a fresh copy of the built-in rule set.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Version: RuleSetVersion,
		rules:   slices.Clone(defaultRules),
	}
}

// Rules returns the rules in ID order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.rules)
}

// Lookup finds a rule by ID or name.
func (rs *RuleSet) Lookup(key string) (Rule, bool) {
	if rs == nil {
		return Rule{}, false
	}
	for _, rule := range rs.rules {
		if rule.ID == key || rule.Name == key {
			return rule, true
		}
	}
	return Rule{}, false
}

// Enabled reports whether the rule with the given ID is part of the set.
func (rs *RuleSet) Enabled(id string) bool {
	_, ok := rs.Lookup(id)
	return ok
}

// Configure returns a copy of the set with overrides applied. Disabled rules are
// dropped and severities replaced. Keys matching no rule are returned as unknown.
func (rs *RuleSet) Configure(overrides map[string]config.RuleConfig) (*RuleSet, []string, error) {
	out := &RuleSet{Version: rs.Version}

	known := make(map[string]bool, len(overrides))
	byID := make(map[string]config.RuleConfig, len(overrides))
	for key, rc := range overrides {
		rule, ok := rs.Lookup(key)
		if !ok {
			continue
		}
		known[key] = true
		byID[rule.ID] = mergeRuleConfig(byID[rule.ID], rc)
	}

	for _, rule := range rs.rules {
		rc, ok := byID[rule.ID]
		if ok && rc.Enabled != nil && !*rc.Enabled {
			continue
		}
		if ok && rc.Severity != nil {
			sev := config.Severity(*rc.Severity)
			if !sev.IsValid() {
				return nil, nil, fmt.Errorf("rule %s: invalid severity %q", rule.ID, *rc.Severity)
			}
			rule.Severity = sev
		}
		out.rules = append(out.rules, rule)
	}

	var unknown []string
	for key := range overrides {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)

	return out, unknown, nil
}

func mergeRuleConfig(base, over config.RuleConfig) config.RuleConfig {
	if over.Enabled != nil {
		base.Enabled = over.Enabled
	}
	if over.Severity != nil {
		base.Severity = over.Severity
	}
	return base
}
