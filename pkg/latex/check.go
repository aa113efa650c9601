package latex

import (
	"regexp"
	"strings"

	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/document"
)

//nolint:gochecknoglobals // compiled patterns, read-only
var (
	ownLineRe      = regexp.MustCompile(`\w\\\[|\\\]\w`)
	spacingRe      = regexp.MustCompile(`[A-Za-z]\\\[|\\\][A-Za-z]`)
	commandStartRe = regexp.MustCompile(`^\s*\[\s*\\`)
	dollarMathRe   = regexp.MustCompile(`\$\$|(?:^|[^\\$])\$[^\s$\d](?:[^$]*[^\s$\\])?\$`)
	inlineCodeRe   = regexp.MustCompile("`[^`]*`")
)

// Finding reports one rule violation on one line.
type Finding struct {
	// Line is the 1-based line number.
	Line int `json:"line"`

	RuleID   string          `json:"rule_id"`
	RuleName string          `json:"rule_name"`
	Message  string          `json:"message"`
	Severity config.Severity `json:"severity"`

	// Excerpt is the offending line without surrounding whitespace.
	Excerpt string `json:"excerpt"`

	Fixable bool `json:"fixable"`
}

// Checker reports every rule of a rule set against a document without editing it.
type Checker struct {
	rules    *RuleSet
	detector *Detector

	// SkipCodeBlocks ignores lines inside fenced code blocks.
	SkipCodeBlocks bool
}

// NewChecker creates a checker. A nil rule set means DefaultRuleSet.
func NewChecker(rules *RuleSet, detector *Detector, skipCodeBlocks bool) *Checker {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if detector == nil {
		detector = NewDetector("")
	}
	return &Checker{
		rules:          rules,
		detector:       detector,
		SkipCodeBlocks: skipCodeBlocks,
	}
}

// Check returns findings ordered by line, then by rule ID.
func (c *Checker) Check(doc *document.Document) []Finding {
	var findings []Finding
	var fence fenceTracker

	for i, line := range doc.Lines {
		if fence.step(line) && c.SkipCodeBlocks {
			continue
		}
		findings = append(findings, c.checkLine(i+1, line)...)
	}

	return findings
}

func (c *Checker) checkLine(lineNum int, line string) []Finding {
	var findings []Finding
	report := func(id string) bool {
		rule, ok := c.rules.Lookup(id)
		if !ok {
			return false
		}
		findings = append(findings, Finding{
			Line:     lineNum,
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Message:  rule.Category,
			Severity: rule.Severity,
			Excerpt:  strings.TrimSpace(line),
			Fixable:  rule.Fixable,
		})
		return true
	}

	bracketReported := false
	if _, ok := c.detector.Match(line); ok {
		bracketReported = report(RuleBracketDisplayMath)
	}

	prose := inlineCodeRe.ReplaceAllString(line, "")

	if ownLineRe.MatchString(prose) {
		report(RuleDisplayMathOwnLine)
	}
	if spacingRe.MatchString(prose) {
		report(RuleDisplayMathSpacing)
	}
	if !bracketReported && commandStartRe.MatchString(line) && !isMarkdownLink(line) {
		report(RuleBracketCommandStart)
	}
	if dollarMathRe.MatchString(prose) {
		report(RuleNoDollarMath)
	}

	return findings
}
