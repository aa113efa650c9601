package latex

import (
	"github.com/yaklabco/bookfix/pkg/document"
)

// Display-math delimiters emitted by the rewriter.
const (
	DisplayOpen  = `\[`
	DisplayClose = `\]`
)

// Change records one rewritten line.
type Change struct {
	// Line is the 1-based line number in the original document.
	Line int `json:"line"`

	RuleID   string `json:"rule_id"`
	Category string `json:"category"`

	Original    string   `json:"original"`
	Replacement []string `json:"replacement"`
}

// Result is the outcome of rewriting one document.
type Result struct {
	Original *document.Document
	Document *document.Document
	Changes  []Change
}

// Changed reports whether the rewrite modified anything.
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}

// Rewriter replaces bracket-wrapped formula lines with display-math blocks.
type Rewriter struct {
	detector *Detector
	category string
	enabled  bool

	// SkipCodeBlocks leaves lines inside fenced code blocks untouched.
	SkipCodeBlocks bool
}

// NewRewriter creates a rewriter around the given detector. A nil rule set means
// DefaultRuleSet. When the set lacks the bracket-display-math rule, Rewrite
// changes nothing.
func NewRewriter(rules *RuleSet, detector *Detector, skipCodeBlocks bool) *Rewriter {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if detector == nil {
		detector = NewDetector("")
	}
	rule, enabled := rules.Lookup(RuleBracketDisplayMath)
	return &Rewriter{
		detector:       detector,
		category:       rule.Category,
		enabled:        enabled,
		SkipCodeBlocks: skipCodeBlocks,
	}
}

// Rewrite returns the rewritten document and the change records. The input is not modified.
// Every other line is carried over byte for byte.
func (r *Rewriter) Rewrite(doc *document.Document) *Result {
	result := &Result{Original: doc, Document: doc}
	if !r.enabled {
		return result
	}

	var fence fenceTracker
	var lines []string

	for i, line := range doc.Lines {
		inCode := fence.step(line)

		formula, ok := "", false
		if !inCode || !r.SkipCodeBlocks {
			formula, ok = r.detector.Match(line)
		}
		if !ok {
			if lines != nil {
				lines = append(lines, line)
			}
			continue
		}

		if lines == nil {
			lines = make([]string, 0, len(doc.Lines)+2)
			lines = append(lines, doc.Lines[:i]...)
		}

		replacement := []string{DisplayOpen, formula, DisplayClose}
		lines = append(lines, replacement...)
		result.Changes = append(result.Changes, Change{
			Line:        i + 1,
			RuleID:      RuleBracketDisplayMath,
			Category:    r.category,
			Original:    line,
			Replacement: replacement,
		})
	}

	if lines != nil {
		result.Document = doc.WithLines(lines)
	}
	return result
}

// RewriteString is a convenience wrapper over Rewrite for in-memory text.
func (r *Rewriter) RewriteString(text string) (string, []Change) {
	result := r.Rewrite(document.FromString(text))
	return result.Document.String(), result.Changes
}
