package latex

import (
	"regexp"
	"strings"

	"github.com/yaklabco/bookfix/pkg/config"
)

//nolint:gochecknoglobals // compiled patterns, read-only
var (
	bracketLineRe = regexp.MustCompile(`^\s*\[(.+)\]\s*$`)

	// Markdown constructs that share the bracket shape.
	inlineLinkRe = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	refDefRe     = regexp.MustCompile(`^\s*\[[^\]]+\]\s*:\s*`)
	refLinkRe    = regexp.MustCompile(`^\s*\[[^\]]*\]\s*\[[^\]]*\]\s*$`)
	taskBoxRe    = regexp.MustCompile(`^[ xX]$`)

	// Citation keys such as [12] or [ch1:5].
	citationNumRe = regexp.MustCompile(`^\d+$`)
	citationKeyRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,15}:\d+$`)

	// Formula tokens.
	escapeTokenRe = regexp.MustCompile(`\\(?:[A-Za-z]+|[{},;!|_%#&$])`)
	groupScriptRe = regexp.MustCompile(`[_^]\{`)
	superscriptRe = regexp.MustCompile(`\^`)
	subscriptRe   = regexp.MustCompile(`[A-Za-z0-9)\}]_[A-Za-z0-9]\b`)
	operatorRe    = regexp.MustCompile(`[=+\-*/<>]`)
	proseWordRe   = regexp.MustCompile(`\b[A-Za-z]{3,}\b`)
	keywordRe     = regexp.MustCompile(`\b(?:sum|prod|int|lim|frac|sqrt|log|exp|mathbb|mathrm|operatorname)[_^{(]`)
)

// Detector recognizes lines holding a display formula wrapped in plain square brackets.
type Detector struct {
	mode config.FormulaMode
}

// NewDetector creates a detector. An empty mode means standard.
func NewDetector(mode config.FormulaMode) *Detector {
	if mode == "" {
		mode = config.FormulaModeStandard
	}
	return &Detector{mode: mode}
}

// Mode returns the formula mode the detector runs in.
func (d *Detector) Mode() config.FormulaMode {
	return d.mode
}

// Match reports whether line is a bracket-wrapped formula and returns the trimmed formula.
func (d *Detector) Match(line string) (string, bool) {
	m := bracketLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	if isMarkdownLink(line) {
		return "", false
	}

	inner := m[1]
	formula := strings.TrimSpace(inner)
	switch {
	case formula == "":
		return "", false
	case strings.HasPrefix(inner, "^"):
		// footnote
		return "", false
	case strings.HasPrefix(formula, "["):
		// wiki link, or nested brackets that would survive a rewrite
		return "", false
	case taskBoxRe.MatchString(inner):
		return "", false
	case isCitation(formula):
		return "", false
	}

	if !d.formulaLike(formula) {
		return "", false
	}
	return formula, true
}

func (d *Detector) formulaLike(s string) bool {
	if escapeTokenRe.MatchString(s) {
		return true
	}
	if d.mode == config.FormulaModeEscapeOnly {
		return false
	}
	if groupScriptRe.MatchString(s) || keywordRe.MatchString(s) {
		return true
	}

	// Bare scripts also occur in prose and identifiers (2^n choices, file_1).
	// They count next to an operator; a superscript also counts when no prose
	// word surrounds it.
	sub, sup := subscriptRe.MatchString(s), superscriptRe.MatchString(s)
	if (sub || sup) && operatorRe.MatchString(s) {
		return true
	}
	return sup && !proseWordRe.MatchString(s)
}

// isMarkdownLink reports whether the line contains link or reference syntax.
func isMarkdownLink(line string) bool {
	return inlineLinkRe.MatchString(line) || refDefRe.MatchString(line) || refLinkRe.MatchString(line)
}

func isCitation(s string) bool {
	return citationNumRe.MatchString(s) || citationKeyRe.MatchString(s)
}
