// Package langdetect guesses the language of fenced code blocks that carry no info string.
// It combines go-enry's shebang and classifier strategies with a few patterns typical of
// the textbook's code samples.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifiers returned by Detect, in fence-tag form.
const (
	Python = "python"
	Bash   = "bash"
	R      = "r"
	LaTeX  = "latex"
	JSON   = "json"
	YAML   = "yaml"
	Text   = "text"
)

//nolint:gochecknoglobals // read-only classifier candidates
var candidates = []string{"Python", "Shell", "R", "TeX", "JSON", "YAML", "Markdown"}

//nolint:gochecknoglobals // compiled patterns, read-only
var (
	pythonImportRe = regexp.MustCompile(`(?m)^\s*(?:import\s+\w+|from\s+[\w.]+\s+import\s)`)
	pythonDefRe    = regexp.MustCompile(`(?m)^\s*(?:def|class)\s+\w+.*:\s*$`)
	pythonCallRe   = regexp.MustCompile(`\b(?:print|range|len)\(|\b(?:np|pd|plt|scipy|stats)\.\w+`)
	rAssignRe      = regexp.MustCompile(`\w\s*<-\s*\S`)
	shellPromptRe  = regexp.MustCompile(`(?m)^\s*(?:\$ |pip3? install|conda install|python3? -m )`)
)

// Detect returns the fence tag for content, or "text" when no language is recognized.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Is reports whether content is detected as lang.
func Is(content []byte, lang string) bool {
	return Detect(content) == strings.ToLower(lang)
}

func detectByPattern(trimmed []byte) string {
	text := string(trimmed)

	switch {
	case bytes.HasPrefix(trimmed, []byte("**Output:**")):
		return Text
	case shellPromptRe.MatchString(text):
		return Bash
	case strings.Contains(text, `\begin{`) || strings.Contains(text, `\documentclass`):
		return LaTeX
	case pythonImportRe.MatchString(text), pythonDefRe.MatchString(text):
		return Python
	case rAssignRe.MatchString(text):
		return R
	case pythonCallRe.MatchString(text):
		return Python
	case (trimmed[0] == '{' || trimmed[0] == '[') && bytes.Contains(trimmed, []byte(`"`)) &&
		!bytes.Contains(trimmed, []byte("=")):
		return JSON
	}

	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return Bash
	case "TeX":
		return LaTeX
	default:
		return strings.ToLower(lang)
	}
}
