package latex

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var fenceOpenRe = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})")

// fenceTracker follows fenced code blocks line by line.
type fenceTracker struct {
	char   byte
	length int
	open   bool
}

// step consumes one line and reports whether it belongs to a fenced block,
// fence lines included.
func (f *fenceTracker) step(line string) bool {
	if !f.open {
		m := fenceOpenRe.FindStringSubmatch(line)
		if m == nil {
			return false
		}
		// A backtick fence's info string may not contain backticks.
		if m[2][0] == '`' && strings.Contains(line[len(m[0]):], "`") {
			return false
		}
		f.open = true
		f.char = m[2][0]
		f.length = len(m[2])
		return true
	}

	if f.closes(line) {
		f.open = false
	}
	return true
}

func (f *fenceTracker) closes(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == f.char {
		n++
	}
	return n >= f.length && strings.TrimSpace(trimmed[n:]) == ""
}
