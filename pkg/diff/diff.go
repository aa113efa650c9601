// Package diff renders unified diffs from line edit records.
//
// bookfix always knows exactly which lines it replaced or inserted, so hunks are built
// straight from those records rather than by comparing the two texts.
package diff

import (
	"fmt"
	"slices"
	"strings"
)

// Edit replaces Remove original lines starting at Start with Insert.
// Start is 1-based; a pure insertion (Remove == 0) goes before line Start.
type Edit struct {
	Start  int
	Remove int
	Insert []string
}

// Diff represents a unified diff of one file.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is a single @@ section of a unified diff.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Line is one line of a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineRemove
)

// ContextLines is the number of unchanged lines shown around each edit.
const ContextLines = 3

// FromEdits builds the diff of applying edits to original.
// A trailing empty element, left by a final newline, is not treated as a line.
// Returns nil when edits is empty.
func FromEdits(path string, original []string, edits []Edit) *Diff {
	if len(edits) == 0 {
		return nil
	}

	if n := len(original); n > 0 && original[n-1] == "" {
		original = original[:n-1]
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int { return a.Start - b.Start })

	d := &Diff{Path: path}
	offset := 0
	for _, group := range groupEdits(sorted) {
		hunk := buildHunk(original, group, offset)
		for _, e := range group {
			offset += len(e.Insert) - e.Remove
			d.Additions += len(e.Insert)
			d.Deletions += e.Remove
		}
		d.Hunks = append(d.Hunks, hunk)
	}

	return d
}

// groupEdits splits edits into runs whose context windows touch.
func groupEdits(edits []Edit) [][]Edit {
	var groups [][]Edit
	var current []Edit
	lastEnd := 0

	for _, e := range edits {
		if len(current) > 0 && e.Start-lastEnd > 2*ContextLines {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, e)
		lastEnd = e.Start + e.Remove
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// buildHunk renders one group. offset is the line delta of all earlier hunks.
func buildHunk(original []string, group []Edit, offset int) Hunk {
	first, last := group[0], group[len(group)-1]

	start := max(1, first.Start-ContextLines)
	end := min(len(original)+1, last.Start+last.Remove+ContextLines)

	hunk := Hunk{
		OriginalStart: start,
		OriginalCount: end - start,
		ModifiedStart: start + offset,
		ModifiedCount: end - start,
	}

	next := 0
	for line := start; line < end || next < len(group); {
		if next < len(group) && group[next].Start == line {
			e := group[next]
			for i := range e.Remove {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineRemove, Content: original[line-1+i]})
			}
			for _, ins := range e.Insert {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineAdd, Content: ins})
			}
			hunk.ModifiedCount += len(e.Insert) - e.Remove
			line += e.Remove
			next++
			continue
		}
		if line >= end {
			break
		}
		hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: original[line-1]})
		line++
	}

	// Empty ranges point at the line before, as in diff -u.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}

	return hunk
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			builder.WriteByte(line.Kind.prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k LineKind) prefix() byte {
	switch k {
	case LineAdd:
		return '+'
	case LineRemove:
		return '-'
	default:
		return ' '
	}
}
