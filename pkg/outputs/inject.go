// Package outputs inserts canned "expected output" blocks after the Python code samples
// of a chapter.
package outputs

import (
	"bytes"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/bookfix/pkg/document"
	"github.com/yaklabco/bookfix/pkg/langdetect"
)

// OutputMarker opens every canned output block.
const OutputMarker = "**Output:**"

// Injector places output blocks after code blocks of one language.
type Injector struct {
	language string
	parser   goldmark.Markdown
}

// NewInjector creates an injector targeting language, "python" when empty.
func NewInjector(language string) *Injector {
	if language == "" {
		language = langdetect.Python
	}
	return &Injector{
		language: strings.ToLower(language),
		parser:   goldmark.New(),
	}
}

// Result is the outcome of injecting outputs into one document.
type Result struct {
	Document *document.Document

	// Targets is the number of code blocks in the target language.
	Targets int

	// Inserted is the number of output blocks added.
	Inserted int

	// AlreadyPresent counts target blocks that were followed by an output block.
	AlreadyPresent int

	// Leftover holds output blocks for which no target block remained.
	Leftover []string

	// Insertions lists the added lines in document order.
	Insertions []Insertion
}

// Insertion is a run of lines added after one closing fence.
type Insertion struct {
	// After is the 1-based line number of the closing fence in the original document.
	After int
	Lines []string
}

// Changed reports whether any block was inserted.
func (r *Result) Changed() bool {
	return r.Inserted > 0
}

// codeBlock locates a fenced code block by its 0-based line indexes.
type codeBlock struct {
	closeLine int
	target    bool
}

// Inject inserts blocks, in order, after successive target code blocks that do not
// already have an output block. The input document is not modified.
func (in *Injector) Inject(doc *document.Document, blocks []string) *Result {
	result := &Result{Document: doc}
	codeBlocks := in.codeBlocks(doc.Lines)

	inserts := make(map[int]string)
	next := 0
	for _, cb := range codeBlocks {
		if !cb.target {
			continue
		}
		result.Targets++
		if hasOutput(doc.Lines, cb.closeLine) {
			result.AlreadyPresent++
			continue
		}
		if next < len(blocks) {
			inserts[cb.closeLine] = blocks[next]
			next++
		}
	}
	result.Leftover = append(result.Leftover, blocks[next:]...)
	result.Inserted = len(inserts)

	if len(inserts) == 0 {
		return result
	}

	lines := make([]string, 0, len(doc.Lines)+len(inserts)*4)
	for i, line := range doc.Lines {
		lines = append(lines, line)
		block, ok := inserts[i]
		if !ok {
			continue
		}
		added := []string{""}
		added = append(added, strings.Split(strings.TrimRight(block, "\n"), "\n")...)
		if i+1 >= len(doc.Lines) || strings.TrimSpace(doc.Lines[i+1]) != "" {
			added = append(added, "")
		}
		lines = append(lines, added...)
		result.Insertions = append(result.Insertions, Insertion{After: i + 1, Lines: added})
	}

	result.Document = doc.WithLines(lines)
	return result
}

// codeBlocks returns the closed fenced code blocks of the document in order.
func (in *Injector) codeBlocks(lines []string) []codeBlock {
	source := []byte(strings.Join(lines, "\n"))
	starts := lineStarts(lines)
	root := in.parser.Parser().Parse(text.NewReader(source))

	var blocks []codeBlock
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		closeLine, ok := closingFence(fenced, starts, lines)
		if !ok {
			return ast.WalkSkipChildren, nil
		}

		blocks = append(blocks, codeBlock{
			closeLine: closeLine,
			target:    in.isTarget(fenced, source) && !followsMarker(fenced, starts, lines),
		})
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

func (in *Injector) isTarget(fenced *ast.FencedCodeBlock, source []byte) bool {
	if lang := fenced.Language(source); len(lang) > 0 {
		return sameLanguage(string(lang), in.language)
	}

	var content bytes.Buffer
	segments := fenced.Lines()
	for i := range segments.Len() {
		seg := segments.At(i)
		content.Write(seg.Value(source))
	}
	return sameLanguage(langdetect.Detect(content.Bytes()), in.language)
}

// sameLanguage compares two fence tags, resolving aliases such as py and python3.
func sameLanguage(tag, want string) bool {
	if strings.EqualFold(tag, want) {
		return true
	}
	a, okA := enry.GetLanguageByAlias(tag)
	b, okB := enry.GetLanguageByAlias(want)
	return okA && okB && a == b
}

// closingFence returns the 0-based line index of the block's closing fence.
// Unclosed blocks, which run to the end of the document, report false.
func closingFence(fenced *ast.FencedCodeBlock, starts []int, lines []string) (int, bool) {
	var lastLine int
	segments := fenced.Lines()

	switch {
	case segments.Len() > 0:
		last := segments.At(segments.Len() - 1)
		stop := last.Stop
		if stop > last.Start {
			stop--
		}
		lastLine = lineOf(starts, stop)
	case fenced.Info != nil:
		lastLine = lineOf(starts, fenced.Info.Segment.Start)
	default:
		return 0, false
	}

	closeLine := lastLine + 1
	if closeLine >= len(lines) || !isFence(lines[closeLine]) {
		return 0, false
	}
	return closeLine, true
}

// followsMarker reports whether an unlabelled block is the body of an output block,
// that is, its opening fence directly follows a line starting with OutputMarker.
func followsMarker(fenced *ast.FencedCodeBlock, starts []int, lines []string) bool {
	if fenced.Info != nil || fenced.Lines().Len() == 0 {
		return false
	}
	openLine := lineOf(starts, fenced.Lines().At(0).Start) - 1
	for i := openLine - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, OutputMarker)
	}
	return false
}

func isFence(line string) bool {
	trimmed := strings.TrimLeft(line, " \t>")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// hasOutput reports whether the first non-blank line after closeLine opens an output block.
func hasOutput(lines []string, closeLine int) bool {
	for _, line := range lines[closeLine+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, OutputMarker)
	}
	return false
}

func lineStarts(lines []string) []int {
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}
	return starts
}

// lineOf maps a byte offset to its 0-based line index.
func lineOf(starts []int, offset int) int {
	i, found := slices.BinarySearch(starts, offset)
	if !found {
		i--
	}
	return max(i, 0)
}
