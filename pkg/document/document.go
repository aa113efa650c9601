// Package document models a Markdown chapter as an ordered sequence of lines.
//
// Documents are split on "\n" exactly, so joining the lines back reproduces the
// original bytes: a trailing newline shows up as a final empty line. CRLF files
// are normalized to bare lines on load and re-joined with "\r\n" on save, and a
// leading UTF-8 byte order mark is stripped and restored.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yaklabco/bookfix/pkg/fsutil"
)

// ErrInvalidUTF8 is returned when a chapter is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// Document is an ordered sequence of text lines identified by a path.
type Document struct {
	// Path is the file the document was read from.
	Path string

	// Lines holds the content split on newlines, without terminators.
	Lines []string

	// CRLF is true when every line break in the source was "\r\n".
	CRLF bool

	// BOM is true when the source started with a UTF-8 byte order mark.
	BOM bool
}

// Parse builds a Document from raw bytes.
func Parse(path string, content []byte) (*Document, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}

	// Valid UTF-8 input passes the decoder unchanged except for a leading BOM.
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	doc := &Document{Path: path, BOM: len(decoded) != len(content)}

	text := string(decoded)
	doc.CRLF = isCRLF(text)
	if doc.CRLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	doc.Lines = strings.Split(text, "\n")
	return doc, nil
}

// FromString builds a Document with no path from a string.
func FromString(text string) *Document {
	doc, err := Parse("", []byte(text))
	if err != nil {
		// Go strings built from literals are valid UTF-8; fall back to raw lines.
		return &Document{Lines: strings.Split(text, "\n")}
	}
	return doc
}

// Load reads and parses the document at path.
// The returned FileInfo can be handed to Save to detect concurrent edits.
func Load(ctx context.Context, path string) (*Document, *fsutil.FileInfo, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	doc, err := Parse(path, content)
	if err != nil {
		return nil, nil, err
	}
	return doc, info, nil
}

// Save writes the document back to its path atomically.
// When info is non-nil the write is refused if the file changed since it was loaded.
func Save(ctx context.Context, doc *Document, info *fsutil.FileInfo) error {
	mode := fsutil.DefaultFileMode
	if info != nil {
		if err := fsutil.EnsureUnmodified(ctx, info); err != nil {
			return err
		}
		mode = info.Mode
	}

	content, err := doc.Bytes()
	if err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(ctx, doc.Path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", doc.Path, err)
	}
	return nil
}

// String joins the lines with the document's line ending, without a BOM.
func (d *Document) String() string {
	sep := "\n"
	if d.CRLF {
		sep = "\r\n"
	}
	return strings.Join(d.Lines, sep)
}

// Bytes encodes the document as it should be written to disk.
func (d *Document) Bytes() ([]byte, error) {
	content := []byte(d.String())
	if !d.BOM {
		return content, nil
	}

	encoded, _, err := transform.Bytes(unicode.UTF8BOM.NewEncoder(), content)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", d.Path, err)
	}
	return encoded, nil
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.Lines)
}

// Line returns the 1-based line n, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.Lines) {
		return ""
	}
	return d.Lines[n-1]
}

// WithLines returns a copy of the document carrying new lines.
func (d *Document) WithLines(lines []string) *Document {
	clone := *d
	clone.Lines = lines
	return &clone
}

// Equal reports whether two documents have the same lines.
func (d *Document) Equal(other *Document) bool {
	if other == nil || len(d.Lines) != len(other.Lines) {
		return false
	}
	for i := range d.Lines {
		if d.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return true
}

// isCRLF reports whether text has at least one line break and all of them are CRLF.
func isCRLF(text string) bool {
	lf := strings.Count(text, "\n")
	return lf > 0 && strings.Count(text, "\r\n") == lf
}
