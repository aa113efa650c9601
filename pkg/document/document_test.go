package document_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bookfix/pkg/document"
	"github.com/yaklabco/bookfix/pkg/fsutil"
)

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLines []string
		wantCRLF  bool
		wantBOM   bool
	}{
		{
			name:      "trailing newline becomes empty last line",
			input:     "a\nb\n",
			wantLines: []string{"a", "b", ""},
		},
		{
			name:      "no trailing newline",
			input:     "a\nb",
			wantLines: []string{"a", "b"},
		},
		{
			name:      "empty",
			input:     "",
			wantLines: []string{""},
		},
		{
			name:      "crlf",
			input:     "a\r\nb\r\n",
			wantLines: []string{"a", "b", ""},
			wantCRLF:  true,
		},
		{
			name:      "mixed endings keep carriage returns",
			input:     "a\r\nb\n",
			wantLines: []string{"a\r", "b", ""},
		},
		{
			name:      "byte order mark",
			input:     "\xEF\xBB\xBFa\n",
			wantLines: []string{"a", ""},
			wantBOM:   true,
		},
		{
			name:      "zero width no-break space after the start is text",
			input:     "a\xEF\xBB\xBFb\n",
			wantLines: []string{"a\uFEFFb", ""},
		},
		{
			name:      "byte order mark with crlf",
			input:     "\xEF\xBB\xBFa\r\nb",
			wantLines: []string{"a", "b"},
			wantCRLF:  true,
			wantBOM:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := document.Parse("ch.md", []byte(tt.input))
			require.NoError(t, err)

			assert.Equal(t, tt.wantLines, doc.Lines)
			assert.Equal(t, tt.wantCRLF, doc.CRLF)
			assert.Equal(t, tt.wantBOM, doc.BOM)

			out, err := doc.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(out))
		})
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := document.Parse("bad.md", []byte{0xff, 0xfe, 'a'})
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrInvalidUTF8))
}

func TestDocument_Line(t *testing.T) {
	t.Parallel()

	doc := document.FromString("one\ntwo")
	assert.Equal(t, "one", doc.Line(1))
	assert.Equal(t, "two", doc.Line(2))
	assert.Equal(t, "", doc.Line(0))
	assert.Equal(t, "", doc.Line(3))
	assert.Equal(t, 2, doc.Len())
}

func TestDocument_WithLinesAndEqual(t *testing.T) {
	t.Parallel()

	doc := document.FromString("a\nb")
	other := doc.WithLines([]string{"a", "c"})

	assert.Equal(t, []string{"a", "b"}, doc.Lines, "original must not change")
	assert.False(t, doc.Equal(other))
	assert.True(t, doc.Equal(doc.WithLines([]string{"a", "b"})))
}

func TestLoadSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("saves modified lines preserving crlf", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ch.md")
		require.NoError(t, os.WriteFile(path, []byte("a\r\nb\r\n"), 0600))

		doc, info, err := document.Load(ctx, path)
		require.NoError(t, err)

		updated := doc.WithLines([]string{"a", "x", "y", ""})
		require.NoError(t, document.Save(ctx, updated, info))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\r\nx\r\ny\r\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), stat.Mode().Perm())
	})

	t.Run("refuses to overwrite concurrent edits", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ch.md")
		require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

		doc, info, err := document.Load(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("edited elsewhere\n"), 0644))

		err = document.Save(ctx, doc.WithLines([]string{"b", ""}), info)
		require.Error(t, err)
		assert.ErrorIs(t, err, fsutil.ErrModified)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := document.Load(ctx, filepath.Join(t.TempDir(), "missing.md"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})
}
