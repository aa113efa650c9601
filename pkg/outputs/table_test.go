package outputs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bookfix/pkg/fsutil"
	"github.com/yaklabco/bookfix/pkg/outputs"
)

const tableYAML = `files:
  - file: ch01_datasets.md
    outputs:
      - |
        **Output:**
        ` + "```" + `
        Mode: Red
        ` + "```" + `
      - "**Output:**\n42"
  - file: ch02_descriptive.md
    outputs: []
`

func TestParseTable(t *testing.T) {
	t.Parallel()

	table, err := outputs.ParseTable([]byte(tableYAML))
	require.NoError(t, err)

	require.Len(t, table.Files, 2)
	assert.Equal(t, "ch01_datasets.md", table.Files[0].File)
	assert.Equal(t, "**Output:**\n```\nMode: Red\n```\n", table.Files[0].Outputs[0])
	assert.Equal(t, 2, table.Len())
}

func TestParseTable_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"missing file name", "files:\n  - outputs: [a]\n"},
		{"duplicate file", "files:\n  - file: a.md\n  - file: a.md\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := outputs.ParseTable([]byte(tt.data))
			require.ErrorIs(t, err, outputs.ErrInvalidTable)
		})
	}

	_, err := outputs.ParseTable([]byte("files: [unclosed"))
	assert.Error(t, err)
}

func TestLoadTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "outputs.yml")
	require.NoError(t, os.WriteFile(path, []byte(tableYAML), 0o644))

	table, err := outputs.LoadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, table.Files, 2)

	_, err = outputs.LoadTable(context.Background(), filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}
