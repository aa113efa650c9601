package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bookfix/internal/cli"
)

const (
	chapterWithFormula = "Intro text.\n[ \\sum_{i=1}^n x_i ]\nMore text.\n"
	chapterFixed       = "Intro text.\n\\[\n\\sum_{i=1}^n x_i\n\\]\nMore text.\n"
)

// isolate points user-level config discovery at an empty directory and returns
// an explicit config file the test may fill in.
func isolate(t *testing.T, config string) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bookfix.yml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeChapter(t *testing.T, dir, name, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_Fix(t *testing.T) {
	cfg := isolate(t, "")
	dir := filepath.Join(t.TempDir(), "part2")
	path := writeChapter(t, dir, "ch05.md", chapterWithFormula)
	untouched := writeChapter(t, dir, "notes.txt", chapterWithFormula)

	out, err := execute(t, "fix", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, chapterFixed, string(got))

	other, err := os.ReadFile(untouched)
	require.NoError(t, err)
	assert.Equal(t, chapterWithFormula, string(other), "non-.md files are not scanned")

	assert.Contains(t, out, "Fixed 1 line in 1 file")

	_, err = os.Stat(path + ".bookfix.bak")
	assert.True(t, os.IsNotExist(err), "backups are off by default")

	out, err = execute(t, "fix", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to fix")
}

func TestIntegration_FixDryRunDiff(t *testing.T) {
	cfg := isolate(t, "")
	dir := t.TempDir()
	path := writeChapter(t, dir, "ch05.md", chapterWithFormula)

	out, err := execute(t, "fix", "--config", cfg, "--color", "never", "--dry-run", "--format", "diff", dir)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, chapterWithFormula, string(got), "dry run must not write")

	assert.Contains(t, out, "-[ \\sum_{i=1}^n x_i ]")
	assert.Contains(t, out, "+\\[")
	assert.Contains(t, out, "+\\]")
}

func TestIntegration_FixBackupsFromConfig(t *testing.T) {
	cfg := isolate(t, "backups:\n  enabled: true\n  mode: sidecar\n")
	dir := t.TempDir()
	path := writeChapter(t, dir, "ch05.md", chapterWithFormula)

	_, err := execute(t, "fix", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".bookfix.bak")
	require.NoError(t, err)
	assert.Equal(t, chapterWithFormula, string(backup))
}

func TestIntegration_FixMissingDirectoryWarns(t *testing.T) {
	cfg := isolate(t, "")
	missing := filepath.Join(t.TempDir(), "part9")

	out, err := execute(t, "fix", "--config", cfg, "--color", "never", missing)
	require.NoError(t, err)
	assert.Contains(t, out, "No chapter files found.")
}

func TestIntegration_Check(t *testing.T) {
	cfg := isolate(t, "")
	dir := t.TempDir()
	path := writeChapter(t, dir, "ch05.md", chapterWithFormula)

	out, err := execute(t, "check", "--config", cfg, "--color", "never", "--rule-format", "id", dir)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "TX001")

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, chapterWithFormula, string(got), "check never writes")
}

func TestIntegration_CheckClean(t *testing.T) {
	cfg := isolate(t, "")
	dir := t.TempDir()
	writeChapter(t, dir, "ch05.md", chapterFixed)

	out, err := execute(t, "check", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestIntegration_CheckDisabledRule(t *testing.T) {
	cfg := isolate(t, "rules:\n  bracket-display-math:\n    enabled: false\n")
	dir := t.TempDir()
	writeChapter(t, dir, "ch05.md", chapterWithFormula)

	out, err := execute(t, "check", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err, out)
}

func TestIntegration_FixDisabledRule(t *testing.T) {
	cfg := isolate(t, "rules:\n  TX001:\n    enabled: false\n")
	dir := t.TempDir()
	path := writeChapter(t, dir, "ch05.md", chapterWithFormula)

	out, err := execute(t, "fix", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to fix")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, chapterWithFormula, string(got), "a disabled rule rewrites nothing")
}

func TestIntegration_CheckStrict(t *testing.T) {
	cfg := isolate(t, "")
	dir := t.TempDir()
	// Bracket followed by a command but not formula-like: info only.
	writeChapter(t, dir, "ch05.md", "[\\ not a formula]\n")

	_, err := execute(t, "check", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err)

	_, err = execute(t, "check", "--config", cfg, "--color", "never", "--strict", dir)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
}

func TestIntegration_Outputs(t *testing.T) {
	cfg := isolate(t, "")
	root := t.TempDir()
	dir := filepath.Join(root, "part1")
	path := writeChapter(t, dir, "ch01.md", "Text.\n\n```python\nprint(1)\n```\n\nMore.\n")

	table := filepath.Join(root, "outputs.yml")
	require.NoError(t, os.WriteFile(table, []byte(`files:
  - file: ch01.md
    outputs:
      - |
        **Output:**
        `+"```"+`
        1
        `+"```"+`
  - file: missing.md
    outputs:
      - "**Output:**"
`), 0o644))

	out, err := execute(t, "outputs", "--config", cfg, "--color", "never", "--table", table, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Inserted 1 output block in 1 file")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(got), "```\n\n**Output:**\n```\n1\n```\n\nMore."), string(got))

	// A second run finds the output already in place.
	_, err = execute(t, "outputs", "--config", cfg, "--color", "never", "--table", table, "--dir", dir)
	require.NoError(t, err)
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(got), string(again))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	cfg := isolate(t, "formula_mode: loose\n")

	_, err := execute(t, "check", "--config", cfg, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formula_mode")
}
