package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bookfix/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "bookfix", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"config", "debug", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"fix", "check", "outputs", "rules", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{command: "fix", flags: []string{"dry-run", "format", "no-backups", "include-code", "ext", "ignore", "rule-format"}},
		{command: "check", flags: []string{"strict", "format", "include-code", "ext", "rule-format"}},
		{command: "outputs", flags: []string{"table", "dir", "language", "dry-run", "format", "no-backups"}},
		{command: "rules", flags: []string{"format"}},
		{command: "init", flags: []string{"force", "output"}},
	}

	cmd := cli.NewRootCommand(testInfo())
	for _, tt := range tests {
		sub, _, err := cmd.Find([]string{tt.command})
		require.NoError(t, err)
		for _, flag := range tt.flags {
			assert.NotNil(t, sub.Flags().Lookup(flag), "%s --%s", tt.command, flag)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "bookfix")
	assert.Contains(t, stdout.String(), "test-version")
	assert.Contains(t, stdout.String(), "test-commit")
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"rules", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var payload struct {
		Version string `json:"version"`
		Rules   []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Fixable bool   `json:"fixable"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &payload))
	assert.NotEmpty(t, payload.Version)
	require.Len(t, payload.Rules, 5)
	assert.Equal(t, "TX001", payload.Rules[0].ID)
	assert.True(t, payload.Rules[0].Fixable)
}

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"rules", "--color", "never"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "bracket-display-math")
	assert.Contains(t, stdout.String(), "no-dollar-math")
}

func TestRulesCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"rules", "--format", "sarif"})

	assert.Error(t, cmd.Execute())
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "book.yml")

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"init", "--output", out})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "directories:")
	assert.Contains(t, string(content), "TX001")

	cmd = cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"init", "--output", out, "--force"})
	require.NoError(t, cmd.Execute())
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"fix", "--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "--dry-run")
	assert.Contains(t, stdout.String(), "Global Flags:")
}
