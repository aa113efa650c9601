package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bookfix/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, []string{"part2", "part3"}, cfg.Directories)
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.True(t, cfg.SkipCode())
	assert.Equal(t, config.FormulaModeStandard, cfg.FormulaMode)
	assert.Equal(t, config.DefaultExcerptWidth, cfg.ExcerptWidth)
	assert.False(t, cfg.BackupsActive())
	assert.Equal(t, "part1", cfg.Outputs.Dir)
}

func TestConfig_BackupsActive(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Backups.Enabled = true
	assert.True(t, cfg.BackupsActive())

	cfg.NoBackups = true
	assert.False(t, cfg.BackupsActive())

	cfg.NoBackups = false
	cfg.Backups.Mode = "none"
	assert.False(t, cfg.BackupsActive())
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and rules", func(t *testing.T) {
		enabled := false
		original := config.NewConfig()
		original.Rules["TX005"] = config.RuleConfig{Enabled: &enabled}
		original.DryRun = true

		clone := original.Clone()
		require.NotNil(t, clone)

		clone.Directories[0] = "changed"
		*clone.Rules["TX005"].Enabled = true
		*clone.SkipCodeBlocks = false

		assert.Equal(t, "part2", original.Directories[0])
		assert.False(t, *original.Rules["TX005"].Enabled)
		assert.True(t, original.SkipCode())
		assert.True(t, clone.DryRun, "CLI-only fields are copied")
	})
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
directories: [chapters]
extensions: [.md, .markdown]
skip_code_blocks: false
formula_mode: escape-only
rules:
  no-dollar-math:
    severity: error
outputs:
  dir: part1
  table: canned.yml
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"chapters"}, cfg.Directories)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
	assert.False(t, cfg.SkipCode())
	assert.Equal(t, config.FormulaModeEscapeOnly, cfg.FormulaMode)
	require.Contains(t, cfg.Rules, "no-dollar-math")
	assert.Equal(t, "error", *cfg.Rules["no-dollar-math"].Severity)
	assert.Equal(t, "canned.yml", cfg.Outputs.Table)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("directories: [unclosed"))
	assert.Error(t, err)
}

func TestToYAML_RoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Ignore = []string{"part3/draft-*.md"}

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, original.Directories, parsed.Directories)
	assert.Equal(t, original.Ignore, parsed.Ignore)
	assert.Equal(t, original.SkipCode(), parsed.SkipCode())
	assert.Equal(t, original.Outputs, parsed.Outputs)
}

func TestRuleFormatLabel(t *testing.T) {
	tests := []struct {
		format config.RuleFormat
		want   string
	}{
		{config.RuleFormatName, "bracket-display-math"},
		{config.RuleFormatID, "TX001"},
		{config.RuleFormatCombined, "TX001/bracket-display-math"},
		{"", "bracket-display-math"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.Label("TX001", "bracket-display-math"))
		})
	}

	assert.Equal(t, "TX001", config.RuleFormatName.Label("TX001", ""))
}

func TestGenerateTemplate(t *testing.T) {
	out, err := config.GenerateTemplate([]config.RuleInfo{
		{ID: "TX001", Name: "bracket-display-math", Description: "desc", Severity: config.SeverityWarning, Fixable: true},
	})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# bookfix configuration")
	assert.Contains(t, text, "directories:")
	assert.Contains(t, text, "#   TX001: # bracket-display-math (warning, fixable)")

	// The uncommented part must parse as a config.
	_, err = config.FromYAML(out)
	assert.NoError(t, err)
}
