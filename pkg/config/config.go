// Package config defines the configuration types for bookfix.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule overrides.
type RuleConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`
}

// BackupsConfig controls backup behavior when rewriting chapters.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// OutputsConfig controls canned output injection.
type OutputsConfig struct {
	// Dir is the chapter directory the table's file names are resolved against.
	Dir string `yaml:"dir"`

	// Table is the YAML file holding the canned output blocks.
	Table string `yaml:"table"`

	// Language is the code block language that receives output blocks.
	Language string `yaml:"language"`
}

// OutputFormat specifies the report format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// FormulaMode selects how strict the bracket-formula detector is.
type FormulaMode string

const (
	// FormulaModeStandard accepts escape tokens, sub/superscripts and math keywords.
	FormulaModeStandard FormulaMode = "standard"

	// FormulaModeEscapeOnly accepts only backslash escape tokens.
	FormulaModeEscapeOnly FormulaMode = "escape-only"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "bracket-display-math"
	RuleFormatID       RuleFormat = "id"       // "TX001"
	RuleFormatCombined RuleFormat = "combined" // "TX001/bracket-display-math"
)

// Label renders a rule identifier in this format. Without a name the ID is used.
func (f RuleFormat) Label(id, name string) string {
	switch {
	case name == "" || f == RuleFormatID:
		return id
	case f == RuleFormatCombined:
		return id + "/" + name
	default:
		return name
	}
}

// Config is the root configuration structure for bookfix.
type Config struct {
	// Directories are the chapter directories scanned (non-recursively).
	Directories []string `yaml:"directories"`

	// Extensions filters chapter files, lowercase with leading dot.
	Extensions []string `yaml:"extensions"`

	// Include holds extra doublestar glob patterns, relative to the working directory.
	Include []string `yaml:"include,omitempty"`

	// Ignore holds doublestar glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// SkipCodeBlocks leaves lines inside fenced code blocks untouched. Defaults to true.
	SkipCodeBlocks *bool `yaml:"skip_code_blocks,omitempty"`

	// FormulaMode selects the detector strictness.
	FormulaMode FormulaMode `yaml:"formula_mode"`

	// ExcerptWidth is the display width excerpts are truncated to in reports.
	ExcerptWidth int `yaml:"excerpt_width"`

	// Rules contains per-rule overrides keyed by rule ID or name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Backups configures backups when rewriting.
	Backups BackupsConfig `yaml:"backups"`

	// Outputs configures canned output injection.
	Outputs OutputsConfig `yaml:"outputs"`

	// CLI-level options (not persisted to config files).

	// DryRun computes changes without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// NoBackups disables backups regardless of Backups.Enabled.
	NoBackups bool `yaml:"-"`
}

// Default values.
const (
	DefaultExcerptWidth   = 60
	DefaultOutputsDir     = "part1"
	DefaultOutputsTable   = "outputs.yml"
	DefaultOutputLanguage = "python"
)

// DefaultDirectories returns the chapter directories scanned when none are configured.
func DefaultDirectories() []string {
	return []string{"part2", "part3"}
}

// DefaultExtensions returns the chapter file extensions used when none are configured.
func DefaultExtensions() []string {
	return []string{".md"}
}

// NewConfig returns a Config with the defaults of the original authoring scripts:
// part2 and part3, *.md, rewritten in place without backups.
func NewConfig() *Config {
	skip := true
	return &Config{
		Directories:    DefaultDirectories(),
		Extensions:     DefaultExtensions(),
		SkipCodeBlocks: &skip,
		FormulaMode:    FormulaModeStandard,
		ExcerptWidth:   DefaultExcerptWidth,
		Rules:          make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Outputs: OutputsConfig{
			Dir:      DefaultOutputsDir,
			Table:    DefaultOutputsTable,
			Language: DefaultOutputLanguage,
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// SkipCode reports whether fenced code blocks are left untouched.
func (c *Config) SkipCode() bool {
	if c == nil || c.SkipCodeBlocks == nil {
		return true
	}
	return *c.SkipCodeBlocks
}

// BackupsActive reports whether a backup should be written before rewriting a file.
func (c *Config) BackupsActive() bool {
	return c != nil && c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
