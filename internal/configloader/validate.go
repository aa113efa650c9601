package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/fsutil"
	"github.com/yaklabco/bookfix/pkg/latex"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.TX001.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown rule keys.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = []config.OutputFormat{config.FormatText, config.FormatJSON, config.FormatDiff}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormulaModes = []config.FormulaMode{config.FormulaModeStandard, config.FormulaModeEscapeOnly}

//nolint:gochecknoglobals // Read-only lookup table.
var knownRuleFormats = []config.RuleFormat{config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = []string{string(fsutil.BackupModeSidecar), string(fsutil.BackupModeNone)}

// Validate checks a configuration for errors and warnings.
// Zero values are accepted so partial file layers can be validated before merging.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.FormulaMode != "" && !slices.Contains(knownFormulaModes, cfg.FormulaMode) {
		result.fail("formula_mode", cfg.FormulaMode,
			"invalid formula mode %q; must be one of: standard, escape-only", cfg.FormulaMode)
	}
	if cfg.Format != "" && !slices.Contains(knownFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}
	if cfg.RuleFormat != "" && !slices.Contains(knownRuleFormats, cfg.RuleFormat) {
		result.fail("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.ExcerptWidth < 0 {
		result.fail("excerpt_width", cfg.ExcerptWidth, "excerpt_width must be >= 0")
	}
	if cfg.Backups.Mode != "" && !slices.Contains(knownBackupModes, cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateRules(cfg, result)
	validatePatterns("include", cfg.Include, result)
	validatePatterns("ignore", cfg.Ignore, result)

	return result
}

func validateRules(cfg *config.Config, result *ValidationResult) {
	rules := latex.DefaultRuleSet()

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		ruleCfg := cfg.Rules[key]
		if _, ok := rules.Lookup(key); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + key,
				Value:   key,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", key),
			})
		}
		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.fail("rules."+key+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}
	}
}

func validatePatterns(field string, patterns []string, result *ValidationResult) {
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

// ValidateWithFile validates configuration and attributes findings to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
