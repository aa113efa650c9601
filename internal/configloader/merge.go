package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/bookfix/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Rules: deep merge by key
//   - Slices: override replaces base when non-nil
//
// Plain booleans can only be switched on by a later layer; SkipCodeBlocks is a
// pointer so a later layer may switch it off.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.FormulaMode != "" {
		result.FormulaMode = override.FormulaMode
	}
	if override.ExcerptWidth != 0 {
		result.ExcerptWidth = override.ExcerptWidth
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.SkipCodeBlocks != nil {
		skip := *override.SkipCodeBlocks
		result.SkipCodeBlocks = &skip
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Outputs.Dir != "" {
		result.Outputs.Dir = override.Outputs.Dir
	}
	if override.Outputs.Table != "" {
		result.Outputs.Table = override.Outputs.Table
	}
	if override.Outputs.Language != "" {
		result.Outputs.Language = override.Outputs.Language
	}

	if override.Directories != nil {
		result.Directories = slices.Clone(override.Directories)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Include != nil {
		result.Include = slices.Clone(override.Include)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	return result
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		result[key] = mergeRuleConfig(result[key], val)
	}
	return result
}

func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
