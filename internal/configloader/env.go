package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/bookfix/pkg/config"
)

// envVarPrefix is the prefix for all bookfix environment variables.
const envVarPrefix = "BOOKFIX_"

// envVar describes one BOOKFIX_* override. apply receives the raw value.
type envVar struct {
	help  string
	apply func(cfg *config.Config, raw string) error
}

// envMappings maps environment variable names (without prefix) to their setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envVar{
	"DIRECTORIES": listVar("Comma-separated chapter directories",
		func(c *config.Config, v []string) { c.Directories = v }),
	"EXTENSIONS": listVar("Comma-separated chapter file extensions",
		func(c *config.Config, v []string) { c.Extensions = v }),
	"INCLUDE": listVar("Comma-separated extra glob patterns",
		func(c *config.Config, v []string) { c.Include = v }),
	"IGNORE": listVar("Comma-separated ignore patterns",
		func(c *config.Config, v []string) { c.Ignore = v }),
	"SKIP_CODE_BLOCKS": boolVar("Leave fenced code blocks untouched: true or false",
		func(c *config.Config, v bool) { c.SkipCodeBlocks = &v }),
	"FORMULA_MODE": textVar("Formula detector: standard or escape-only",
		func(c *config.Config, v string) { c.FormulaMode = config.FormulaMode(v) }),
	"EXCERPT_WIDTH": intVar("Excerpt width in display cells",
		func(c *config.Config, v int) { c.ExcerptWidth = v }),
	"BACKUPS_ENABLED": boolVar("Write backups before rewriting: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"BACKUPS_MODE": textVar("Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	"NO_BACKUPS": boolVar("Disable backups: true or false",
		func(c *config.Config, v bool) { c.NoBackups = v }),
	"DRY_RUN": boolVar("Report changes without writing: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	"FORMAT": textVar("Report format: text, json, or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"OUTPUTS_DIR": textVar("Directory holding the chapters that receive outputs",
		func(c *config.Config, v string) { c.Outputs.Dir = v }),
	"OUTPUTS_TABLE": textVar("YAML table of canned output blocks",
		func(c *config.Config, v string) { c.Outputs.Table = v }),
}

func textVar(help string, set func(*config.Config, string)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, raw string) error {
		set(cfg, raw)
		return nil
	}}
}

func boolVar(help string, set func(*config.Config, bool)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", raw)
		}
		set(cfg, b)
		return nil
	}}
}

func intVar(help string, set func(*config.Config, int)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%q is not an integer", raw)
		}
		set(cfg, n)
		return nil
	}}
}

func listVar(help string, set func(*config.Config, []string)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, raw string) error {
		set(cfg, splitList(raw))
		return nil
	}}
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadFromEnv applies BOOKFIX_* environment variable overrides to cfg.
// Unset and empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		name := envVarPrefix + suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := envMappings[suffix].apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, v := range envMappings {
		out[envVarPrefix+suffix] = v.help
	}
	return out
}
