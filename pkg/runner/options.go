// Package runner drives bookfix over a set of chapter files, one file at a time.
package runner

import (
	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/fsutil"
)

// Mode selects what a run does with each chapter.
type Mode string

const (
	// ModeFix rewrites bracket formulas in place.
	ModeFix Mode = "fix"

	// ModeCheck reports rule findings and never writes.
	ModeCheck Mode = "check"

	// ModeDryRun rewrites in memory and reports the changes without writing.
	ModeDryRun Mode = "dry-run"
)

// Writes reports whether the mode writes files.
func (m Mode) Writes() bool {
	return m == ModeFix
}

// Options controls a run.
type Options struct {
	// Directories are scanned non-recursively. Files may be given too.
	// Empty means config.DefaultDirectories().
	Directories []string

	// WorkingDir resolves relative Directories and glob patterns.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions filters directory entries (lowercase, leading dot).
	// Empty means config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs are extra doublestar patterns relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs are doublestar patterns for files to skip.
	ExcludeGlobs []string

	Mode Mode

	// Backups is applied before each write in ModeFix.
	Backups fsutil.BackupConfig
}

// OptionsFromConfig builds run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, mode Mode) Options {
	opts := Options{Mode: mode}
	if cfg == nil {
		return opts
	}

	opts.Directories = cfg.Directories
	opts.Extensions = cfg.Extensions
	opts.IncludeGlobs = cfg.Include
	opts.ExcludeGlobs = cfg.Ignore
	opts.Backups = fsutil.BackupConfig{
		Enabled: cfg.BackupsActive(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	return opts
}

func (o Options) effectiveDirectories() []string {
	if len(o.Directories) == 0 {
		return config.DefaultDirectories()
	}
	return o.Directories
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectiveMode() Mode {
	if o.Mode == "" {
		return ModeFix
	}
	return o.Mode
}
