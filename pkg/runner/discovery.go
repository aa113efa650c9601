package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPattern is returned for a malformed include or exclude glob.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// Discovery is the outcome of file enumeration.
type Discovery struct {
	// Files are absolute paths, sorted.
	Files []string

	// Warnings describe skipped inputs, such as a missing directory.
	Warnings []string
}

// Discover enumerates chapter files. Each directory is listed without recursion.
// A directory that does not exist produces a warning rather than an error.
func Discover(ctx context.Context, opts Options) (*Discovery, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	for _, pattern := range slices.Concat(opts.IncludeGlobs, opts.ExcludeGlobs) {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	extensions := opts.effectiveExtensions()
	result := &Discovery{}
	seen := make(map[string]bool)

	add := func(path string) {
		if seen[path] || excluded(workDir, path, opts.ExcludeGlobs) {
			return
		}
		seen[path] = true
		result.Files = append(result.Files, path)
	}

	for _, dir := range opts.effectiveDirectories() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absDir := absPath(workDir, dir)
		info, err := os.Stat(absDir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			result.Warnings = append(result.Warnings, fmt.Sprintf("directory not found: %s", dir))
			continue
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", dir, err)
		case !info.IsDir():
			add(absDir)
			continue
		}

		entries, err := os.ReadDir(absDir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if hasExtension(entry.Name(), extensions) {
				add(filepath.Join(absDir, entry.Name()))
			}
		}
	}

	for _, pattern := range opts.IncludeGlobs {
		matches, err := doublestar.Glob(os.DirFS(workDir), filepath.ToSlash(pattern),
			doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			add(filepath.Join(workDir, filepath.FromSlash(match)))
		}
	}

	slices.Sort(result.Files)
	return result, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func absPath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// excluded matches the work-dir relative path, and the base name, against patterns.
func excluded(workDir, path string, patterns []string) bool {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if doublestar.MatchUnvalidated(pattern, rel) || doublestar.MatchUnvalidated(pattern, base) {
			return true
		}
	}
	return false
}
