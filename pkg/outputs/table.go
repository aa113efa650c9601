package outputs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/bookfix/pkg/fsutil"
)

// ErrInvalidTable is returned when an output table is structurally invalid.
var ErrInvalidTable = errors.New("invalid output table")

// Table maps chapter files to the canned output blocks inserted after their code samples.
type Table struct {
	Files []FileOutputs `yaml:"files"`
}

// FileOutputs lists the output blocks for one chapter, in code block order.
type FileOutputs struct {
	File    string   `yaml:"file"`
	Outputs []string `yaml:"outputs"`
}

// ParseTable parses and validates a YAML output table.
func ParseTable(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse output table: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// LoadTable reads and parses the output table at path.
func LoadTable(ctx context.Context, path string) (*Table, error) {
	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read output table: %w", err)
	}

	table, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Validate checks that every entry names a file and no file appears twice.
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.Files))
	var errs []error

	for i, entry := range t.Files {
		name := strings.TrimSpace(entry.File)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("%w: entry %d has no file", ErrInvalidTable, i+1))
		case seen[name]:
			errs = append(errs, fmt.Errorf("%w: file %q listed twice", ErrInvalidTable, name))
		}
		seen[name] = true
	}

	return errors.Join(errs...)
}

// Len returns the total number of output blocks in the table.
func (t *Table) Len() int {
	n := 0
	for _, entry := range t.Files {
		n += len(entry.Outputs)
	}
	return n
}
