package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bookfix/pkg/config"
	"github.com/yaklabco/bookfix/pkg/diff"
	"github.com/yaklabco/bookfix/pkg/latex"
	"github.com/yaklabco/bookfix/pkg/reporter"
	"github.com/yaklabco/bookfix/pkg/runner"
)

func fixResult() *runner.Result {
	original := []string{"Intro text.", `[ \sum_{i=1}^n x_i ]`, "More text.", ""}
	change := latex.Change{
		Line:        2,
		RuleID:      latex.RuleBracketDisplayMath,
		Category:    "bracket display math",
		Original:    original[1],
		Replacement: []string{`\[`, `\sum_{i=1}^n x_i`, `\]`},
	}

	return &runner.Result{
		Mode:           runner.ModeFix,
		RuleSetVersion: latex.RuleSetVersion,
		Files: []runner.FileOutcome{
			{
				DisplayPath: "part2/ch05.md",
				Changes:     []latex.Change{change},
				Diff: diff.FromEdits("part2/ch05.md", original, []diff.Edit{
					{Start: 2, Remove: 1, Insert: change.Replacement},
				}),
				Written: true,
			},
			{DisplayPath: "part2/ch06.md"},
		},
		Stats: runner.Stats{
			FilesScanned: 2, FilesChanged: 1, FilesWritten: 1, LinesChanged: 1,
			FindingsBySeverity: map[config.Severity]int{},
		},
		Warnings: []string{"directory not found: part3"},
	}
}

func checkResult() *runner.Result {
	return &runner.Result{
		Mode: runner.ModeCheck,
		Files: []runner.FileOutcome{{
			DisplayPath: "part3/ch09.md",
			Findings: []latex.Finding{{
				Line: 7, RuleID: "TX005", RuleName: "no-dollar-math", Message: "dollar math delimiter",
				Severity: config.SeverityWarning, Excerpt: "where $x$ is the mean",
			}},
		}},
		Stats: runner.Stats{
			FilesScanned: 1, FindingsTotal: 1, FilesWithFindings: 1,
			FindingsBySeverity: map[config.Severity]int{config.SeverityWarning: 1},
		},
	}
}

func newReporter(t *testing.T, format reporter.Format, buf *bytes.Buffer) reporter.Reporter {
	t.Helper()
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "sarif", Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]reporter.Format{
		"":     reporter.FormatText,
		"text": reporter.FormatText,
		"json": reporter.FormatJSON,
		"diff": reporter.FormatDiff,
	} {
		got, err := reporter.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.True(t, got.IsValid())
	}

	_, err := reporter.ParseFormat("table")
	assert.Error(t, err)
}

func TestTextReporter_Fix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), fixResult())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	want := "part2/ch05.md (1 change)\n" +
		"     2  bracket display math  [ \\sum_{i=1}^n x_i ]\n" +
		"\n" +
		"Fixed 1 line in 1 file (2 files scanned)\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Check(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), checkResult())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()
	assert.Contains(t, out, "part3/ch09.md (1 issue)\n")
	assert.Contains(t, out, "     7  warning  dollar math delimiter  (no-dollar-math)\n")
	assert.Contains(t, out, "      where $x$ is the mean\n")
	assert.True(t, strings.HasSuffix(out, "1 issue (1 warning) in 1 file (1 file scanned)\n"))
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No chapter files found.\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatJSON, &buf).Report(context.Background(), fixResult())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "fix", out.Mode)
	assert.Equal(t, latex.RuleSetVersion, out.RuleSetVersion)
	require.Len(t, out.Files, 2)
	assert.Equal(t, "part2/ch05.md", out.Files[0].Path)
	assert.True(t, out.Files[0].Written)
	require.Len(t, out.Files[0].Changes, 1)
	assert.Equal(t, 2, out.Files[0].Changes[0].Line)
	assert.Equal(t, []string{"directory not found: part3"}, out.Warnings)
	assert.Equal(t, 1, out.Summary.LinesChanged)

	assert.Contains(t, buf.String(), `"rule_id": "TX001"`)
}

func TestJSONReporter_Findings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := newReporter(t, reporter.FormatJSON, &buf).Report(context.Background(), checkResult())
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 1, out.Summary.BySeverity["warning"])
	require.Len(t, out.Files[0].Findings, 1)
	assert.Equal(t, config.SeverityWarning, out.Files[0].Findings[0].Severity)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatDiff, &buf).Report(context.Background(), fixResult())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	want := strings.Join([]string{
		"diff --git a/part2/ch05.md b/part2/ch05.md",
		"--- a/part2/ch05.md",
		"+++ b/part2/ch05.md",
		"@@ -1,3 +1,5 @@",
		" Intro text.",
		`-[ \sum_{i=1}^n x_i ]`,
		`+\[`,
		`+\sum_{i=1}^n x_i`,
		`+\]`,
		" More text.",
		"",
		"1 file changed, 3 insertions(+), 1 deletion(-)",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}
