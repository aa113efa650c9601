package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/bookfix/pkg/latex"
)

const (
	tableGap          = "  "
	fixableSymbol     = "+"
	maxDescriptionCol = 72
)

// FormatRulesTable renders the rule set as an aligned table with a legend.
func (s *Styles) FormatRulesTable(rules *latex.RuleSet) string {
	headers := []string{"ID", "NAME", "SEVERITY", "FIX", "DESCRIPTION"}
	rows := make([][]string, 0, len(rules.Rules()))
	for _, rule := range rules.Rules() {
		fix := ""
		if rule.Fixable {
			fix = fixableSymbol
		}
		rows = append(rows, []string{
			rule.ID, rule.Name, string(rule.Severity), fix,
			Truncate(rule.Description, maxDescriptionCol),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var builder strings.Builder
	builder.WriteString(s.TableHeader.Render(joinRow(headers, widths)) + "\n")

	total := len(tableGap) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	builder.WriteString(s.TableBorder.Render(strings.Repeat("-", total)) + "\n")

	for _, row := range rows {
		builder.WriteString(joinRow(row, widths) + "\n")
	}

	builder.WriteString(s.Dim.Render("rule set "+rules.Version+"; "+fixableSymbol+" = fixed by bookfix fix") + "\n")
	return builder.String()
}

func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.Join(padded, tableGap)
}
