package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tableColGap = 2
	// tableMaxCell caps a cell's visible width; longer cells are cut.
	tableMaxCell = 40
)

// RenderTable renders rows under styled headers and a dim rule. Widths are
// measured on visible text so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cut := lipgloss.NewStyle().MaxWidth(tableMaxCell)

	cells := make([][]string, len(rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for r, row := range rows {
		cells[r] = make([]string, len(headers))
		for i := range headers {
			if i >= len(row) {
				continue
			}
			c := row[i]
			if lipgloss.Width(c) > tableMaxCell {
				c = cut.Render(c)
			}
			cells[r][i] = c
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var b strings.Builder
	writeRow := func(row []string, style func(string) string) {
		for i, c := range row {
			b.WriteString(style(c))
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)+tableColGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	writeRow(rule, func(s string) string { return StyleDim.Render(s) })
	for _, row := range cells {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
