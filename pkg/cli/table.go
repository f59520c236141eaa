package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// columnGap separates table columns.
const columnGap = "  "

// Table renders a column-aligned table with a styled header row.
// Column widths follow the widest cell; widths are measured with
// lipgloss.Width so styled and multi-byte cells align correctly.
func (s Styles) Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString(columnGap)
		}
		// Last column stays unpadded to avoid trailing spaces.
		if i == len(headers)-1 {
			b.WriteString(s.Header.Render(h))
		} else {
			b.WriteString(s.Header.Render(pad(h, widths[i])))
		}
	}
	b.WriteByte('\n')

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i == len(row)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(pad(cell, widths[i]))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func pad(s string, width int) string {
	if d := width - lipgloss.Width(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
