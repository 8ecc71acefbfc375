package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// newTable builds a rounded table. The column at highlight is rendered in
// the finding color.
func newTable(headers []string, rows [][]string, highlight int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(styleHeader)
			case col == highlight:
				return base.Inherit(styleFinding)
			case col == 0:
				return base.Inherit(styleValue)
			}
			return base.Inherit(styleDim)
		})
}
