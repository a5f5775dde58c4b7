package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/mission-console/internal/view/cmdhist"
)

// CommandHistory draws command history rows.
func (theme Theme) CommandHistory(rows []cmdhist.Row) string {
	if len(rows) == 0 {
		return theme.Empty("commands")
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, row.Cells())
	}

	return theme.Table(cmdhist.Columns, cells, func(row, col int) lipgloss.Style {
		if col != 0 {
			return lipgloss.NewStyle()
		}

		return lipgloss.NewStyle().Foreground(theme.CompletionColor(rows[row].Completion))
	})
}
