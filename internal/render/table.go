package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// CellStyle picks the style of a body cell; row is the index into the rows
// passed to Table.
type CellStyle func(row, col int) lipgloss.Style

// Table draws headers and rows with the theme's chrome. cell may be nil.
func (theme Theme) Table(headers []string, rows [][]string, cell CellStyle) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(theme.HeaderForeground)
	bodyStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(theme.NormalText)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.BorderColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if cell != nil {
				return cell(row, col).Padding(0, 1).Inherit(bodyStyle)
			}

			return bodyStyle
		})

	return t.String()
}

// Empty renders the placeholder shown instead of an empty table.
func (theme Theme) Empty(what string) string {
	return lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Italic(true).
		Render("No " + what + ".")
}
