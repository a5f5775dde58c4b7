package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/mission-console/internal/domain/system"
	"github.com/oshokin/mission-console/internal/view/threads"
)

// Threads draws a thread dump.
func (theme Theme) Threads(list []system.ThreadInfo) string {
	if len(list) == 0 {
		return theme.Empty("threads")
	}

	headers := make([]string, 0, len(threads.Columns))
	for _, c := range threads.Columns {
		headers = append(headers, strings.ToUpper(string(c[:1]))+string(c[1:]))
	}

	rows := make([][]string, 0, len(list))
	for _, thread := range list {
		rows = append(rows, threads.Cells(thread))
	}

	return theme.Table(headers, rows, func(row, _ int) lipgloss.Style {
		if list[row].Suspended {
			return lipgloss.NewStyle().Foreground(theme.FaintText)
		}

		return lipgloss.NewStyle()
	})
}
