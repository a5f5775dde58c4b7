package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/mission-console/internal/domain/mdb"
	"github.com/oshokin/mission-console/internal/view/parameter"
)

// Parameter draws the detail pane of an entry: its name, description and
// type, and for enumerations every state with its alarm level. contextAlarm
// may be nil.
func (theme Theme) Parameter(entry mdb.Entry, ptype *mdb.ParameterType, contextAlarm *mdb.ContextAlarmInfo) string {
	if entry == nil {
		return theme.Empty("parameter selected")
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)

	var b strings.Builder

	line := func(label, value string) {
		if value == "" {
			return
		}

		b.WriteString(labelStyle.Render(label + ":"))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("Name", entry.EntryName())
	line("Description", entry.Description())

	entryType := entry.EntryType()
	if entryType != nil {
		line("Type", entryType.EngType)

		units := make([]string, 0, len(entryType.UnitSet))
		for _, u := range entryType.UnitSet {
			units = append(units, u.Unit)
		}

		line("Units", strings.Join(units, ", "))

		members := make([]string, 0, len(entryType.Member))
		for _, m := range entryType.Member {
			members = append(members, m.Name)
		}

		line("Members", strings.Join(members, ", "))
	}

	if contextAlarm != nil {
		line("Context", contextAlarm.Context)
	}

	out := b.String()

	if entryType == nil || len(entryType.EnumValue) == 0 {
		return out
	}

	rows := make([][]string, 0, len(entryType.EnumValue))
	levels := make([]mdb.AlarmLevel, 0, len(entryType.EnumValue))

	for _, ev := range entryType.EnumValue {
		level, _ := parameter.AlarmLevel(ptype, contextAlarm, ev)
		levels = append(levels, level)
		rows = append(rows, []string{strconv.FormatInt(ev.Value, 10), ev.Label, string(level), ev.Description})
	}

	return out + theme.Table([]string{"Value", "Label", "Alarm level", "Description"}, rows, func(row, col int) lipgloss.Style {
		if col != 2 {
			return lipgloss.NewStyle()
		}

		return lipgloss.NewStyle().Foreground(theme.LevelColor(levels[row]))
	})
}
