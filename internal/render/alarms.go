package render

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/mission-console/internal/domain/alarm"
	"github.com/oshokin/mission-console/internal/domain/mdb"
)

// alarmHeaders are the columns of the alarms table.
var alarmHeaders = []string{"Severity", "Parameter", "Trigger value", "Live value", "Violations", "Event", "Acknowledged"}

// Alarms draws the active alarms in the given order.
func (theme Theme) Alarms(alarms []alarm.Alarm) string {
	if len(alarms) == 0 {
		return theme.Empty("active alarms")
	}

	rows := make([][]string, 0, len(alarms))

	for i := range alarms {
		a := &alarms[i]
		name, _ := a.Name()

		acknowledged := ""
		if a.IsAcknowledged() {
			acknowledged = a.AcknowledgeInfo.AcknowledgedBy
			if !a.AcknowledgeInfo.AcknowledgeTime.IsZero() {
				acknowledged += " at " + a.AcknowledgeInfo.AcknowledgeTime.UTC().Format(time.RFC3339)
			}
		}

		rows = append(rows, []string{
			a.Severity(),
			name,
			a.TriggerValue.DisplayValue(),
			a.LatestValue().DisplayValue(),
			strconv.Itoa(a.Violations),
			string(a.Type),
			acknowledged,
		})
	}

	return theme.Table(alarmHeaders, rows, func(row, col int) lipgloss.Style {
		if col != 0 {
			return lipgloss.NewStyle()
		}

		return lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.LevelColor(mdb.AlarmLevel(alarms[row].Severity())))
	})
}
