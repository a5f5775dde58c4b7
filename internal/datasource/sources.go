package datasource

import (
	"github.com/oshokin/mission-console/internal/domain/alarm"
	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/reducer"
)

// Alarms is the data source behind the alarms view.
type Alarms = DataSource[string, alarm.Alarm]

// CommandHistory is the data source behind the command history view.
type CommandHistory = DataSource[command.ID, command.Entry]

// NewAlarms creates a data source of active alarms keyed by parameter name.
func NewAlarms(source Source[alarm.Alarm]) *Alarms {
	return New("alarms", source, reducer.AlarmRules())
}

// NewCommandHistory creates a data source of command history entries.
func NewCommandHistory(source Source[command.Entry]) *CommandHistory {
	return New("command-history", source, reducer.CommandRules())
}
