// Package alarms implements the alarms watch command.
//
// The command follows the active alarms of a processor and redraws the alarm
// table on every change.
package alarms
