// Package alarm contains the live alarm model.
//
// An Alarm is a notification about an out-of-limits parameter, tagged with
// the EventType that caused it. The qualified parameter name of the trigger
// value identifies the alarm across notifications.
package alarm
