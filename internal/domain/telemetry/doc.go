// Package telemetry holds the value types shared by alarms, command history
// and parameters: tagged Values, object identifiers and parameter samples.
package telemetry
