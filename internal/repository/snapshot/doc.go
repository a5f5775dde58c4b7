// Package snapshot persists the last rendered collection of a live view.
//
// The FileRepository stores and loads a Snapshot as JSON on disk so an
// operator can keep the alarms or command history seen by the console.
package snapshot
