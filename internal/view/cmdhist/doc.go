// Package cmdhist is the command history page: it loads the live command
// history, tracks the selected entry and turns entries into table rows.
package cmdhist
