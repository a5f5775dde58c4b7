// Package cmdhist implements the command history commands: a live table of
// issued commands and an xlsx export of the archive.
package cmdhist
