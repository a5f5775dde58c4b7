// Package command models command history entries: the identity of an issued
// command and the attribute trail (source, username, completion status...)
// that accumulates while it travels through the system.
package command
