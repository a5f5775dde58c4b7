// Package threads is the server threads table: a name filter and sortable
// columns over a thread dump.
package threads
