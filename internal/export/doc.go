// Package export writes command history spreadsheets.
package export
