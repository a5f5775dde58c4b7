// Package storage implements bucket object commands: renaming a stored
// object and printing the download URL of a display.
package storage
