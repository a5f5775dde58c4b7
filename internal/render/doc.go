// Package render draws console tables and detail panes with lipgloss.
//
// Colors come from a Theme so severity and completion states look the same
// in every view. Rendering is pure: every function returns a string and
// callers decide where to print it.
package render
