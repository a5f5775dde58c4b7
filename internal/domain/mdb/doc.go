// Package mdb holds the mission database definitions the console displays:
// parameters, their structural types (aggregates, arrays, enumerations) and
// the alarm definitions attached to those types.
package mdb
