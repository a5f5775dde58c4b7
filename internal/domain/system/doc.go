// Package system holds server administration types: user accounts and
// thread dumps.
package system
