// Package parameters implements the parameter detail command.
package parameters
