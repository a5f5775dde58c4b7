// Package threads implements the server thread dump command.
package threads
