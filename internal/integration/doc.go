// Package integration holds end-to-end tests that drive the client, data
// sources, views and dialogs against an in-process fake server.
package integration
