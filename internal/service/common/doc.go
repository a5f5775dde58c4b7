// Package common holds helpers shared by several services.
//
// It resolves the connection target from the configuration file, the
// environment and command line overrides, opens the API client, detects the
// local actor (hostname/username) for audit logging and runs the live table
// loop used by the watch commands.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
