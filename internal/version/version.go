package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.3.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit, build time and Go runtime.
func Full() string {
	return fmt.Sprintf("mission-console %s (commit %s, built %s, %s)", Version, Commit, BuildTime, runtime.Version())
}

// UserAgent is the value sent in the User-Agent header of REST and WebSocket calls.
func UserAgent() string {
	return "mission-console/" + Version
}
