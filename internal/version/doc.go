// Package version exposes build metadata for the console.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
// UserAgent is the identification sent to the server on every call.
package version
