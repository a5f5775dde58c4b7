// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, WarnKV, ErrorKV, etc.).
//
// Data sources, dialogs and commands take a context and extract the logger
// from it, so every log line carries the scope it was produced in.
package logger
