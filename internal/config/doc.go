// Package config defines connection settings used by the console and provides
// helpers to load, validate and save them in YAML format.
//
// MCON_* environment variables (MCON_SERVER_URL, MCON_INSTANCE, ...) override
// values read from the file.
package config
