package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, format validations and defaults.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing URL.
	settings := new(Config)

	err := Validate(settings)
	require.Error(t, err)

	// Bad URL.
	settings = &Config{
		ServerURL: "not a url",
		Instance:  "simulator",
	}

	err = Validate(settings)
	require.Error(t, err)

	// Unsupported scheme.
	settings = &Config{
		ServerURL: "ftp://yamcs.local",
		Instance:  "simulator",
	}

	err = Validate(settings)
	require.Error(t, err)

	// Missing instance.
	settings = &Config{
		ServerURL: "http://localhost:8090",
	}

	err = Validate(settings)
	require.ErrorIs(t, err, errInstanceRequired)

	// Defaults applied.
	settings = &Config{
		ServerURL: "http://localhost:8090/",
		Instance:  "simulator",
	}

	err = Validate(settings)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8090", settings.ServerURL)
	require.Equal(t, DefaultProcessor, settings.Processor)
	require.Equal(t, DefaultDisplayBucket, settings.DisplayBucket)
	require.Equal(t, DefaultStackBucket, settings.StackBucket)
	require.Equal(t, DefaultTimeout, settings.Timeout)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		ServerURL: "http://localhost:8090",
		Instance:  "simulator",
		Processor: "replay",
		Timeout:   3 * time.Second,
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.ServerURL, loaded.ServerURL)
	require.Equal(t, settings.Instance, loaded.Instance)
	require.Equal(t, "replay", loaded.Processor)
	require.Equal(t, 3*time.Second, loaded.Timeout)

	// File exists with restricted permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(DefaultFilePermissions), info.Mode().Perm())
}

// TestLoad_EnvOverlay checks that MCON_* variables override file values
// and can stand in for a missing file.
//
//nolint:paralleltest // t.Setenv cannot be used with t.Parallel.
func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("MCON_SERVER_URL", "https://mcs.example.com")
	t.Setenv("MCON_INSTANCE", "flight")
	t.Setenv("MCON_TIMEOUT", "2s")

	loaded, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "https://mcs.example.com", loaded.ServerURL)
	require.Equal(t, "flight", loaded.Instance)
	require.Equal(t, 2*time.Second, loaded.Timeout)
	require.Equal(t, DefaultProcessor, loaded.Processor)
}

// TestLoadWith_Override ensures overrides win over the file and are validated.
func TestLoadWith_Override(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, Save(path, &Config{ServerURL: "http://localhost:8090", Instance: "simulator", Retries: 2}))

	loaded, err := LoadWith(path, func(cfg *Config) {
		cfg.Instance = "flight"
		cfg.Processor = "replay-1"
	})
	require.NoError(t, err)
	require.Equal(t, "flight", loaded.Instance)
	require.Equal(t, "replay-1", loaded.Processor)
	require.Equal(t, 2, loaded.Retries)

	_, err = LoadWith(path, func(cfg *Config) {
		cfg.ServerURL = "ftp://localhost"
	})
	require.Error(t, err)
}
