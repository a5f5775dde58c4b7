//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"

	"github.com/oshokin/mission-console/internal/client"
	"github.com/oshokin/mission-console/internal/config"
	"github.com/oshokin/mission-console/internal/logger"
)

// Target selects the server a command talks to. Empty fields fall back to
// the configuration file and the environment.
type Target struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerURL overrides the server URL from config when specified.
	ServerURL string
	// Instance overrides the instance from config when specified.
	Instance string
	// Processor overrides the processor from config when specified.
	Processor string
	// LogLevel overrides the log level from config when specified.
	LogLevel string
}

// Settings loads the configuration and applies the overrides of t.
func (t *Target) Settings() (*config.Config, error) {
	cfg, err := config.LoadWith(t.ConfigPath, func(cfg *config.Config) {
		if t.ServerURL != "" {
			cfg.ServerURL = t.ServerURL
		}

		if t.Instance != "" {
			cfg.Instance = t.Instance
		}

		if t.Processor != "" {
			cfg.Processor = t.Processor
		}

		if t.LogLevel != "" {
			cfg.LogLevel = t.LogLevel
		}
	})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return cfg, nil
}

// Connect loads the settings, applies the configured log level and opens a
// client. Close the client when done.
func Connect(ctx context.Context, t *Target) (*client.Client, *config.Config, error) {
	cfg, err := t.Settings()
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogLevel != "" && !logger.SetLevelFromString(cfg.LogLevel) {
		logger.WarnKV(ctx, "Ignoring unknown log level", "log_level", cfg.LogLevel)
	}

	opts := []client.Option{
		client.WithCallTimeout(cfg.Timeout),
		client.WithRetries(cfg.Retries),
	}

	if cfg.Username != "" {
		opts = append(opts, client.WithBasicAuth(cfg.Username, cfg.Password))
	}

	c, err := client.New(cfg.ServerURL, cfg.Instance, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}

	logger.DebugKV(ctx, "Connected", "server_url", cfg.ServerURL, "instance", cfg.Instance)

	return c, cfg, nil
}
