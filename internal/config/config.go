package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the connection and presentation settings of the console.
type Config struct {
	// ServerURL is the base HTTP URL of the mission-control server.
	ServerURL string `yaml:"server_url"`
	// Instance is the server instance all requests are scoped to.
	Instance string `yaml:"instance"`
	// Processor is the default processor used for live data.
	Processor string `yaml:"processor"`
	// Username for basic authentication; empty disables authentication.
	Username string `yaml:"username,omitempty"`
	// Password for basic authentication.
	Password string `yaml:"password,omitempty"`
	// DisplayBucket holds display files and images.
	DisplayBucket string `yaml:"display_bucket"`
	// StackBucket holds command stacks.
	StackBucket string `yaml:"stack_bucket"`
	// Timeout is the duration for individual REST calls.
	Timeout time.Duration `yaml:"timeout"`
	// Retries is the number of retries of failed idempotent REST calls.
	Retries int `yaml:"retries,omitempty"`
	// LogLevel is the minimum level written to the log.
	LogLevel string `yaml:"log_level,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for connection settings.
	DefaultConfigFilename = "mission-console.yaml"

	// DefaultProcessor is the live processor name used when none is configured.
	DefaultProcessor = "realtime"

	// DefaultDisplayBucket is the bucket where displays are stored.
	DefaultDisplayBucket = "displays"

	// DefaultStackBucket is the bucket where command stacks are stored.
	DefaultStackBucket = "stacks"

	// DefaultTimeout is the default duration for REST calls.
	DefaultTimeout = 10 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// EnvPrefix prefixes environment variables that override file settings.
	EnvPrefix = "MCON"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerURLRequired is returned when the server URL is missing.
	errServerURLRequired = errors.New("server url must be provided")
	// errInstanceRequired is returned when the instance is missing.
	errInstanceRequired = errors.New("instance must be provided")
)

// Load reads configuration from the provided path, overlays environment
// variables and validates essential fields.
// A missing file is not an error when the environment supplies the settings.
func Load(path string) (*Config, error) {
	return LoadWith(path, nil)
}

// LoadWith is Load with a final override step, typically command line flags,
// applied after the environment and before validation.
func LoadWith(path string, override func(*Config)) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	var cfg Config

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Environment only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	applyEnv(&cfg)

	if override != nil {
		override(&cfg)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, the file may hold a password.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting
// and fills in defaults.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerURL == "" {
		return errServerURLRequired
	}

	u, err := url.ParseRequestURI(settings.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server url scheme %q", u.Scheme)
	}

	settings.ServerURL = strings.TrimRight(settings.ServerURL, "/")

	if settings.Instance == "" {
		return errInstanceRequired
	}

	if settings.Processor == "" {
		settings.Processor = DefaultProcessor
	}

	if settings.DisplayBucket == "" {
		settings.DisplayBucket = DefaultDisplayBucket
	}

	if settings.StackBucket == "" {
		settings.StackBucket = DefaultStackBucket
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	return nil
}

// applyEnv overlays MCON_* environment variables on top of file settings.
func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	strs := map[string]*string{
		"server_url":     &cfg.ServerURL,
		"instance":       &cfg.Instance,
		"processor":      &cfg.Processor,
		"username":       &cfg.Username,
		"password":       &cfg.Password,
		"display_bucket": &cfg.DisplayBucket,
		"stack_bucket":   &cfg.StackBucket,
		"log_level":      &cfg.LogLevel,
	}

	for key, target := range strs {
		_ = v.BindEnv(key) //nolint:errcheck // BindEnv only fails without a key.

		if v.IsSet(key) {
			*target = v.GetString(key)
		}
	}

	_ = v.BindEnv("timeout") //nolint:errcheck // BindEnv only fails without a key.

	if v.IsSet("timeout") {
		cfg.Timeout = v.GetDuration("timeout")
	}

	_ = v.BindEnv("retries") //nolint:errcheck // BindEnv only fails without a key.

	if v.IsSet("retries") {
		cfg.Retries = v.GetInt("retries")
	}
}
