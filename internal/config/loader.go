package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// sourceEnvironment names environment variables as a configuration source.
const sourceEnvironment = "environment"

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for YAML configuration files.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
func (l *FileLoader) Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to expand path", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	// Decode over the defaults so omitted keys keep their default values.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
	}

	// Explicitly zeroed fields fall back to defaults as well
	mergeConfig(cfg, DefaultConfig())

	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	return Validate(config)
}

// LookupEnv is the environment lookup used by ApplyEnv.
type LookupEnv func(key string) (string, bool)

// ApplyEnv overrides the API settings from environment variables.
// Unset or empty variables leave the configuration untouched.
// SPEEDTEST_SERVER_ID is not read here; only the speedtest command
// consumes it.
func ApplyEnv(cfg *Config, lookup LookupEnv) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvInstanceURL); ok && v != "" {
		cfg.API.InstanceURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}
	if v, ok := lookup(EnvClientID); ok && v != "" {
		cfg.API.ClientID = v
	}
	if v, ok := lookup(EnvClientSecret); ok && v != "" {
		cfg.API.ClientSecret = v
	}
}

// Load loads the configuration for a command, applies environment
// overrides and validates the result. An explicit path must exist; an
// empty path falls back to DefaultConfigPath, which is optional.
func Load(path string) (*Config, error) {
	loader := NewLoader()

	var cfg *Config
	var err error
	if path != "" {
		cfg, err = loader.Load(path)
	} else {
		cfg, err = loader.LoadOrDefault(DefaultConfigPath())
	}
	if err != nil {
		return nil, err
	}

	ApplyEnv(cfg, os.LookupEnv)
	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges missing fields from defaults into cfg.
func mergeConfig(cfg, defaults *Config) {
	// API
	if cfg.API.Scope == "" {
		cfg.API.Scope = defaults.API.Scope
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = defaults.API.Timeout
	}
	cfg.API.InstanceURL = strings.TrimRight(cfg.API.InstanceURL, "/")

	// Sync
	if cfg.Sync.ScriptsDir == "" {
		cfg.Sync.ScriptsDir = defaults.Sync.ScriptsDir
	}

	// Speedtest
	if cfg.Speedtest.Version == "" {
		cfg.Speedtest.Version = defaults.Speedtest.Version
	}
	if cfg.Speedtest.InstallDir == "" {
		cfg.Speedtest.InstallDir = defaults.Speedtest.InstallDir
	}
	if cfg.Speedtest.DownloadBaseURL == "" {
		cfg.Speedtest.DownloadBaseURL = defaults.Speedtest.DownloadBaseURL
	}
	if cfg.Speedtest.Timeout == 0 {
		cfg.Speedtest.Timeout = defaults.Speedtest.Timeout
	}
	if cfg.Speedtest.DownloadTimeout == 0 {
		cfg.Speedtest.DownloadTimeout = defaults.Speedtest.DownloadTimeout
	}
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}
