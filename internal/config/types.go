package config

// Config represents the rmmkit configuration.
type Config struct {
	// API configuration for the RMM platform's REST API.
	API APIConfig `yaml:"api"`
	// Sync configuration for the script library change plan.
	Sync SyncConfig `yaml:"sync"`
	// Speedtest configuration for the speed test monitor.
	Speedtest SpeedtestConfig `yaml:"speedtest"`
	// Output configuration for display and logging.
	Output OutputConfig `yaml:"output"`
}

// APIConfig represents RMM platform API settings.
type APIConfig struct {
	// InstanceURL is the platform base URL (e.g. https://eu.ninjarmm.com).
	InstanceURL string `yaml:"instance_url"`
	// ClientID is the OAuth2 client ID.
	ClientID string `yaml:"client_id"`
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string `yaml:"client_secret"`
	// Scope is the space separated OAuth2 scope list.
	Scope string `yaml:"scope"`
	// Timeout is the request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// SyncConfig represents script synchronization settings.
type SyncConfig struct {
	// ScriptsDir is the directory scanned for script files when no files
	// are given on the command line.
	ScriptsDir string `yaml:"scripts_dir"`
}

// SpeedtestConfig represents speed test monitor settings.
type SpeedtestConfig struct {
	// Version is the pinned Ookla speedtest CLI version to install.
	Version string `yaml:"version"`
	// InstallDir is the well-known install directory checked before PATH.
	InstallDir string `yaml:"install_dir"`
	// DownloadBaseURL is the base URL the versioned archive is fetched from.
	DownloadBaseURL string `yaml:"download_base_url"`
	// ServerID selects a specific speedtest server when positive.
	ServerID int `yaml:"server_id"`
	// Timeout is the speed test run timeout in seconds.
	Timeout int `yaml:"timeout"`
	// DownloadTimeout is the archive download timeout in seconds.
	DownloadTimeout int `yaml:"download_timeout"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `yaml:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `yaml:"quiet"`
	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
	// LogLevel sets the minimum log level (error, warn, info, debug).
	// Ignored when debug logging is enabled.
	LogLevel string `yaml:"log_level"`
}
