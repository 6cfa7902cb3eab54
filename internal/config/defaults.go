package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
)

// Environment variables read by ApplyEnv.
const (
	EnvInstanceURL       = "NINJAONE_INSTANCE_URL"
	EnvClientID          = "NINJAONE_CLIENT_ID"
	EnvClientSecret      = "NINJAONE_CLIENT_SECRET"
	EnvSpeedtestServerID = "SPEEDTEST_SERVER_ID"
)

// DefaultScope is the OAuth2 scope requested for script library access.
const DefaultScope = "monitoring management control"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Scope:   DefaultScope,
			Timeout: 30,
		},
		Sync: SyncConfig{
			ScriptsDir: "scripts",
		},
		Speedtest: SpeedtestConfig{
			Version:         "1.2.0",
			InstallDir:      DefaultSpeedtestInstallDir(),
			DownloadBaseURL: "https://install.speedtest.net/app/cli",
			Timeout:         120,
			DownloadTimeout: 60,
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

// DefaultSpeedtestInstallDir returns the well-known speedtest install
// directory for the current platform.
func DefaultSpeedtestInstallDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "speedtest")
	}
	return "/opt/speedtest"
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "rmmkit", "config.yaml")
}
