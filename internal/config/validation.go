package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate validates the configuration values that apply to every command.
func Validate(config *Config) error {
	if config.API.Timeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "api.timeout", "timeout cannot be negative")
	}
	if config.API.InstanceURL != "" {
		if err := validateInstanceURL(config.API.InstanceURL); err != nil {
			return err
		}
	}
	if config.Speedtest.Timeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "speedtest.timeout", "timeout cannot be negative")
	}
	if config.Speedtest.DownloadTimeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "speedtest.download_timeout", "timeout cannot be negative")
	}
	switch strings.ToLower(config.Output.LogLevel) {
	case "", "err", "error", "warn", "warning", "info", "debug":
	default:
		return NewConfigErrorWithField(ConfigValidationFailed, "", "output.log_level",
			fmt.Sprintf("unknown log level %q", config.Output.LogLevel))
	}
	if config.Speedtest.Version == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "speedtest.version", "version is required")
	}
	return nil
}

// ValidateAPI checks that the API credentials needed by the script library
// commands are present.
func ValidateAPI(config *Config) error {
	required := []struct {
		value string
		field string
		env   string
	}{
		{config.API.InstanceURL, "api.instance_url", EnvInstanceURL},
		{config.API.ClientID, "api.client_id", EnvClientID},
		{config.API.ClientSecret, "api.client_secret", EnvClientSecret},
	}

	for _, r := range required {
		if r.value == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, sourceEnvironment, r.env,
				fmt.Sprintf("%s is required (set %s or %s in the config file)", r.field, r.env, r.field))
		}
	}

	return validateInstanceURL(config.API.InstanceURL)
}

// validateInstanceURL checks that the instance URL is an absolute http(s) URL.
func validateInstanceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigError{
			Type:    ConfigValidationFailed,
			Field:   "api.instance_url",
			Message: "invalid URL",
			Cause:   err,
		}
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "api.instance_url",
			fmt.Sprintf("instance URL must be an absolute http(s) URL, got %q", raw))
	}
	return nil
}
