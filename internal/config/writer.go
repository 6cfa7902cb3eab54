package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Save writes cfg to path as YAML. The file may hold the client secret, so
// it is created readable by the owner only.
func Save(path string, cfg *Config) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to expand path", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to encode configuration", err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0700); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to create configuration directory", err)
	}
	if err := os.WriteFile(expanded, data, 0600); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to write configuration file", err)
	}
	return nil
}
