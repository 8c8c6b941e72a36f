// Package config loads the API credential file the legacy tooling used:
// canvas_api_config.json next to the binary, with YAML accepted as an
// alternative. A missing file is not an error; a starter file is written so
// operators can fill it in.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config filename the tooling looks for by default.
const DefaultFile = "canvas_api_config.json"

// Config carries API credentials and the default form id used for
// transformations when a submission does not name its own form.
type Config struct {
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	BearerToken string `json:"bearer_token" yaml:"bearer_token"`
	FormID      int64  `json:"form_id" yaml:"form_id"`
}

// HasAuth reports whether the config carries usable credentials.
func (c Config) HasAuth() bool {
	return c.BearerToken != "" || (c.Username != "" && c.Password != "")
}

// Load reads the config file at path (DefaultFile when empty). A missing file
// yields a zero config after writing a starter template; malformed content is
// an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if writeErr := writeStarter(path); writeErr != nil {
			return Config{}, fmt.Errorf("config: create starter file: %w", writeErr)
		}
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	return cfg, nil
}

func writeStarter(path string) error {
	payload, err := json.MarshalIndent(Config{}, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o600)
}
