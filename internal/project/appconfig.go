package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/RoomFit/internal/model"
)

// DefaultConfigDir is ~/.roomfit, or .roomfit in the working directory when
// no home directory is known.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".roomfit")
}

// DefaultConfigPath is the config file inside DefaultConfigDir.
func DefaultConfigPath() string {
	return DefaultPaths().Config()
}

// SaveAppConfig writes the config as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads the config at path on top of DefaultAppConfig, so a
// missing file or missing fields fall back to the defaults. Settings the
// engine cannot run with are rejected.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := readJSON(path, &config); err != nil {
		return model.AppConfig{}, err
	}
	if err := config.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("config %s: %w", filepath.Base(path), err)
	}
	if config.RecentLayouts == nil {
		config.RecentLayouts = []string{}
	}
	return config, nil
}
