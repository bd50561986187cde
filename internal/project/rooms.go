package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RoomFit/internal/assets"
)

// LoadRoomFile reads a room description, optionally with the fittings to
// place, from YAML or JSON. The result is validated before it is returned.
func LoadRoomFile(path string) (assets.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return assets.Scenario{}, fmt.Errorf("room file not found: %s", path)
		}
		return assets.Scenario{}, fmt.Errorf("reading room file: %w", err)
	}

	var s assets.Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".json":
		err = json.Unmarshal(data, &s)
	default:
		return assets.Scenario{}, fmt.Errorf("unsupported room file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return assets.Scenario{}, fmt.Errorf("parsing room file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return assets.Scenario{}, fmt.Errorf("invalid room in %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// SaveRoomFile writes a room description as YAML or JSON depending on the
// file extension.
func SaveRoomFile(path string, s assets.Scenario) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
	default:
		return fmt.Errorf("unsupported room file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encoding room file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
