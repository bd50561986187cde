package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates the files RoomFit keeps between runs. Everything lives in a
// single directory so that pointing --config elsewhere moves templates and
// saved layouts along with it.
type Paths struct {
	Dir string
}

// DefaultPaths returns the paths rooted at DefaultConfigDir.
func DefaultPaths() Paths {
	return Paths{Dir: DefaultConfigDir()}
}

// PathsFor returns the paths that sit next to the given config file.
func PathsFor(configPath string) Paths {
	return Paths{Dir: filepath.Dir(configPath)}
}

// Config is the application config file.
func (p Paths) Config() string { return filepath.Join(p.Dir, "config.json") }

// Templates is the room template store.
func (p Paths) Templates() string { return filepath.Join(p.Dir, "templates.json") }

// Layouts is the directory saved layouts are written to.
func (p Paths) Layouts() string { return filepath.Join(p.Dir, "layouts") }

// writeJSON stores v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readJSON decodes path into v. It reports false with no error when the file
// does not exist, leaving v untouched.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
