package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/RoomFit/internal/model"
)

// LayoutExt is the file extension of saved layouts.
const LayoutExt = ".layout.json"

// SaveLayout writes a layout as JSON, creating parent directories.
func SaveLayout(path string, layout model.Layout) error {
	return writeJSON(path, layout)
}

// LoadLayout reads a layout from a JSON file and checks that its room is
// usable and that every placement names a model.
func LoadLayout(path string) (model.Layout, error) {
	var layout model.Layout
	found, err := readJSON(path, &layout)
	if err != nil {
		return model.Layout{}, err
	}
	if !found {
		return model.Layout{}, fmt.Errorf("layout %s: %w", path, os.ErrNotExist)
	}
	if err := layout.Room.Validate(); err != nil {
		return model.Layout{}, fmt.Errorf("layout %s: %w", filepath.Base(path), err)
	}
	for i, p := range layout.Placements {
		if p.Representation.FittingModelID == "" {
			return model.Layout{}, fmt.Errorf("layout %s: placement %d has no fitting model", filepath.Base(path), i+1)
		}
	}
	if layout.Order == nil {
		layout.Order = []string{}
	}
	if layout.Placements == nil {
		layout.Placements = []model.FittingPlacement{}
	}
	return layout, nil
}

// LayoutFileName builds a file name from a layout's name and id.
func LayoutFileName(layout model.Layout) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, strings.TrimSpace(layout.Name))
	if name == "" {
		name = "layout"
	}
	return name + "-" + layout.ID + LayoutExt
}

// ListLayouts returns the saved layout files in dir, sorted by name.
// A missing directory yields an empty list.
func ListLayouts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	paths := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), LayoutExt) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
