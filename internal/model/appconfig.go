package model

import "fmt"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default engine settings applied to new requests
	DefaultCellSize        float64 `json:"default_cell_size"`
	DefaultWindowClearance float64 `json:"default_window_clearance"`
	DefaultSeed            int64   `json:"default_seed"`
	DefaultSearchLimit     int     `json:"default_search_limit"`

	// Catalog to load instead of the built-in one; empty = built-in
	CatalogPath string `json:"catalog_path"`

	// Server preferences
	ListenAddress string `json:"listen_address"`

	// Application preferences
	RecentLayouts []string `json:"recent_layouts"`
	Verbosity     int      `json:"verbosity"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultCellSize:        defaults.CellSize,
		DefaultWindowClearance: defaults.WindowClearance,
		DefaultSeed:            defaults.Seed,
		DefaultSearchLimit:     defaults.SearchLimit,
		CatalogPath:            "",
		ListenAddress:          ":8080",
		RecentLayouts:          []string{},
		Verbosity:              0,
	}
}

// Validate rejects defaults the engine cannot run with. Zero values are
// accepted and mean "keep the engine default".
func (c AppConfig) Validate() error {
	if c.DefaultCellSize < 0 {
		return fmt.Errorf("default_cell_size must not be negative, got %g", c.DefaultCellSize)
	}
	if c.DefaultWindowClearance < 0 {
		return fmt.Errorf("default_window_clearance must not be negative, got %g", c.DefaultWindowClearance)
	}
	if c.DefaultSearchLimit < 0 {
		return fmt.Errorf("default_search_limit must not be negative, got %d", c.DefaultSearchLimit)
	}
	return nil
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultCellSize > 0 {
		s.CellSize = c.DefaultCellSize
	}
	if c.DefaultWindowClearance > 0 {
		s.WindowClearance = c.DefaultWindowClearance
	}
	s.Seed = c.DefaultSeed
	s.SearchLimit = c.DefaultSearchLimit
}

// AddRecentLayout records path at the front of the recent list, keeping at
// most max entries and no duplicates.
func (c *AppConfig) AddRecentLayout(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			out = append(out, p)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	c.RecentLayouts = out
}
