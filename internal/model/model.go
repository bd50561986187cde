package model

import (
	"math"

	"github.com/google/uuid"
)

// RepresentationObject identifies what to draw for a placement without
// carrying any geometry.
type RepresentationObject struct {
	FittingModelID string `json:"fitting_model_id" yaml:"fitting_model_id"`
	FittingTypeID  string `json:"fitting_type_id" yaml:"fitting_type_id"`
}

// FittingPlacement is one placed fitting: centre position in room
// coordinates (origin at the room centre, metres) and orientation in radians.
type FittingPlacement struct {
	X              float64              `json:"x" yaml:"x"`
	Y              float64              `json:"y" yaml:"y"`
	Orientation    float64              `json:"orientation" yaml:"orientation"`
	Representation RepresentationObject `json:"representation" yaml:"representation"`
}

// QuarterTurns returns the orientation as a number of quarter turns (0..3).
func (p FittingPlacement) QuarterTurns() int {
	n := int(math.Round(p.Orientation/(math.Pi/2))) % 4
	if n < 0 {
		n += 4
	}
	return n
}

// Footprint returns the min and max floor corners of the placed bounding box.
func (p FittingPlacement) Footprint(box BoundingBox3D) (minX, minY, maxX, maxY float64) {
	w, d := box.Width, box.Depth
	if p.QuarterTurns()%2 == 1 {
		w, d = d, w
	}
	return p.X - w/2, p.Y - d/2, p.X + w/2, p.Y + d/2
}

// Settings holds the placement engine configuration.
type Settings struct {
	CellSize        float64 `json:"cell_size"`        // Floor grid resolution in metres, used when a room spec leaves it unset
	WindowClearance float64 `json:"window_clearance"` // Depth of the reserved area in front of windows
	Seed            int64   `json:"seed"`             // Default random seed, 0 = time based

	// Search tuning
	OrderByDomainSize bool `json:"order_by_domain_size"` // Search units with the fewest candidates first
	StaticPrefilter   bool `json:"static_prefilter"`     // Drop candidates blocked by doors, windows or room bounds before searching
	SearchLimit       int  `json:"search_limit"`         // Maximum candidate trials per request, 0 = unlimited
}

func DefaultSettings() Settings {
	return Settings{
		CellSize:          DefaultCellSize,
		WindowClearance:   DefaultWindowClearance,
		Seed:              0,
		OrderByDomainSize: true,
		StaticPrefilter:   true,
		SearchLimit:       0,
	}
}

// Layout is a finished placement request: the room, what was asked for and
// what came out.
type Layout struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	CreatedAt   string             `json:"created_at"`
	Room        RoomSpec           `json:"room"`
	Order       []string           `json:"order"`
	Seed        int64              `json:"seed"`
	Placements  []FittingPlacement `json:"placements"`
	Diagnostics []string           `json:"diagnostics,omitempty"`
}

// NewLayout creates a layout with a fresh short id.
func NewLayout(name string, room RoomSpec, order []string, seed int64, placements []FittingPlacement) Layout {
	return Layout{
		ID:         uuid.New().String()[:8],
		Name:       name,
		CreatedAt:  nowRFC3339(),
		Room:       room,
		Order:      copyStrings(order),
		Seed:       seed,
		Placements: placements,
	}
}

// Complete reports whether every ordered fitting was placed.
func (l Layout) Complete() bool {
	return len(l.Order) > 0 && len(l.Placements) == len(l.Order)
}

// PlacedCount returns the number of placements per model id.
func (l Layout) PlacedCount() map[string]int {
	counts := make(map[string]int)
	for _, p := range l.Placements {
		counts[p.Representation.FittingModelID]++
	}
	return counts
}

func copyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	cp := make([]string, len(s))
	copy(cp, s)
	return cp
}
