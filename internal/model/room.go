package model

import (
	"fmt"
	"math"

	"github.com/piwi3910/RoomFit/internal/geom"
)

// Default static obstacle dimensions in metres.
const (
	DefaultWallHeight      = 2.6
	DefaultDoorHeight      = 2.1
	DefaultWindowHeight    = 1.5
	DefaultWindowElevation = 0.8
	DefaultWindowClearance = 0.9
	DefaultCellSize        = 0.1
)

// DoorSpec describes a door in one of the room's walls. Direction is the
// inward normal in quarter turns from +X; Radians, when set, overrides it.
type DoorSpec struct {
	X         float64  `json:"x" yaml:"x"`
	Y         float64  `json:"y" yaml:"y"`
	Breadth   float64  `json:"breadth" yaml:"breadth"`
	Direction int      `json:"direction" yaml:"direction"`
	Radians   *float64 `json:"radians,omitempty" yaml:"radians,omitempty"`
	Height    float64  `json:"height,omitempty" yaml:"height,omitempty"` // 0 = DefaultDoorHeight
}

// WindowSpec describes a window. Elevation is the sill height above the floor.
type WindowSpec struct {
	X         float64  `json:"x" yaml:"x"`
	Y         float64  `json:"y" yaml:"y"`
	Breadth   float64  `json:"breadth" yaml:"breadth"`
	Direction int      `json:"direction" yaml:"direction"`
	Radians   *float64 `json:"radians,omitempty" yaml:"radians,omitempty"`
	Height    float64  `json:"height,omitempty" yaml:"height,omitempty"`       // 0 = DefaultWindowHeight
	Elevation *float64 `json:"elevation,omitempty" yaml:"elevation,omitempty"` // nil = DefaultWindowElevation
}

// InwardDirection resolves the inward normal, preferring Radians when given.
func (d DoorSpec) InwardDirection() geom.Direction {
	if d.Radians != nil {
		return geom.DirectionFromRadians(*d.Radians)
	}
	return geom.Dir(d.Direction)
}

// EffectiveHeight returns Height or the default door height.
func (d DoorSpec) EffectiveHeight() float64 {
	if d.Height > 0 {
		return d.Height
	}
	return DefaultDoorHeight
}

// InwardDirection resolves the inward normal, preferring Radians when given.
func (w WindowSpec) InwardDirection() geom.Direction {
	if w.Radians != nil {
		return geom.DirectionFromRadians(*w.Radians)
	}
	return geom.Dir(w.Direction)
}

// EffectiveHeight returns Height or the default window height.
func (w WindowSpec) EffectiveHeight() float64 {
	if w.Height > 0 {
		return w.Height
	}
	return DefaultWindowHeight
}

// EffectiveElevation returns Elevation or the default sill height.
func (w WindowSpec) EffectiveElevation() float64 {
	if w.Elevation != nil {
		return *w.Elevation
	}
	return DefaultWindowElevation
}

// RoomSpec is the caller's description of a rectangular room centred on the
// origin. CellSize 0 means DefaultCellSize.
type RoomSpec struct {
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Width    float64      `json:"width" yaml:"width"`
	Depth    float64      `json:"depth" yaml:"depth"`
	Height   float64      `json:"height" yaml:"height"`
	CellSize float64      `json:"cell_size,omitempty" yaml:"cell_size,omitempty"`
	Doors    []DoorSpec   `json:"doors,omitempty" yaml:"doors,omitempty"`
	Windows  []WindowSpec `json:"windows,omitempty" yaml:"windows,omitempty"`
}

// EffectiveCellSize returns CellSize or the default.
func (r RoomSpec) EffectiveCellSize() float64 {
	if r.CellSize > 0 {
		return r.CellSize
	}
	return DefaultCellSize
}

// Validate checks the room dimensions and that every opening sits on a wall.
func (r RoomSpec) Validate() error {
	if !(r.Width > 0) || !(r.Depth > 0) || !(r.Height > 0) {
		return fmt.Errorf("room dimensions must be positive, got %gx%gx%g", r.Width, r.Depth, r.Height)
	}
	if r.CellSize < 0 {
		return fmt.Errorf("cell size must not be negative, got %g", r.CellSize)
	}
	for i, d := range r.Doors {
		if !(d.Breadth > 0) {
			return fmt.Errorf("door %d: breadth must be positive", i+1)
		}
		if !onWall(r, d.X, d.Y, d.InwardDirection()) {
			return fmt.Errorf("door %d at (%g, %g) is not on the wall facing %s", i+1, d.X, d.Y, d.InwardDirection())
		}
	}
	for i, w := range r.Windows {
		if !(w.Breadth > 0) {
			return fmt.Errorf("window %d: breadth must be positive", i+1)
		}
		if !onWall(r, w.X, w.Y, w.InwardDirection()) {
			return fmt.Errorf("window %d at (%g, %g) is not on the wall facing %s", i+1, w.X, w.Y, w.InwardDirection())
		}
	}
	return nil
}

// onWall checks that the opening lies on the wall whose inward normal is dir.
func onWall(r RoomSpec, x, y float64, dir geom.Direction) bool {
	const tol = 1e-6
	switch dir {
	case geom.DirPosX:
		return math.Abs(x+r.Width/2) < tol
	case geom.DirPosY:
		return math.Abs(y+r.Depth/2) < tol
	case geom.DirNegX:
		return math.Abs(x-r.Width/2) < tol
	default:
		return math.Abs(y-r.Depth/2) < tol
	}
}
