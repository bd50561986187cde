// Package room implements the discretized floor of a rectangular room. Each
// cell counts the fittings occupying it and the clearance areas reserving it,
// so every change made during a search can be undone exactly.
package room

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/piwi3910/RoomFit/internal/model"
)

// ErrInvalidRoom is returned for room specs that cannot be discretized.
var ErrInvalidRoom = errors.New("invalid room")

const (
	// cellEpsilon nudges query corners off cell lines so two rectangles that
	// merely touch never share a cell.
	cellEpsilon = 1e-5
	// boundsEpsilon is the tolerance for footprints touching the walls.
	boundsEpsilon = 1e-6
	// MinStaticMaxHeight is the lowest max-height a static reservation records.
	MinStaticMaxHeight = 1.0
)

// Cell is the state of one grid cell.
type Cell struct {
	Occupants    int // fittings standing on the cell
	Reservations int // clearance areas overlapping the cell
	MaxHeight    int // cm; items lower than this may stand in a static clearance, 0 = none
}

// ObstructionValue renders the cell in the classic single-integer form:
// 0 free, N reserved N times, -1 occupied over a height-limited clearance,
// -2 occupied.
func (c Cell) ObstructionValue() int {
	if c.Occupants > 0 {
		if c.MaxHeight > 0 {
			return -1
		}
		return -2
	}
	return c.Reservations
}

func (c Cell) canOccupy(heightCM int) bool {
	if c.Occupants > 0 {
		return false
	}
	if c.Reservations == 0 {
		return true
	}
	return c.Reservations == 1 && c.MaxHeight > 0 && heightCM < c.MaxHeight
}

func (c Cell) canReserve() bool { return c.Occupants == 0 }

// unreserve never removes the base layer of a static height-limited reservation.
func (c *Cell) unreserve() {
	if c.Reservations > 1 || (c.Reservations == 1 && c.MaxHeight == 0) {
		c.Reservations--
	}
}

// Room is a rectangular room centred on the origin with its floor split into
// square cells of CellSize metres.
type Room struct {
	Width    float64
	Depth    float64
	Height   float64
	CellSize float64

	Walls   []StaticFace
	Doors   []StaticFace
	Windows []StaticFace

	nx, ny int
	cells  []Cell
}

// NewEmpty creates a room with four walls and no openings.
func NewEmpty(width, depth, height, cellSize float64) (*Room, error) {
	return FromSpec(model.RoomSpec{Width: width, Depth: depth, Height: height, CellSize: cellSize}, model.DefaultSettings())
}

// New creates a room from spec using the default settings.
func New(spec model.RoomSpec) (*Room, error) {
	return FromSpec(spec, model.DefaultSettings())
}

// FromSpec creates a room, registering the clearance of every door and window
// in the grid. settings supplies the cell size when the spec leaves it unset
// and the window clearance depth.
func FromSpec(spec model.RoomSpec, settings model.Settings) (*Room, error) {
	if spec.CellSize == 0 && settings.CellSize > 0 {
		spec.CellSize = settings.CellSize
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoom, err)
	}
	windowClearance := settings.WindowClearance
	if windowClearance <= 0 {
		windowClearance = model.DefaultWindowClearance
	}

	r := &Room{
		Width:    spec.Width,
		Depth:    spec.Depth,
		Height:   spec.Height,
		CellSize: spec.EffectiveCellSize(),
	}
	r.createWalls()
	for _, d := range spec.Doors {
		r.Doors = append(r.Doors, StaticFace{
			Kind:         KindDoor,
			Position:     geom.Vec(d.X, d.Y),
			SideLength:   d.Breadth,
			InwardNormal: d.InwardDirection(),
			Height:       d.EffectiveHeight(),
			Clearance:    d.Breadth,
		})
	}
	for _, w := range spec.Windows {
		r.Windows = append(r.Windows, StaticFace{
			Kind:         KindWindow,
			Position:     geom.Vec(w.X, w.Y),
			SideLength:   w.Breadth,
			InwardNormal: w.InwardDirection(),
			Height:       w.EffectiveHeight(),
			Elevation:    w.EffectiveElevation(),
			Clearance:    windowClearance,
		})
	}

	r.nx = gridSteps(r.Width, r.CellSize)
	r.ny = gridSteps(r.Depth, r.CellSize)
	r.cells = make([]Cell, r.nx*r.ny)

	for _, d := range r.Doors {
		min, max := d.ClearanceArea()
		r.ReserveArea(min, max)
	}
	for _, w := range r.Windows {
		min, max := w.ClearanceArea()
		r.ReserveStaticArea(min, max, w.Elevation)
	}
	return r, nil
}

func gridSteps(length, cellSize float64) int {
	n := int(math.Ceil(length/cellSize - 1e-9))
	if n < 1 {
		n = 1
	}
	return n
}

func (r *Room) createWalls() {
	r.Walls = []StaticFace{
		{Kind: KindWall, Position: geom.Vec(r.Width/2, 0), SideLength: r.Depth, InwardNormal: geom.DirNegX, Height: r.Height},
		{Kind: KindWall, Position: geom.Vec(0, r.Depth/2), SideLength: r.Width, InwardNormal: geom.DirNegY, Height: r.Height},
		{Kind: KindWall, Position: geom.Vec(-r.Width/2, 0), SideLength: r.Depth, InwardNormal: geom.DirPosX, Height: r.Height},
		{Kind: KindWall, Position: geom.Vec(0, -r.Depth/2), SideLength: r.Width, InwardNormal: geom.DirPosY, Height: r.Height},
	}
}

// Clone returns a room with its own copy of the grid. Static faces are
// shared since they never change.
func (r *Room) Clone() *Room {
	cp := *r
	cp.cells = make([]Cell, len(r.cells))
	copy(cp.cells, r.cells)
	return &cp
}

// GridSize returns the number of cells along X and Y.
func (r *Room) GridSize() (int, int) { return r.nx, r.ny }

// Cell returns the state of cell (ix, iy).
func (r *Room) Cell(ix, iy int) Cell { return r.cells[iy*r.nx+ix] }

// Snapshot copies every cell, row by row from the min Y edge.
func (r *Room) Snapshot() []Cell {
	out := make([]Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// CellIndex maps a floor position to a cell. Min corners are nudged up and
// max corners down so rectangles meeting on a cell line do not overlap.
func (r *Room) CellIndex(p geom.Vector2D, maxCorner bool) (int, int) {
	x := p.X + r.Width/2
	y := p.Y + r.Depth/2
	if maxCorner {
		x -= cellEpsilon
		y -= cellEpsilon
	} else {
		x += cellEpsilon
		y += cellEpsilon
	}
	return clampIndex(int(x/r.CellSize), r.nx), clampIndex(int(y/r.CellSize), r.ny)
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

func degenerate(min, max geom.Vector2D) bool {
	return !(max.X-min.X > 1e-12) || !(max.Y-min.Y > 1e-12)
}

// forCells calls fn for every cell covered by the rectangle and stops early
// when fn returns false.
func (r *Room) forCells(min, max geom.Vector2D, fn func(c *Cell) bool) bool {
	x0, y0 := r.CellIndex(min, false)
	x1, y1 := r.CellIndex(max, true)
	for iy := y0; iy <= y1; iy++ {
		row := r.cells[iy*r.nx : (iy+1)*r.nx]
		for ix := x0; ix <= x1; ix++ {
			if !fn(&row[ix]) {
				return false
			}
		}
	}
	return true
}

// HeightToCentimeters converts metres to whole centimetres, truncating.
func HeightToCentimeters(h float64) int {
	return int(h*100 + 1e-6)
}

// CanAreaBeOccupied reports whether a fitting of the given height may stand
// on the rectangle. Degenerate rectangles are always allowed.
func (r *Room) CanAreaBeOccupied(min, max geom.Vector2D, height float64) bool {
	if degenerate(min, max) {
		return true
	}
	hcm := HeightToCentimeters(height)
	return r.forCells(min, max, func(c *Cell) bool { return c.canOccupy(hcm) })
}

// OccupyArea marks the rectangle as occupied. Callers check
// CanAreaBeOccupied first.
func (r *Room) OccupyArea(min, max geom.Vector2D) {
	if degenerate(min, max) {
		return
	}
	r.forCells(min, max, func(c *Cell) bool {
		c.Occupants++
		return true
	})
}

// UnoccupyArea reverts a previous OccupyArea on the same rectangle.
func (r *Room) UnoccupyArea(min, max geom.Vector2D) {
	if degenerate(min, max) {
		return
	}
	r.forCells(min, max, func(c *Cell) bool {
		if c.Occupants > 0 {
			c.Occupants--
		}
		return true
	})
}

// CanAreaBeReserved reports whether a clearance area may cover the rectangle:
// no covered cell may be occupied.
func (r *Room) CanAreaBeReserved(min, max geom.Vector2D) bool {
	if degenerate(min, max) {
		return true
	}
	return r.forCells(min, max, func(c *Cell) bool { return c.canReserve() })
}

// ReserveArea stacks one clearance reservation on every covered cell.
func (r *Room) ReserveArea(min, max geom.Vector2D) {
	if degenerate(min, max) {
		return
	}
	r.forCells(min, max, func(c *Cell) bool {
		c.Reservations++
		return true
	})
}

// UnreserveArea reverts a previous ReserveArea on the same rectangle.
func (r *Room) UnreserveArea(min, max geom.Vector2D) {
	if degenerate(min, max) {
		return
	}
	r.forCells(min, max, func(c *Cell) bool {
		c.unreserve()
		return true
	})
}

// ReserveStaticArea records a permanent clearance under which fittings lower
// than maxHeight metres may still stand. The reservation count is pinned to
// one and the cell keeps the larger of its old and new max-height. Max-heights
// below one metre are raised to one metre.
func (r *Room) ReserveStaticArea(min, max geom.Vector2D, maxHeight float64) {
	if degenerate(min, max) {
		return
	}
	if maxHeight < MinStaticMaxHeight {
		maxHeight = MinStaticMaxHeight
	}
	cm := HeightToCentimeters(maxHeight)
	r.forCells(min, max, func(c *Cell) bool {
		c.Reservations = 1
		if cm > c.MaxHeight {
			c.MaxHeight = cm
		}
		return true
	})
}

// Contains reports whether the rectangle lies inside the room.
func (r *Room) Contains(min, max geom.Vector2D) bool {
	return min.X >= -r.Width/2-boundsEpsilon && min.Y >= -r.Depth/2-boundsEpsilon &&
		max.X <= r.Width/2+boundsEpsilon && max.Y <= r.Depth/2+boundsEpsilon
}

// StaticFaces returns walls, doors and windows in that order.
func (r *Room) StaticFaces() []StaticFace {
	out := make([]StaticFace, 0, len(r.Walls)+len(r.Doors)+len(r.Windows))
	out = append(out, r.Walls...)
	out = append(out, r.Doors...)
	return append(out, r.Windows...)
}

// String dumps the grid as obstruction values, back wall first.
func (r *Room) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grid of obstruction values for room %gx%gx%g:\n", r.Width, r.Depth, r.Height)
	for iy := r.ny - 1; iy >= 0; iy-- {
		for ix := 0; ix < r.nx; ix++ {
			fmt.Fprintf(&b, "%-3d", r.Cell(ix, iy).ObstructionValue())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
