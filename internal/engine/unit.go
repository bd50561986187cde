package engine

import (
	"math"

	"github.com/piwi3910/RoomFit/internal/geom"
)

// WallConstraint pins one side of a unit to a wall: the wall in Direction
// must be Distance away from the unit origin.
type WallConstraint struct {
	Direction geom.Direction
	Distance  float64
}

// Candidate is one entry of a unit's domain: rotate the unit about the room
// origin by Rotation quarter turns, then move it by Position.
type Candidate struct {
	Position geom.Vector2D
	Rotation int
}

type fittingPose struct {
	position    geom.Vector2D
	orientation int
}

// PlacementUnit is a rigid group of attached fittings. Members are held as
// indices into the session's fitting list and every member records the
// unit's index, so merging only rewrites those indices.
type PlacementUnit struct {
	id      int
	all     []*Fitting
	members []int

	min, max geom.Vector2D
	walls    []WallConstraint
	domain   []Candidate

	home      []fittingPose
	homeMin   geom.Vector2D
	homeMax   geom.Vector2D
	homeWalls []WallConstraint
}

func newPlacementUnit(id int, all []*Fitting, member int) *PlacementUnit {
	u := &PlacementUnit{id: id, all: all, members: []int{member}}
	all[member].unit = id
	u.min, u.max = all[member].Extents()
	return u
}

// ID is the unit's index in its session.
func (u *PlacementUnit) ID() int { return u.id }

// Members returns the member fittings in the order they joined.
func (u *PlacementUnit) Members() []*Fitting {
	out := make([]*Fitting, len(u.members))
	for i, m := range u.members {
		out[i] = u.all[m]
	}
	return out
}

// Empty reports whether the unit was absorbed into another.
func (u *PlacementUnit) Empty() bool { return len(u.members) == 0 }

// Extents returns the cached bounding rectangle of all members including
// their clearance areas.
func (u *PlacementUnit) Extents() (geom.Vector2D, geom.Vector2D) { return u.min, u.max }

func (u *PlacementUnit) XLength() float64 { return u.max.X - u.min.X }
func (u *PlacementUnit) YLength() float64 { return u.max.Y - u.min.Y }

// Middle is the centre of the extents.
func (u *PlacementUnit) Middle() geom.Vector2D {
	return geom.Vec((u.min.X+u.max.X)/2, (u.min.Y+u.max.Y)/2)
}

// WallConstraints returns the unit's current wall constraints.
func (u *PlacementUnit) WallConstraints() []WallConstraint {
	out := make([]WallConstraint, len(u.walls))
	copy(out, u.walls)
	return out
}

// Domain returns the candidate placements in search order.
func (u *PlacementUnit) Domain() []Candidate { return u.domain }

// Absorb moves every member of other into u. other is left empty.
func (u *PlacementUnit) Absorb(other *PlacementUnit) {
	if other == u {
		return
	}
	for _, m := range other.members {
		u.all[m].unit = u.id
		u.members = append(u.members, m)
	}
	u.min = geom.Vec(math.Min(u.min.X, other.min.X), math.Min(u.min.Y, other.min.Y))
	u.max = geom.Vec(math.Max(u.max.X, other.max.X), math.Max(u.max.Y, other.max.Y))
	u.walls = append(u.walls, other.walls...)
	other.members = nil
	other.walls = nil
}

// Translate moves all members by offset.
func (u *PlacementUnit) Translate(offset geom.Vector2D) {
	for _, m := range u.members {
		u.all[m].Translate(offset)
	}
	u.min = u.min.Add(offset)
	u.max = u.max.Add(offset)
	for i := range u.walls {
		u.walls[i].Distance += u.walls[i].Direction.Unit().Dot(offset)
	}
}

// RotateAround turns all members about center by quarter turns.
func (u *PlacementUnit) RotateAround(center geom.Vector2D, quarterTurns int) {
	t := geom.Mod4(quarterTurns)
	if t == 0 {
		return
	}
	for _, m := range u.members {
		u.all[m].RotateAround(center, t)
	}
	a := u.min.RotateAround(center, t)
	b := u.max.RotateAround(center, t)
	u.min = geom.Vec(math.Min(a.X, b.X), math.Min(a.Y, b.Y))
	u.max = geom.Vec(math.Max(a.X, b.X), math.Max(a.Y, b.Y))
	for i := range u.walls {
		w := &u.walls[i]
		before := w.Direction.Unit().Dot(center)
		w.Direction = w.Direction.Add(t)
		w.Distance += w.Direction.Unit().Dot(center) - before
	}
}

// AddWallConstraint asks for face to sit wallDistance in front of a wall.
func (u *PlacementUnit) AddWallConstraint(face *ParticularFace, wallDistance float64) {
	u.walls = append(u.walls, WallConstraint{
		Direction: face.Direction(),
		Distance:  face.Normal().Dot(face.Center()) + wallDistance,
	})
}

// Recenter moves the unit so the middle of its extents is at the origin.
func (u *PlacementUnit) Recenter() {
	u.Translate(u.Middle().Neg())
}

// saveHome records the current pose as the one every candidate starts from.
func (u *PlacementUnit) saveHome() {
	u.home = u.home[:0]
	for _, m := range u.members {
		f := u.all[m]
		u.home = append(u.home, fittingPose{position: f.Position, orientation: f.orientation})
	}
	u.homeMin, u.homeMax = u.min, u.max
	u.homeWalls = append(u.homeWalls[:0], u.walls...)
}

// restoreHome returns the unit exactly to the pose saved by saveHome.
func (u *PlacementUnit) restoreHome() {
	for i, m := range u.members {
		f := u.all[m]
		f.Position = u.home[i].position
		f.orientation = u.home[i].orientation
	}
	u.min, u.max = u.homeMin, u.homeMax
	u.walls = append(u.walls[:0], u.homeWalls...)
}
