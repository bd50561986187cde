package room

import (
	"math"

	"github.com/piwi3910/RoomFit/internal/geom"
)

// StaticKind tells walls, doors and windows apart.
type StaticKind int

const (
	KindWall StaticKind = iota
	KindDoor
	KindWindow
)

func (k StaticKind) String() string {
	switch k {
	case KindDoor:
		return "door"
	case KindWindow:
		return "window"
	default:
		return "wall"
	}
}

// StaticFace is a fixed part of the room: a wall, or an opening in one.
// Position is the centre of the face on the wall line and InwardNormal points
// into the room.
type StaticFace struct {
	Kind         StaticKind
	Position     geom.Vector2D
	SideLength   float64
	InwardNormal geom.Direction
	Height       float64
	Elevation    float64 // windows only, height of the sill above the floor
	Clearance    float64 // depth of the area kept free in front of the face
}

// AlongFace is the unit vector running along the face.
func (s StaticFace) AlongFace() geom.Vector2D {
	return s.InwardNormal.Add(1).Unit()
}

// ClearanceArea returns the rectangle in front of the face that must be kept
// clear, as min and max corners.
func (s StaticFace) ClearanceArea() (geom.Vector2D, geom.Vector2D) {
	half := s.AlongFace().Scale(s.SideLength / 2)
	depth := s.InwardNormal.Unit().Scale(s.Clearance)
	a := s.Position.Sub(half)
	b := s.Position.Add(half).Add(depth)
	return geom.Vec(math.Min(a.X, b.X), math.Min(a.Y, b.Y)), geom.Vec(math.Max(a.X, b.X), math.Max(a.Y, b.Y))
}

// Ends returns the two end points of the face on the wall line.
func (s StaticFace) Ends() (geom.Vector2D, geom.Vector2D) {
	half := s.AlongFace().Scale(s.SideLength / 2)
	return s.Position.Sub(half), s.Position.Add(half)
}
