package engine

import (
	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/piwi3910/RoomFit/internal/model"
)

// Fitting is one instance of a fitting model in a placement request. Its
// position is the centre of its bounding box in room coordinates.
type Fitting struct {
	Model    *model.FittingModel
	Position geom.Vector2D
	Faces    []*ParticularFace

	index       int
	orientation int
	unit        int // index of the owning PlacementUnit in the session
}

func newFitting(m *model.FittingModel, index int) *Fitting {
	f := &Fitting{Model: m, index: index, unit: -1}
	for _, face := range m.Type.Faces {
		length := m.BoundingBox.Width
		if face.Facing == model.FacingLeft || face.Facing == model.FacingRight {
			length = m.BoundingBox.Depth
		}
		f.Faces = append(f.Faces, &ParticularFace{Fitting: f, Face: face, SideLength: length})
	}
	return f
}

// Orientation is the number of quarter turns from the default orientation.
func (f *Fitting) Orientation() int { return f.orientation }

// XLength is the footprint extent along X for the current orientation.
func (f *Fitting) XLength() float64 {
	if f.orientation%2 == 0 {
		return f.Model.BoundingBox.Width
	}
	return f.Model.BoundingBox.Depth
}

// YLength is the footprint extent along Y for the current orientation.
func (f *Fitting) YLength() float64 {
	if f.orientation%2 == 0 {
		return f.Model.BoundingBox.Depth
	}
	return f.Model.BoundingBox.Width
}

// ClearanceInDirection returns the clearance length on the side of the
// fitting that currently points in direction d.
func (f *Fitting) ClearanceInDirection(d geom.Direction) float64 {
	return f.Model.ClearanceAreaLength(model.Facing(geom.Mod4(int(d) - f.orientation)))
}

// Footprint returns the min and max corners of the fitting on the floor.
func (f *Fitting) Footprint() (geom.Vector2D, geom.Vector2D) {
	half := geom.Vec(f.XLength()/2, f.YLength()/2)
	return f.Position.Sub(half), f.Position.Add(half)
}

// Extents returns the footprint grown by the clearance on every side.
func (f *Fitting) Extents() (geom.Vector2D, geom.Vector2D) {
	min, max := f.Footprint()
	min = min.Sub(geom.Vec(f.ClearanceInDirection(geom.DirNegX), f.ClearanceInDirection(geom.DirNegY)))
	max = max.Add(geom.Vec(f.ClearanceInDirection(geom.DirPosX), f.ClearanceInDirection(geom.DirPosY)))
	return min, max
}

// ClearanceStrips returns the four clearance rectangles, indexed by
// direction, each running along one footprint edge. Strips with no
// clearance are degenerate.
func (f *Fitting) ClearanceStrips() [4][2]geom.Vector2D {
	min, max := f.Footprint()
	return [4][2]geom.Vector2D{
		{geom.Vec(max.X, min.Y), geom.Vec(max.X+f.ClearanceInDirection(geom.DirPosX), max.Y)},
		{geom.Vec(min.X, max.Y), geom.Vec(max.X, max.Y+f.ClearanceInDirection(geom.DirPosY))},
		{geom.Vec(min.X-f.ClearanceInDirection(geom.DirNegX), min.Y), geom.Vec(min.X, max.Y)},
		{geom.Vec(min.X, min.Y-f.ClearanceInDirection(geom.DirNegY)), geom.Vec(max.X, min.Y)},
	}
}

// Translate moves only this fitting. Use the unit's Translate to move a group.
func (f *Fitting) Translate(offset geom.Vector2D) {
	f.Position = f.Position.Add(offset)
}

// RotateAround turns only this fitting about center by quarter turns.
func (f *Fitting) RotateAround(center geom.Vector2D, quarterTurns int) {
	t := geom.Mod4(quarterTurns)
	f.orientation = geom.Mod4(f.orientation + t)
	f.Position = f.Position.RotateAround(center, t)
}

// Placement converts the fitting's current pose into an output record.
func (f *Fitting) Placement() model.FittingPlacement {
	return model.FittingPlacement{
		X:           f.Position.X,
		Y:           f.Position.Y,
		Orientation: geom.QuarterTurnsToRadians(f.orientation),
		Representation: model.RepresentationObject{
			FittingModelID: f.Model.ID,
			FittingTypeID:  f.Model.Type.ID,
		},
	}
}

type attachment struct {
	face     *ParticularFace
	relation model.SpatialRelation
}

// ParticularFace is one face of a fitting instance. As a support face it
// keeps track of how much of its length attached faces have reserved.
type ParticularFace struct {
	Fitting        *Fitting
	Face           model.Face
	SideLength     float64
	ReservedLength float64

	attachments  []attachment
	attachedTo   *ParticularFace
	placedCount  int
	filledLength float64
}

// Direction is the absolute direction the face points in.
func (p *ParticularFace) Direction() geom.Direction {
	return geom.Dir(p.Fitting.orientation + int(p.Face.Facing))
}

// Normal is the outward unit normal of the face.
func (p *ParticularFace) Normal() geom.Vector2D { return p.Direction().Unit() }

// AlongFace is the unit vector running counter-clockwise along the face.
func (p *ParticularFace) AlongFace() geom.Vector2D { return p.Direction().Add(1).Unit() }

// DistanceFromCenter is how far the face lies from the fitting centre.
func (p *ParticularFace) DistanceFromCenter() float64 {
	if p.Face.Facing == model.FacingRight || p.Face.Facing == model.FacingLeft {
		return p.Fitting.Model.BoundingBox.Width / 2
	}
	return p.Fitting.Model.BoundingBox.Depth / 2
}

// Center is the midpoint of the face.
func (p *ParticularFace) Center() geom.Vector2D {
	return p.Fitting.Position.Add(p.Normal().Scale(p.DistanceFromCenter()))
}

// SurroundingClearance is the clearance on the two sides flanking the face.
func (p *ParticularFace) SurroundingClearance() float64 {
	m := p.Fitting.Model
	if p.Face.Facing == model.FacingRight || p.Face.Facing == model.FacingLeft {
		return m.ClearanceAreaLength(model.FacingBack) + m.ClearanceAreaLength(model.FacingFront)
	}
	return m.ClearanceAreaLength(model.FacingLeft) + m.ClearanceAreaLength(model.FacingRight)
}

// FreeLength is the unreserved part of the face.
func (p *ParticularFace) FreeLength() float64 { return p.SideLength - p.ReservedLength }

// Attachments returns the number of faces attached to this one.
func (p *ParticularFace) Attachments() int { return len(p.attachments) }

// CanAttachFace reports whether attacher may attach to this face under rel.
// The face type must be the relation's support type, and an empty face always
// accepts; otherwise the attacher and its flanking clearance must fit in the
// remaining length.
func (p *ParticularFace) CanAttachFace(attacher *ParticularFace, rel model.SpatialRelation) bool {
	if p.Face.Type != rel.Support {
		return false
	}
	if p.ReservedLength == 0 {
		return true
	}
	return p.ReservedLength+attacher.SideLength+attacher.SurroundingClearance() < p.SideLength
}

// AttachFace checks and commits an attachment, reserving the attacher's
// length plus its flanking clearance.
func (p *ParticularFace) AttachFace(attacher *ParticularFace, rel model.SpatialRelation) bool {
	if !p.CanAttachFace(attacher, rel) {
		return false
	}
	p.ReservedLength += attacher.SideLength + attacher.SurroundingClearance()
	p.attachments = append(p.attachments, attachment{face: attacher, relation: rel})
	attacher.attachedTo = p
	return true
}
