package model

import (
	"fmt"
	"sort"
)

// Built-in face type identifiers. Every catalog carries these three so that
// fitting relations can refer to room structure.
const (
	FaceTypeWall   = "wall"
	FaceTypeDoor   = "door"
	FaceTypeWindow = "window"
)

// FaceType is a named kind of fitting face together with the relations a face
// of this kind wants to form. Face types are shared by pointer and compared by
// identity.
type FaceType struct {
	ID        string
	Relations []SpatialRelation
}

// AddRelation appends a relation to support at the given distance.
func (ft *FaceType) AddRelation(support *FaceType, distance float64) {
	ft.Relations = append(ft.Relations, SpatialRelation{Support: support, Distance: distance})
}

// SpatialRelation asks for a face to sit Distance metres in front of a face of
// type Support.
type SpatialRelation struct {
	Support  *FaceType
	Distance float64
}

// Facing names a side of a fitting relative to its default orientation.
// Front faces -Y, Back +Y, Right +X and Left -X.
type Facing int

const (
	FacingRight Facing = iota
	FacingBack
	FacingLeft
	FacingFront
)

func (f Facing) String() string {
	switch f {
	case FacingRight:
		return "right"
	case FacingBack:
		return "back"
	case FacingLeft:
		return "left"
	case FacingFront:
		return "front"
	default:
		return fmt.Sprintf("facing(%d)", int(f))
	}
}

// ParseFacing accepts the lower-case names produced by String, plus the
// numeric form used by some catalog files.
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "right", "Right", "0":
		return FacingRight, nil
	case "back", "Back", "1":
		return FacingBack, nil
	case "left", "Left", "2":
		return FacingLeft, nil
	case "front", "Front", "3":
		return FacingFront, nil
	}
	return 0, fmt.Errorf("unknown facing %q", s)
}

// Face is one side of a fitting type.
type Face struct {
	Facing Facing
	Type   *FaceType
}

// FittingType is a category of furniture defined by its faces.
type FittingType struct {
	ID    string
	Faces []Face
}

// BoundingBox3D is the axis-aligned extent of a fitting model in metres.
type BoundingBox3D struct {
	Width  float64 `json:"width" yaml:"width"`
	Depth  float64 `json:"depth" yaml:"depth"`
	Height float64 `json:"height" yaml:"height"`
}

// FittingModel is a concrete product: a fitting type plus dimensions and the
// clearance it needs in front of each side.
type FittingModel struct {
	ID          string
	Type        *FittingType
	BoundingBox BoundingBox3D
	clearance   [4]float64
}

// NewFittingModel creates a model with no clearance areas.
func NewFittingModel(id string, ft *FittingType, width, depth, height float64) *FittingModel {
	return &FittingModel{
		ID:          id,
		Type:        ft,
		BoundingBox: BoundingBox3D{Width: width, Depth: depth, Height: height},
	}
}

// SetClearanceArea sets the perpendicular clearance length on one side.
func (m *FittingModel) SetClearanceArea(f Facing, length float64) {
	m.clearance[int(f)&3] = length
}

// ClearanceAreaLength returns the clearance on side f, 0 when none was set.
func (m *FittingModel) ClearanceAreaLength(f Facing) float64 {
	return m.clearance[int(f)&3]
}

// Catalog is the read-only database of face types, fitting types and fitting
// models a furnisher places from. It is populated once and then shared.
type Catalog struct {
	faceTypes    map[string]*FaceType
	fittingTypes map[string]*FittingType
	models       map[string]*FittingModel
	modelOrder   []string
}

// NewCatalog returns a catalog holding only the built-in wall, door and
// window face types.
func NewCatalog() *Catalog {
	c := &Catalog{
		faceTypes:    make(map[string]*FaceType),
		fittingTypes: make(map[string]*FittingType),
		models:       make(map[string]*FittingModel),
	}
	for _, id := range []string{FaceTypeWall, FaceTypeDoor, FaceTypeWindow} {
		c.faceTypes[id] = &FaceType{ID: id}
	}
	return c
}

// Wall returns the built-in wall face type.
func (c *Catalog) Wall() *FaceType { return c.faceTypes[FaceTypeWall] }

// Door returns the built-in door face type.
func (c *Catalog) Door() *FaceType { return c.faceTypes[FaceTypeDoor] }

// Window returns the built-in window face type.
func (c *Catalog) Window() *FaceType { return c.faceTypes[FaceTypeWindow] }

// IsStatic reports whether ft is one of the built-in room structure types.
func (c *Catalog) IsStatic(ft *FaceType) bool {
	return ft != nil && (ft == c.Wall() || ft == c.Door() || ft == c.Window())
}

// AddFaceType registers a new face type. Redefining an id is an error.
func (c *Catalog) AddFaceType(id string) (*FaceType, error) {
	if id == "" {
		return nil, fmt.Errorf("face type id is empty")
	}
	if _, ok := c.faceTypes[id]; ok {
		return nil, fmt.Errorf("face type %q already defined", id)
	}
	ft := &FaceType{ID: id}
	c.faceTypes[id] = ft
	return ft, nil
}

// FaceType looks up a face type by id.
func (c *Catalog) FaceType(id string) (*FaceType, bool) {
	ft, ok := c.faceTypes[id]
	return ft, ok
}

// AddFittingType registers a fitting type with the given faces.
func (c *Catalog) AddFittingType(id string, faces []Face) (*FittingType, error) {
	if id == "" {
		return nil, fmt.Errorf("fitting type id is empty")
	}
	if _, ok := c.fittingTypes[id]; ok {
		return nil, fmt.Errorf("fitting type %q already defined", id)
	}
	ft := &FittingType{ID: id, Faces: faces}
	c.fittingTypes[id] = ft
	return ft, nil
}

// FittingType looks up a fitting type by id.
func (c *Catalog) FittingType(id string) (*FittingType, bool) {
	ft, ok := c.fittingTypes[id]
	return ft, ok
}

// AddFittingModel registers a model. Models keep their registration order.
func (c *Catalog) AddFittingModel(m *FittingModel) error {
	if m == nil || m.ID == "" {
		return fmt.Errorf("fitting model id is empty")
	}
	if m.Type == nil {
		return fmt.Errorf("fitting model %q has no fitting type", m.ID)
	}
	if _, ok := c.models[m.ID]; ok {
		return fmt.Errorf("fitting model %q already defined", m.ID)
	}
	c.models[m.ID] = m
	c.modelOrder = append(c.modelOrder, m.ID)
	return nil
}

// FittingModel looks up a model by id.
func (c *Catalog) FittingModel(id string) (*FittingModel, bool) {
	m, ok := c.models[id]
	return m, ok
}

// ModelIDs returns model ids in registration order.
func (c *Catalog) ModelIDs() []string {
	ids := make([]string, len(c.modelOrder))
	copy(ids, c.modelOrder)
	return ids
}

// FaceTypeIDs returns all face type ids, sorted.
func (c *Catalog) FaceTypeIDs() []string {
	ids := make([]string, 0, len(c.faceTypes))
	for id := range c.faceTypes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FittingTypeIDs returns all fitting type ids, sorted.
func (c *Catalog) FittingTypeIDs() []string {
	ids := make([]string, 0, len(c.fittingTypes))
	for id := range c.fittingTypes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ModelSummary is a flat, serializable description of a fitting model.
type ModelSummary struct {
	ID            string        `json:"id"`
	FittingTypeID string        `json:"fitting_type_id"`
	BoundingBox   BoundingBox3D `json:"bounding_box"`
	Clearance     [4]float64    `json:"clearance"` // indexed by Facing
}

// Summaries lists every model in registration order.
func (c *Catalog) Summaries() []ModelSummary {
	out := make([]ModelSummary, 0, len(c.modelOrder))
	for _, id := range c.modelOrder {
		m := c.models[id]
		out = append(out, ModelSummary{
			ID:            m.ID,
			FittingTypeID: m.Type.ID,
			BoundingBox:   m.BoundingBox,
			Clearance:     m.clearance,
		})
	}
	return out
}
