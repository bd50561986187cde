// Package check audits finished layouts with exact rectangle geometry,
// independent of the floor grid the engine searched on.
package check

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/room"
)

// Tolerance shrinks every rectangle before intersection tests so that
// shapes meeting on an edge are not reported.
const Tolerance = 1e-4

// Kind classifies a layout problem.
type Kind string

const (
	KindUnknownModel     Kind = "unknown_model"
	KindOutOfRoom        Kind = "out_of_room"
	KindFootprintOverlap Kind = "footprint_overlap"
	KindClearanceBlocked Kind = "clearance_blocked"
	KindDoorBlocked      Kind = "door_blocked"
	KindWindowBlocked    Kind = "window_blocked"
	KindTooTall          Kind = "too_tall"
)

// Problem is one violation found in a layout. Index and Other refer to
// positions in the placement slice; Other is -1 when no second fitting is
// involved.
type Problem struct {
	Kind    Kind    `json:"kind"`
	Index   int     `json:"index"`
	Other   int     `json:"other"`
	ModelID string  `json:"fitting_model_id"`
	Area    float64 `json:"area"` // overlapping floor area in square metres
}

type placed struct {
	model     *model.FittingModel
	footprint orb.Bound
	strips    []orb.Bound
}

// CheckLayout verifies that every placement stands inside the room, that no
// footprint overlaps another footprint or another fitting's clearance areas,
// that door clearances stay free and that only fittings low enough stand in
// front of windows. Clearance areas may overlap each other.
func CheckLayout(catalog *model.Catalog, r *room.Room, placements []model.FittingPlacement) []Problem {
	var problems []Problem
	items := make([]*placed, len(placements))

	roomBound := orb.Bound{
		Min: orb.Point{-r.Width / 2, -r.Depth / 2},
		Max: orb.Point{r.Width / 2, r.Depth / 2},
	}.Pad(Tolerance)

	for i, p := range placements {
		m, ok := catalog.FittingModel(p.Representation.FittingModelID)
		if !ok {
			problems = append(problems, Problem{Kind: KindUnknownModel, Index: i, Other: -1, ModelID: p.Representation.FittingModelID})
			continue
		}
		it := &placed{model: m, footprint: Footprint(p, m)}
		it.strips = ClearanceAreas(p, m)
		items[i] = it

		if !contains(roomBound, it.footprint) {
			problems = append(problems, Problem{Kind: KindOutOfRoom, Index: i, Other: -1, ModelID: m.ID})
		}
		if r.Height > 0 && m.BoundingBox.Height > r.Height+Tolerance {
			problems = append(problems, Problem{Kind: KindTooTall, Index: i, Other: -1, ModelID: m.ID})
		}
		for _, d := range r.Doors {
			if a := overlapArea(it.footprint, staticBound(d)); a > 0 {
				problems = append(problems, Problem{Kind: KindDoorBlocked, Index: i, Other: -1, ModelID: m.ID, Area: a})
			}
		}
		for _, w := range r.Windows {
			limit := math.Max(w.Elevation, room.MinStaticMaxHeight)
			if room.HeightToCentimeters(m.BoundingBox.Height) < room.HeightToCentimeters(limit) {
				continue
			}
			if a := overlapArea(it.footprint, staticBound(w)); a > 0 {
				problems = append(problems, Problem{Kind: KindWindowBlocked, Index: i, Other: -1, ModelID: m.ID, Area: a})
			}
		}
	}

	for i, a := range items {
		if a == nil {
			continue
		}
		for j, b := range items {
			if b == nil || i == j {
				continue
			}
			if j > i {
				if area := overlapArea(a.footprint, b.footprint); area > 0 {
					problems = append(problems, Problem{Kind: KindFootprintOverlap, Index: i, Other: j, ModelID: a.model.ID, Area: area})
				}
			}
			for _, s := range b.strips {
				if area := overlapArea(a.footprint, s); area > 0 {
					problems = append(problems, Problem{Kind: KindClearanceBlocked, Index: i, Other: j, ModelID: a.model.ID, Area: area})
					break
				}
			}
		}
	}

	return problems
}

// Footprint returns the floor rectangle covered by a placement.
func Footprint(p model.FittingPlacement, m *model.FittingModel) orb.Bound {
	minX, minY, maxX, maxY := p.Footprint(m.BoundingBox)
	return orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
}

// ClearanceAreas returns the non-empty clearance rectangles of a placement.
func ClearanceAreas(p model.FittingPlacement, m *model.FittingModel) []orb.Bound {
	fp := Footprint(p, m)
	turns := p.QuarterTurns()
	length := func(dir int) float64 {
		return m.ClearanceAreaLength(model.Facing(((dir-turns)%4 + 4) % 4))
	}

	var out []orb.Bound
	add := func(minX, minY, maxX, maxY float64) {
		if maxX-minX > 0 && maxY-minY > 0 {
			out = append(out, orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}})
		}
	}
	add(fp.Max[0], fp.Min[1], fp.Max[0]+length(0), fp.Max[1])
	add(fp.Min[0], fp.Max[1], fp.Max[0], fp.Max[1]+length(1))
	add(fp.Min[0]-length(2), fp.Min[1], fp.Min[0], fp.Max[1])
	add(fp.Min[0], fp.Min[1]-length(3), fp.Max[0], fp.Min[1])
	return out
}

func staticBound(s room.StaticFace) orb.Bound {
	min, max := s.ClearanceArea()
	return orb.Bound{Min: orb.Point{min.X, min.Y}, Max: orb.Point{max.X, max.Y}}
}

func contains(outer, inner orb.Bound) bool {
	return outer.Contains(inner.Min) && outer.Contains(inner.Max)
}

// overlapArea returns the area shared by a and b after both are shrunk by
// Tolerance, or 0 when they only touch.
func overlapArea(a, b orb.Bound) float64 {
	a, b = a.Pad(-Tolerance), b.Pad(-Tolerance)
	if a.IsEmpty() || b.IsEmpty() || !a.Intersects(b) {
		return 0
	}
	inter := orb.Bound{
		Min: orb.Point{math.Max(a.Min[0], b.Min[0]), math.Max(a.Min[1], b.Min[1])},
		Max: orb.Point{math.Min(a.Max[0], b.Max[0]), math.Min(a.Max[1], b.Max[1])},
	}
	return planar.Area(inter)
}

// FormatProblems produces human-readable warning messages.
func FormatProblems(problems []Problem) []string {
	var warnings []string
	for _, p := range problems {
		var msg string
		switch p.Kind {
		case KindUnknownModel:
			msg = fmt.Sprintf("Fitting %d: unknown model %q", p.Index+1, p.ModelID)
		case KindOutOfRoom:
			msg = fmt.Sprintf("Fitting %d (%s) extends past the walls", p.Index+1, p.ModelID)
		case KindTooTall:
			msg = fmt.Sprintf("Fitting %d (%s) is taller than the room", p.Index+1, p.ModelID)
		case KindDoorBlocked:
			msg = fmt.Sprintf("Fitting %d (%s) blocks a door: %.2f m²", p.Index+1, p.ModelID, p.Area)
		case KindWindowBlocked:
			msg = fmt.Sprintf("Fitting %d (%s) stands in front of a window: %.2f m²", p.Index+1, p.ModelID, p.Area)
		case KindFootprintOverlap:
			msg = fmt.Sprintf("Fitting %d (%s) overlaps fitting %d: %.2f m²", p.Index+1, p.ModelID, p.Other+1, p.Area)
		case KindClearanceBlocked:
			msg = fmt.Sprintf("Fitting %d (%s) stands in the clearance of fitting %d: %.2f m²", p.Index+1, p.ModelID, p.Other+1, p.Area)
		default:
			msg = fmt.Sprintf("Fitting %d (%s): %s", p.Index+1, p.ModelID, p.Kind)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
