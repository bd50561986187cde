// Package export writes finished layouts to report formats: a PDF floor plan,
// QR-coded fitting tags, an Excel placement sheet and a DXF drawing.
package export

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomFit/internal/check"
	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/piwi3910/RoomFit/internal/model"
)

// item is a placement resolved against the catalog.
type item struct {
	Index     int
	Placement model.FittingPlacement
	Model     *model.FittingModel
	Footprint orb.Bound
	Clearance []orb.Bound
}

// resolveItems looks up every placed model. A layout naming a model the
// catalog does not know cannot be drawn.
func resolveItems(layout model.Layout, c *model.Catalog) ([]item, error) {
	items := make([]item, 0, len(layout.Placements))
	for i, p := range layout.Placements {
		m, ok := c.FittingModel(p.Representation.FittingModelID)
		if !ok {
			return nil, fmt.Errorf("placement %d: unknown fitting model %q", i+1, p.Representation.FittingModelID)
		}
		items = append(items, item{
			Index:     i,
			Placement: p,
			Model:     m,
			Footprint: check.Footprint(p, m),
			Clearance: check.ClearanceAreas(p, m),
		})
	}
	return items, nil
}

// frontEdge returns the footprint edge the fitting's front face lies on.
func frontEdge(it item) (a, b orb.Point) {
	fp := it.Footprint
	switch geom.Dir(int(model.FacingFront) + it.Placement.QuarterTurns()) {
	case geom.DirPosX:
		return orb.Point{fp.Max[0], fp.Min[1]}, orb.Point{fp.Max[0], fp.Max[1]}
	case geom.DirPosY:
		return orb.Point{fp.Min[0], fp.Max[1]}, orb.Point{fp.Max[0], fp.Max[1]}
	case geom.DirNegX:
		return orb.Point{fp.Min[0], fp.Min[1]}, orb.Point{fp.Min[0], fp.Max[1]}
	default:
		return orb.Point{fp.Min[0], fp.Min[1]}, orb.Point{fp.Max[0], fp.Min[1]}
	}
}

// openingSegment returns the wall segment covered by a door or window.
func openingSegment(x, y, breadth float64, dir geom.Direction) (a, b orb.Point) {
	if dir == geom.DirPosY || dir == geom.DirNegY {
		return orb.Point{x - breadth/2, y}, orb.Point{x + breadth/2, y}
	}
	return orb.Point{x, y - breadth/2}, orb.Point{x, y + breadth/2}
}

// degrees converts a placement orientation to whole degrees.
func degrees(rad float64) int {
	return int(math.Round(rad*180/math.Pi)) % 360
}
