package export

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/RoomFit/internal/model"
)

// DXF layer names.
const (
	LayerRoom      = "ROOM"
	LayerOpenings  = "OPENINGS"
	LayerFittings  = "FITTINGS"
	LayerClearance = "CLEARANCE"
	LayerText      = "TEXT"
)

// ExportDXF writes a floor plan in room coordinates (metres, origin at the
// room centre) for CAD tools. Every rectangle is drawn as four LINE entities
// so that old readers can open the file.
func ExportDXF(path string, layout model.Layout, c *model.Catalog) error {
	if !(layout.Room.Width > 0) || !(layout.Room.Depth > 0) {
		return fmt.Errorf("layout has no room to draw")
	}
	items, err := resolveItems(layout, c)
	if err != nil {
		return err
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
		lt    *table.LineType
	}{
		{LayerRoom, color.White, table.LT_CONTINUOUS},
		{LayerOpenings, color.Red, table.LT_CONTINUOUS},
		{LayerFittings, color.Green, table.LT_CONTINUOUS},
		{LayerClearance, color.Cyan, table.LT_HIDDEN},
		{LayerText, color.Yellow, table.LT_CONTINUOUS},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, l.lt, false); err != nil {
			return fmt.Errorf("adding layer %s: %w", l.name, err)
		}
	}

	w, dep := layout.Room.Width/2, layout.Room.Depth/2
	if err := d.ChangeLayer(LayerRoom); err != nil {
		return err
	}
	if err := rect(d, orb.Bound{Min: orb.Point{-w, -dep}, Max: orb.Point{w, dep}}); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerOpenings); err != nil {
		return err
	}
	for _, o := range layout.Room.Doors {
		a, b := openingSegment(o.X, o.Y, o.Breadth, o.InwardDirection())
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	for _, o := range layout.Room.Windows {
		a, b := openingSegment(o.X, o.Y, o.Breadth, o.InwardDirection())
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerClearance); err != nil {
		return err
	}
	for _, it := range items {
		for _, b := range it.Clearance {
			if err := rect(d, b); err != nil {
				return err
			}
		}
	}

	if err := d.ChangeLayer(LayerFittings); err != nil {
		return err
	}
	for _, it := range items {
		if err := rect(d, it.Footprint); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	for i, it := range items {
		label := fmt.Sprintf("%d %s", i+1, it.Model.ID)
		if _, err := d.Text(label, it.Placement.X, it.Placement.Y, 0, 0.08); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("saving DXF: %w", err)
	}
	return nil
}

// rect draws b as four lines on the current layer.
func rect(d *drawing.Drawing, b orb.Bound) error {
	corners := []orb.Point{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
	}
	for i, p := range corners {
		q := corners[(i+1)%len(corners)]
		if _, err := d.Line(p[0], p[1], 0, q[0], q[1], 0); err != nil {
			return err
		}
	}
	return nil
}
