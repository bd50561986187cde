package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/RoomFit/internal/model"
)

// fittingColor represents an RGB color for a placed fitting.
type fittingColor struct {
	R, G, B int
}

var fittingColors = []fittingColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// planFrame maps room coordinates (metres, origin at the room centre, +Y
// towards the back wall) onto the page.
type planFrame struct {
	scale            float64
	offsetX, offsetY float64
	roomW, roomD     float64
}

func (f planFrame) x(mx float64) float64 { return f.offsetX + (mx+f.roomW/2)*f.scale }
func (f planFrame) y(my float64) float64 { return f.offsetY + (f.roomD/2-my)*f.scale }

// ExportPDF writes a layout report: a floor plan page followed by a
// placement table with any diagnostics.
func ExportPDF(path string, layout model.Layout, c *model.Catalog) error {
	if !(layout.Room.Width > 0) || !(layout.Room.Depth > 0) {
		return fmt.Errorf("layout has no room to draw")
	}
	items, err := resolveItems(layout, c)
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, layout, items)

	pdf.AddPage()
	renderTablePage(pdf, layout, items)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the room outline, openings, clearance areas and
// fitting footprints.
func renderPlanPage(pdf *fpdf.Fpdf, layout model.Layout, items []item) {
	room := layout.Room

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := layout.Name
	if title == "" {
		title = "Room layout"
	}
	title = fmt.Sprintf("%s (%.2f x %.2f m)", title, room.Width, room.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Fittings: %d of %d placed | Seed: %d | Ceiling: %.2f m",
		len(layout.Placements), len(layout.Order), layout.Seed, room.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/room.Width, drawHeight/room.Depth)
	canvasW := room.Width * scale
	canvasH := room.Depth * scale
	frame := planFrame{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
		roomW:   room.Width,
		roomD:   room.Depth,
	}

	// Floor
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.8)
	pdf.Rect(frame.offsetX, frame.offsetY, canvasW, canvasH, "FD")

	// Clearance areas under everything else
	pdf.SetFillColor(225, 225, 225)
	pdf.SetDrawColor(170, 170, 170)
	pdf.SetLineWidth(0.1)
	for _, it := range items {
		for _, b := range it.Clearance {
			pdf.Rect(frame.x(b.Min[0]), frame.y(b.Max[1]), (b.Max[0]-b.Min[0])*scale, (b.Max[1]-b.Min[1])*scale, "FD")
		}
	}

	drawOpenings(pdf, room, frame)

	for i, it := range items {
		col := fittingColors[i%len(fittingColors)]
		fp := it.Footprint
		px, py := frame.x(fp.Min[0]), frame.y(fp.Max[1])
		pw, ph := (fp.Max[0]-fp.Min[0])*scale, (fp.Max[1]-fp.Min[1])*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Front edge
		a, b := frontEdge(it)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(1.0)
		pdf.Line(frame.x(a[0]), frame.y(a[1]), frame.x(b[0]), frame.y(b[1]))

		label := fmt.Sprintf("%d", i+1)
		pdf.SetFont("Helvetica", "B", labelFontSize(pw, ph))
		pdf.SetTextColor(0, 0, 0)
		if lw := pdf.GetStringWidth(label); lw < pw-1 {
			pdf.SetXY(px+(pw-lw)/2, py+ph/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, room, frame, canvasW, canvasH)
	drawLegend(pdf, items, frame.offsetY+canvasH+6)
}

// drawOpenings marks doors in red and windows in blue along the walls.
func drawOpenings(pdf *fpdf.Fpdf, room model.RoomSpec, frame planFrame) {
	pdf.SetLineWidth(1.5)
	pdf.SetDrawColor(200, 0, 0)
	for _, d := range room.Doors {
		a, b := openingSegment(d.X, d.Y, d.Breadth, d.InwardDirection())
		pdf.Line(frame.x(a[0]), frame.y(a[1]), frame.x(b[0]), frame.y(b[1]))
	}
	pdf.SetDrawColor(0, 90, 200)
	for _, w := range room.Windows {
		a, b := openingSegment(w.X, w.Y, w.Breadth, w.InwardDirection())
		pdf.Line(frame.x(a[0]), frame.y(a[1]), frame.x(b[0]), frame.y(b[1]))
	}
}

// drawDimensionAnnotations adds width and depth labels outside the room rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, room model.RoomSpec, frame planFrame, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.2f m", room.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(frame.offsetX+(canvasW-wLabelW)/2, frame.offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	depthLabel := fmt.Sprintf("%.2f m", room.Depth)
	pdf.TransformBegin()
	pdf.TransformRotate(90, frame.offsetX-3, frame.offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(frame.offsetX-3-dLabelW/2, frame.offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders numbered swatches for every placed fitting.
func drawLegend(pdf *fpdf.Fpdf, items []item, startY float64) {
	if len(items) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Fittings:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, it := range items {
		col := fittingColors[i%len(fittingColors)]
		label := fmt.Sprintf("%d %s", i+1, it.Model.ID)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderTablePage lists every placement and the reasons a request fell short.
func renderTablePage(pdf *fpdf.Fpdf, layout model.Layout, items []item) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{12, 80, 50, 25, 25, 25, 50}
	headers := []string{"#", "Model", "Type", "X (m)", "Y (m)", "Rotation", "Size (m)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, it := range items {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		box := it.Model.BoundingBox
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			it.Model.ID,
			it.Placement.Representation.FittingTypeID,
			fmt.Sprintf("%.2f", it.Placement.X),
			fmt.Sprintf("%.2f", it.Placement.Y),
			fmt.Sprintf("%d\xb0", degrees(it.Placement.Orientation)),
			fmt.Sprintf("%.2f x %.2f x %.2f", box.Width, box.Depth, box.Height),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if !layout.Complete() {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("WARNING: %d of %d fittings placed", len(layout.Placements), len(layout.Order)), "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, d := range layout.Diagnostics {
			if y > pageHeight-marginBottom-5 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, "- "+d, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RoomFit - Furniture Layout Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 10
	case minDim > 20:
		return 8
	default:
		return 6
	}
}
