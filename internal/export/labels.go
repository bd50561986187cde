package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RoomFit/internal/model"
)

// TagInfo holds the data encoded into each fitting tag's QR code, telling
// the installer where the piece goes.
type TagInfo struct {
	LayoutID string  `json:"layout"`
	Number   int     `json:"n"`
	ModelID  string  `json:"model"`
	TypeID   string  `json:"type"`
	X        float64 `json:"x_m"`
	Y        float64 `json:"y_m"`
	Rotation int     `json:"rotation_deg"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectTagInfos extracts one tag per placement, numbered as on the plan.
func CollectTagInfos(layout model.Layout) []TagInfo {
	tags := make([]TagInfo, 0, len(layout.Placements))
	for i, p := range layout.Placements {
		tags = append(tags, TagInfo{
			LayoutID: layout.ID,
			Number:   i + 1,
			ModelID:  p.Representation.FittingModelID,
			TypeID:   p.Representation.FittingTypeID,
			X:        p.X,
			Y:        p.Y,
			Rotation: degrees(p.Orientation),
		})
	}
	return tags
}

// ExportTags generates a PDF of QR-coded tags, one per placed fitting, on
// an Avery 5160 sheet (3 columns x 10 rows on US Letter).
func ExportTags(path string, layout model.Layout) error {
	tags := CollectTagInfos(layout)
	if len(tags) == 0 {
		return fmt.Errorf("no fittings placed to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTag(pdf, x, y, tag); err != nil {
			return fmt.Errorf("failed to render tag for %q: %w", tag.ModelID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, info TagInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.LayoutID, info.Number)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := fmt.Sprintf("%d. %s", info.Number, info.ModelID)
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, info.TypeID, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("@ (%.2f, %.2f) m", info.X, info.Y)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	if info.Rotation != 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("Rotated %d\xb0", info.Rotation), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
