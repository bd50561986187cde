package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RoomFit/internal/model"
)

const (
	placementsSheet = "Placements"
	roomSheet       = "Room"
)

// ExportExcel writes the placements and the room description to a workbook
// with one sheet each.
func ExportExcel(path string, layout model.Layout, c *model.Catalog) error {
	items, err := resolveItems(layout, c)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	header := []interface{}{"#", "Model", "Type", "X (m)", "Y (m)", "Rotation (deg)", "Width (m)", "Depth (m)", "Height (m)"}
	if err := f.SetSheetRow(placementsSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(placementsSheet, "A1", "I1", bold); err != nil {
		return err
	}
	for i, it := range items {
		box := it.Model.BoundingBox
		row := []interface{}{
			i + 1,
			it.Model.ID,
			it.Placement.Representation.FittingTypeID,
			it.Placement.X,
			it.Placement.Y,
			degrees(it.Placement.Orientation),
			box.Width,
			box.Depth,
			box.Height,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(placementsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing placement %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(placementsSheet, "B", "C", 28); err != nil {
		return err
	}

	if _, err := f.NewSheet(roomSheet); err != nil {
		return fmt.Errorf("creating room sheet: %w", err)
	}
	room := layout.Room
	cov := model.CalculateCoverage(room, layout.Placements, c)
	rows := [][]interface{}{
		{"Layout", layout.Name},
		{"Seed", layout.Seed},
		{"Width (m)", room.Width},
		{"Depth (m)", room.Depth},
		{"Height (m)", room.Height},
		{"Doors", len(room.Doors)},
		{"Windows", len(room.Windows)},
		{"Requested", len(layout.Order)},
		{"Placed", len(layout.Placements)},
		{"Floor used (%)", math.Round(cov.CoveragePercent*10) / 10},
		{"Free floor (m²)", math.Round(cov.FreeArea*100) / 100},
	}
	for _, d := range layout.Diagnostics {
		rows = append(rows, []interface{}{"Diagnostic", d})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(roomSheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(roomSheet, "A", "A", 16); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
