package model

// FloorCoverage summarises how much of a room's floor a layout uses.
type FloorCoverage struct {
	RoomArea        float64 `json:"room_area"`        // Floor area of the room (m²)
	FootprintArea   float64 `json:"footprint_area"`   // Area under fittings (m²)
	ClearanceArea   float64 `json:"clearance_area"`   // Area kept free in front of fittings (m²), overlaps counted twice
	FreeArea        float64 `json:"free_area"`        // Floor not under any fitting (m²)
	CoveragePercent float64 `json:"coverage_percent"` // FootprintArea as a share of RoomArea
	Fittings        int     `json:"fittings"`         // Placements with a known model
}

// CalculateCoverage computes floor usage for placements in room. Placements
// whose model is not in the catalog are skipped.
func CalculateCoverage(room RoomSpec, placements []FittingPlacement, c *Catalog) FloorCoverage {
	var footprint, clearance float64
	n := 0
	for _, p := range placements {
		m, ok := c.FittingModel(p.Representation.FittingModelID)
		if !ok {
			continue
		}
		n++
		w, d := m.BoundingBox.Width, m.BoundingBox.Depth
		footprint += w * d
		// Front and back run along the width, the sides along the depth.
		clearance += (m.ClearanceAreaLength(FacingFront) + m.ClearanceAreaLength(FacingBack)) * w
		clearance += (m.ClearanceAreaLength(FacingLeft) + m.ClearanceAreaLength(FacingRight)) * d
	}

	roomArea := room.Width * room.Depth
	cov := FloorCoverage{
		RoomArea:      roomArea,
		FootprintArea: footprint,
		ClearanceArea: clearance,
		FreeArea:      roomArea - footprint,
		Fittings:      n,
	}
	if roomArea > 0 {
		cov.CoveragePercent = footprint / roomArea * 100
	}
	if cov.FreeArea < 0 {
		cov.FreeArea = 0
	}
	return cov
}
