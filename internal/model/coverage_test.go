package model

import (
	"math"
	"testing"
)

func coverageCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	sofa, err := c.AddFittingType("sofa", nil)
	if err != nil {
		t.Fatal(err)
	}
	lamp, err := c.AddFittingType("floor_lamp", nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewFittingModel("sofa", sofa, 1.8, 0.8, 0.8)
	s.SetClearanceArea(FacingFront, 0.3)
	l := NewFittingModel("lamp", lamp, 0.3, 0.3, 1.6)
	l.SetClearanceArea(FacingLeft, 0.1)
	l.SetClearanceArea(FacingRight, 0.1)
	for _, m := range []*FittingModel{s, l} {
		if err := c.AddFittingModel(m); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func placementOf(id string) FittingPlacement {
	return FittingPlacement{Representation: RepresentationObject{FittingModelID: id}}
}

func TestCalculateCoverageBasic(t *testing.T) {
	c := coverageCatalog(t)
	room := RoomSpec{Width: 4, Depth: 3, Height: 2.5}
	cov := CalculateCoverage(room, []FittingPlacement{placementOf("sofa"), placementOf("lamp"), placementOf("throne")}, c)

	if cov.Fittings != 2 {
		t.Errorf("expected 2 known fittings, got %d", cov.Fittings)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"room area", cov.RoomArea, 12},
		{"footprint", cov.FootprintArea, 1.8*0.8 + 0.3*0.3},
		{"clearance", cov.ClearanceArea, 0.3*1.8 + 0.2*0.3},
		{"free", cov.FreeArea, 12 - 1.53},
		{"percent", cov.CoveragePercent, 1.53 / 12 * 100},
	}
	for _, ch := range checks {
		if math.Abs(ch.got-ch.want) > 1e-9 {
			t.Errorf("%s: expected %.4f, got %.4f", ch.name, ch.want, ch.got)
		}
	}
}

func TestCalculateCoverageEmptyRoom(t *testing.T) {
	cov := CalculateCoverage(RoomSpec{}, []FittingPlacement{placementOf("sofa")}, coverageCatalog(t))
	if cov.CoveragePercent != 0 {
		t.Errorf("expected 0%% for a room without area, got %.2f", cov.CoveragePercent)
	}
	if cov.FreeArea != 0 {
		t.Errorf("free area must not be negative, got %.2f", cov.FreeArea)
	}
}

func TestCalculateCoverageNoPlacements(t *testing.T) {
	cov := CalculateCoverage(RoomSpec{Width: 2, Depth: 2}, nil, coverageCatalog(t))
	if cov.FreeArea != 4 || cov.FootprintArea != 0 || cov.Fittings != 0 {
		t.Errorf("unexpected coverage %+v", cov)
	}
}
