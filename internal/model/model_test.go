package model

import (
	"math"
	"testing"
)

func TestFittingPlacement_QuarterTurns(t *testing.T) {
	cases := []struct {
		rad  float64
		want int
	}{
		{0, 0},
		{math.Pi / 2, 1},
		{math.Pi, 2},
		{3 * math.Pi / 2, 3},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3},
	}
	for _, c := range cases {
		p := FittingPlacement{Orientation: c.rad}
		if got := p.QuarterTurns(); got != c.want {
			t.Errorf("QuarterTurns(%f) = %d, want %d", c.rad, got, c.want)
		}
	}
}

func TestFittingPlacement_Footprint(t *testing.T) {
	box := BoundingBox3D{Width: 2, Depth: 1, Height: 1}

	p := FittingPlacement{X: 1, Y: 1}
	minX, minY, maxX, maxY := p.Footprint(box)
	if minX != 0 || minY != 0.5 || maxX != 2 || maxY != 1.5 {
		t.Errorf("unrotated footprint = (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}

	p.Orientation = math.Pi / 2
	minX, minY, maxX, maxY = p.Footprint(box)
	if minX != 0.5 || minY != 0 || maxX != 1.5 || maxY != 2 {
		t.Errorf("rotated footprint = (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestLayout_PlacedCountAndComplete(t *testing.T) {
	placements := []FittingPlacement{
		{Representation: RepresentationObject{FittingModelID: "chair"}},
		{Representation: RepresentationObject{FittingModelID: "chair"}},
		{Representation: RepresentationObject{FittingModelID: "table"}},
	}
	l := NewLayout("Dining", RoomSpec{Width: 3, Depth: 3, Height: 2.5}, []string{"table", "chair", "chair"}, 1, placements)

	if !l.Complete() {
		t.Error("expected complete layout")
	}
	counts := l.PlacedCount()
	if counts["chair"] != 2 || counts["table"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if len(l.ID) != 8 {
		t.Errorf("expected 8 character ID, got %q", l.ID)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.CellSize != 0.1 {
		t.Errorf("expected cell size 0.1, got %f", s.CellSize)
	}
	if s.WindowClearance != 0.9 {
		t.Errorf("expected window clearance 0.9, got %f", s.WindowClearance)
	}
	if !s.OrderByDomainSize || !s.StaticPrefilter {
		t.Error("search heuristics should be enabled by default")
	}
}
