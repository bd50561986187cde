package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/room"
)

// livingRoomCatalog builds a small catalog: a sofa against a wall with a
// lamp beside it and a coffee table in front, a dining table with chairs, and
// a few wall-bound pieces.
func livingRoomCatalog(t testing.TB) *model.Catalog {
	t.Helper()
	c := model.NewCatalog()
	ft := func(id string) *model.FaceType {
		f, err := c.AddFaceType(id)
		require.NoError(t, err)
		return f
	}

	sofaFront, sofaBack, sofaSide := ft("sofa_front"), ft("sofa_back"), ft("sofa_side")
	lampSide := ft("lamp_side")
	coffeeLong, coffeeShort := ft("coffee_table_long"), ft("coffee_table_short")
	armFront, armBack, armSide := ft("armchair_front"), ft("armchair_back"), ft("armchair_side")
	tableLong, tableShort := ft("table_long"), ft("table_short")
	chairFront, chairBack, chairSide := ft("chair_front"), ft("chair_back"), ft("chair_side")
	tvFront, tvBack, tvSide := ft("tv_front"), ft("tv_back"), ft("tv_side")
	shelfFront, shelfBack, shelfSide := ft("bookcase_front"), ft("bookcase_back"), ft("bookcase_side")

	sofaBack.AddRelation(c.Wall(), 0.1)
	lampSide.AddRelation(sofaSide, 0.05)
	coffeeLong.AddRelation(sofaFront, 0.35)
	armBack.AddRelation(c.Wall(), 0.1)
	chairFront.AddRelation(tableLong, 0.05)
	tvBack.AddRelation(c.Wall(), 0)
	shelfBack.AddRelation(c.Wall(), 0)

	typ := func(id string, right, back, left, front *model.FaceType) *model.FittingType {
		f, err := c.AddFittingType(id, []model.Face{
			{Facing: model.FacingRight, Type: right},
			{Facing: model.FacingBack, Type: back},
			{Facing: model.FacingLeft, Type: left},
			{Facing: model.FacingFront, Type: front},
		})
		require.NoError(t, err)
		return f
	}
	sofa := typ("sofa", sofaSide, sofaBack, sofaSide, sofaFront)
	lamp := typ("floor_lamp", lampSide, lampSide, lampSide, lampSide)
	coffee := typ("coffee_table", coffeeShort, coffeeLong, coffeeShort, coffeeLong)
	arm := typ("armchair", armSide, armBack, armSide, armFront)
	table := typ("dining_table", tableShort, tableLong, tableShort, tableLong)
	chair := typ("chair", chairSide, chairBack, chairSide, chairFront)
	tv := typ("tv", tvSide, tvBack, tvSide, tvFront)
	shelf := typ("bookcase", shelfSide, shelfBack, shelfSide, shelfFront)

	add := func(id string, ft *model.FittingType, w, d, h float64, clearance map[model.Facing]float64) {
		m := model.NewFittingModel(id, ft, w, d, h)
		for f, l := range clearance {
			m.SetClearanceArea(f, l)
		}
		require.NoError(t, c.AddFittingModel(m))
	}
	add("sofa", sofa, 1.8, 0.8, 0.8, map[model.Facing]float64{model.FacingFront: 0.3})
	add("lamp", lamp, 0.3, 0.3, 1.6, nil)
	add("coffee_table", coffee, 0.9, 0.5, 0.45, nil)
	add("armchair", arm, 0.8, 0.8, 0.9, map[model.Facing]float64{model.FacingFront: 0.5})
	add("dining_table", table, 1.2, 0.8, 0.75, nil)
	add("chair", chair, 0.45, 0.5, 0.9, map[model.Facing]float64{model.FacingBack: 0.3})
	add("tv", tv, 1.1, 0.25, 0.65, map[model.Facing]float64{model.FacingFront: 0.6})
	add("bookcase", shelf, 0.8, 0.35, 1.9, map[model.Facing]float64{model.FacingFront: 0.5})
	add("huge", shelf, 6, 6, 1, nil)
	return c
}

// demoRoomSpec is a 5x4 living room with a door in the back wall and four
// windows in the front wall.
func demoRoomSpec() model.RoomSpec {
	spec := model.RoomSpec{
		Name:   "demo",
		Width:  5,
		Depth:  4,
		Height: 2.6,
		Doors:  []model.DoorSpec{{X: -0.5, Y: 2, Breadth: 0.9, Direction: 3}},
	}
	for _, x := range []float64{-1.65, -0.55, 0.55, 1.65} {
		spec.Windows = append(spec.Windows, model.WindowSpec{X: x, Y: -2, Breadth: 0.9, Direction: 1})
	}
	return spec
}

func demoRoom(t testing.TB) *room.Room {
	t.Helper()
	r, err := room.New(demoRoomSpec())
	require.NoError(t, err)
	return r
}

func emptyRoom(t testing.TB, w, d float64) *room.Room {
	t.Helper()
	r, err := room.NewEmpty(w, d, 2.6, 0.1)
	require.NoError(t, err)
	return r
}

func mustModel(t testing.TB, c *model.Catalog, id string) *model.FittingModel {
	t.Helper()
	m, ok := c.FittingModel(id)
	require.True(t, ok, "model %s", id)
	return m
}

// freeFitting builds a standalone fitting and its unit.
func freeFitting(t testing.TB, c *model.Catalog, id string) (*Fitting, *PlacementUnit) {
	t.Helper()
	all := []*Fitting{newFitting(mustModel(t, c, id), 0)}
	return all[0], newPlacementUnit(0, all, 0)
}

func faceFacing(f *Fitting, facing model.Facing) *ParticularFace {
	for _, p := range f.Faces {
		if p.Face.Facing == facing {
			return p
		}
	}
	return nil
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
