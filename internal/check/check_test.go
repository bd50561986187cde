package check

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/room"
)

func testCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	c := model.NewCatalog()
	side, err := c.AddFaceType("box_side")
	require.NoError(t, err)
	faces := []model.Face{
		{Facing: model.FacingRight, Type: side},
		{Facing: model.FacingBack, Type: side},
		{Facing: model.FacingLeft, Type: side},
		{Facing: model.FacingFront, Type: side},
	}
	ft, err := c.AddFittingType("box", faces)
	require.NoError(t, err)

	low := model.NewFittingModel("low", ft, 1.0, 0.5, 0.5)
	low.SetClearanceArea(model.FacingFront, 0.4)
	require.NoError(t, c.AddFittingModel(low))
	require.NoError(t, c.AddFittingModel(model.NewFittingModel("tall", ft, 1.0, 0.5, 1.8)))
	return c
}

func place(id string, x, y float64, turns int) model.FittingPlacement {
	return model.FittingPlacement{
		X:              x,
		Y:              y,
		Orientation:    float64(turns) * math.Pi / 2,
		Representation: model.RepresentationObject{FittingModelID: id, FittingTypeID: "box"},
	}
}

func kinds(problems []Problem) []Kind {
	var out []Kind
	for _, p := range problems {
		out = append(out, p.Kind)
	}
	return out
}

func TestCheckLayout_Clean(t *testing.T) {
	c := testCatalog(t)
	r, err := room.NewEmpty(4, 4, 2.5, 0.1)
	require.NoError(t, err)

	problems := CheckLayout(c, r, []model.FittingPlacement{
		place("low", -1, 1, 0),
		place("tall", 1, -1, 0),
	})
	assert.Empty(t, problems)
}

func TestCheckLayout_TouchingIsNotOverlap(t *testing.T) {
	c := testCatalog(t)
	r, err := room.NewEmpty(4, 4, 2.5, 0.1)
	require.NoError(t, err)

	problems := CheckLayout(c, r, []model.FittingPlacement{
		place("tall", 0, 0, 0),
		place("tall", 1, 0, 0),
	})
	assert.Empty(t, problems)
}

func TestCheckLayout_FootprintOverlap(t *testing.T) {
	c := testCatalog(t)
	r, err := room.NewEmpty(4, 4, 2.5, 0.1)
	require.NoError(t, err)

	problems := CheckLayout(c, r, []model.FittingPlacement{
		place("tall", 0, 0, 0),
		place("tall", 0.5, 0, 0),
	})
	require.Len(t, problems, 1)
	assert.Equal(t, KindFootprintOverlap, problems[0].Kind)
	assert.Equal(t, 0, problems[0].Index)
	assert.Equal(t, 1, problems[0].Other)
	assert.InDelta(t, 0.25, problems[0].Area, 0.001)
}

func TestCheckLayout_ClearanceBlocked(t *testing.T) {
	c := testCatalog(t)
	r, err := room.NewEmpty(4, 4, 2.5, 0.1)
	require.NoError(t, err)

	// The low box keeps 0.4 free below its front edge at y = -0.25.
	problems := CheckLayout(c, r, []model.FittingPlacement{
		place("low", 0, 0, 0),
		place("tall", 0, -0.6, 0),
	})
	require.Len(t, problems, 1)
	assert.Equal(t, KindClearanceBlocked, problems[0].Kind)
	assert.Equal(t, 1, problems[0].Index)
	assert.Equal(t, 0, problems[0].Other)
}

func TestCheckLayout_ClearanceFollowsRotation(t *testing.T) {
	c := testCatalog(t)
	r, err := room.NewEmpty(4, 4, 2.5, 0.1)
	require.NoError(t, err)

	// Turned twice the front faces +Y, so the area below is free.
	problems := CheckLayout(c, r, []model.FittingPlacement{
		place("low", 0, 0, 2),
		place("tall", 0, -0.6, 0),
	})
	assert.Empty(t, problems)

	low, ok := c.FittingModel("low")
	require.True(t, ok)
	areas := ClearanceAreas(place("low", 0, 0, 1), low)
	require.Len(t, areas, 1)
	// One quarter turn moves the front to +X.
	assert.InDelta(t, 0.25, areas[0].Min[0], 1e-9)
	assert.InDelta(t, 0.65, areas[0].Max[0], 1e-9)
}

func TestCheckLayout_OutOfRoomAndTooTall(t *testing.T) {
	c := testCatalog(t)
	r, err := room.NewEmpty(4, 4, 1.5, 0.1)
	require.NoError(t, err)

	problems := CheckLayout(c, r, []model.FittingPlacement{
		place("tall", 1.8, 0, 0),
	})
	assert.ElementsMatch(t, []Kind{KindOutOfRoom, KindTooTall}, kinds(problems))
}

func TestCheckLayout_DoorsAndWindows(t *testing.T) {
	c := testCatalog(t)
	r, err := room.New(model.RoomSpec{
		Width: 4, Depth: 4, Height: 2.5,
		Doors:   []model.DoorSpec{{X: 0, Y: 2, Breadth: 1, Direction: 3}},
		Windows: []model.WindowSpec{{X: 0, Y: -2, Breadth: 1, Direction: 1}},
	})
	require.NoError(t, err)

	problems := CheckLayout(c, r, []model.FittingPlacement{
		place("tall", 0, 1.5, 0),
		place("low", 0, -1.75, 2),
		place("tall", 1.2, -1.75, 0),
	})
	assert.Equal(t, []Kind{KindDoorBlocked}, kinds(problems))

	problems = CheckLayout(c, r, []model.FittingPlacement{place("tall", 0, -1.75, 0)})
	assert.Equal(t, []Kind{KindWindowBlocked}, kinds(problems))
}

func TestCheckLayout_UnknownModel(t *testing.T) {
	c := testCatalog(t)
	r, err := room.NewEmpty(4, 4, 2.5, 0.1)
	require.NoError(t, err)

	problems := CheckLayout(c, r, []model.FittingPlacement{place("ghost", 0, 0, 0)})
	require.Len(t, problems, 1)
	assert.Equal(t, KindUnknownModel, problems[0].Kind)
}

func TestFormatProblems(t *testing.T) {
	msgs := FormatProblems([]Problem{
		{Kind: KindFootprintOverlap, Index: 0, Other: 2, ModelID: "sofa", Area: 0.5},
		{Kind: KindOutOfRoom, Index: 1, Other: -1, ModelID: "lamp"},
	})
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "overlaps fitting 3")
	assert.Contains(t, msgs[1], "lamp")
}
