package model

import (
	"math"
	"testing"

	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestRoomSpec_Validate(t *testing.T) {
	assert.NoError(t, testRoomSpec().Validate())

	bad := testRoomSpec()
	bad.Width = 0
	assert.Error(t, bad.Validate())

	bad = testRoomSpec()
	bad.Doors[0].Y = 1.5
	assert.Error(t, bad.Validate(), "door off the wall")

	bad = testRoomSpec()
	bad.Windows[0].Breadth = 0
	assert.Error(t, bad.Validate())
}

func TestOpeningDefaults(t *testing.T) {
	d := DoorSpec{Breadth: 0.9}
	assert.Equal(t, DefaultDoorHeight, d.EffectiveHeight())

	w := WindowSpec{Breadth: 0.9}
	assert.Equal(t, DefaultWindowHeight, w.EffectiveHeight())
	assert.Equal(t, DefaultWindowElevation, w.EffectiveElevation())

	zero := 0.0
	w.Elevation = &zero
	assert.Equal(t, 0.0, w.EffectiveElevation())

	assert.Equal(t, DefaultCellSize, RoomSpec{}.EffectiveCellSize())
	assert.Equal(t, 0.25, RoomSpec{CellSize: 0.25}.EffectiveCellSize())
}

func TestOpeningDirection_RadiansOverride(t *testing.T) {
	rad := 3 * math.Pi / 2
	d := DoorSpec{Direction: 0, Radians: &rad}
	assert.Equal(t, geom.DirNegY, d.InwardDirection())

	w := WindowSpec{Direction: 5}
	assert.Equal(t, geom.DirPosY, w.InwardDirection())
}
