package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate_QuarterTurns(t *testing.T) {
	v := Vec(2, 1)

	assert.Equal(t, Vec(2, 1), v.Rotate(0))
	assert.Equal(t, Vec(-1, 2), v.Rotate(1))
	assert.Equal(t, Vec(-2, -1), v.Rotate(2))
	assert.Equal(t, Vec(1, -2), v.Rotate(3))
	assert.Equal(t, v.Rotate(3), v.Rotate(-1))
	assert.Equal(t, v.Rotate(1), v.Rotate(5))
}

func TestRotate_GroupAction(t *testing.T) {
	vectors := []Vector2D{Vec(0.3, -1.7), Vec(0, 0), Vec(-2.25, 4.5)}
	for _, v := range vectors {
		for a := -4; a < 8; a++ {
			for b := -4; b < 8; b++ {
				assert.Equal(t, v.Rotate(a+b), v.Rotate(a).Rotate(b), "v=%v a=%d b=%d", v, a, b)
			}
		}
	}
}

func TestRotateAround(t *testing.T) {
	c := Vec(1, 1)
	p := Vec(2, 1)

	assert.Equal(t, Vec(1, 2), p.RotateAround(c, 1))
	assert.Equal(t, Vec(0, 1), p.RotateAround(c, 2))
	assert.Equal(t, p, p.RotateAround(c, 1).RotateAround(c, 3))
}

func TestDirection_Unit(t *testing.T) {
	assert.Equal(t, Vec(1, 0), DirPosX.Unit())
	assert.Equal(t, Vec(0, 1), DirPosY.Unit())
	assert.Equal(t, Vec(-1, 0), DirNegX.Unit())
	assert.Equal(t, Vec(0, -1), DirNegY.Unit())
}

func TestDirection_Arithmetic(t *testing.T) {
	assert.Equal(t, DirNegY, DirPosX.Add(-1))
	assert.Equal(t, DirPosX, DirNegY.Add(1))
	assert.Equal(t, DirNegX, DirPosX.Opposite())
	assert.Equal(t, DirNegY, DirPosY.Opposite())
	assert.Equal(t, 3, Mod4(-5))
}

func TestDirectionFromRadians(t *testing.T) {
	assert.Equal(t, DirPosX, DirectionFromRadians(0))
	assert.Equal(t, DirPosY, DirectionFromRadians(math.Pi/2))
	assert.Equal(t, DirNegX, DirectionFromRadians(math.Pi))
	assert.Equal(t, DirNegY, DirectionFromRadians(3*math.Pi/2))
	assert.Equal(t, DirNegY, DirectionFromRadians(-math.Pi/2))
	assert.Equal(t, DirPosX, DirectionFromRadians(2*math.Pi+0.01))
}

func TestQuarterTurnsToRadians(t *testing.T) {
	assert.InDelta(t, 0, QuarterTurnsToRadians(4), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, QuarterTurnsToRadians(-1), 1e-12)
	assert.InDelta(t, math.Pi, DirNegX.Radians(), 1e-12)
}
