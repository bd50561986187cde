// Package geom holds the small amount of plane geometry the placement engine
// needs: 2D vectors in metres and the four axis-aligned directions.
package geom

import (
	"fmt"
	"math"
)

// Vector2D is a point or offset on the floor plane, in metres.
type Vector2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func Vec(x, y float64) Vector2D { return Vector2D{X: x, Y: y} }

func (v Vector2D) Add(o Vector2D) Vector2D { return Vector2D{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vector2D) Sub(o Vector2D) Vector2D { return Vector2D{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vector2D) Scale(s float64) Vector2D { return Vector2D{X: v.X * s, Y: v.Y * s} }
func (v Vector2D) Neg() Vector2D            { return Vector2D{X: -v.X, Y: -v.Y} }
func (v Vector2D) Dot(o Vector2D) float64   { return v.X*o.X + v.Y*o.Y }

// Rotate turns v counter-clockwise by a quarter turns about the origin.
// Quarter-turn rotation only swaps and negates components, so it is exact.
func (v Vector2D) Rotate(quarterTurns int) Vector2D {
	switch Mod4(quarterTurns) {
	case 1:
		return Vector2D{X: -v.Y, Y: v.X}
	case 2:
		return Vector2D{X: -v.X, Y: -v.Y}
	case 3:
		return Vector2D{X: v.Y, Y: -v.X}
	default:
		return v
	}
}

// RotateAround turns v by quarterTurns about center.
func (v Vector2D) RotateAround(center Vector2D, quarterTurns int) Vector2D {
	return v.Sub(center).Rotate(quarterTurns).Add(center)
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vector2D) ApproxEqual(o Vector2D, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Direction is one of the four axis directions, counter-clockwise from +X.
type Direction int

const (
	DirPosX Direction = iota // +X
	DirPosY                  // +Y
	DirNegX                  // -X
	DirNegY                  // -Y
)

// Mod4 reduces any integer into 0..3.
func Mod4(n int) int {
	return ((n % 4) + 4) % 4
}

// Dir normalizes n into a Direction.
func Dir(n int) Direction { return Direction(Mod4(n)) }

// Add returns the direction reached after turning quarterTurns counter-clockwise.
func (d Direction) Add(quarterTurns int) Direction { return Dir(int(d) + quarterTurns) }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return d.Add(2) }

// Unit returns the unit vector for d.
func (d Direction) Unit() Vector2D {
	return Vector2D{X: 1}.Rotate(int(d))
}

// Radians returns the angle of d measured counter-clockwise from +X.
func (d Direction) Radians() float64 {
	return float64(Mod4(int(d))) * math.Pi / 2
}

func (d Direction) String() string {
	switch Mod4(int(d)) {
	case 0:
		return "+X"
	case 1:
		return "+Y"
	case 2:
		return "-X"
	default:
		return "-Y"
	}
}

// DirectionFromRadians snaps an angle to the nearest quarter turn.
func DirectionFromRadians(rad float64) Direction {
	return Dir(int(math.Round(rad / (math.Pi / 2))))
}

// QuarterTurnsToRadians converts an orientation in quarter turns to radians.
func QuarterTurnsToRadians(turns int) float64 {
	return float64(Mod4(turns)) * math.Pi / 2
}
