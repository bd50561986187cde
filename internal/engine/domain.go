package engine

import (
	"math"
	"math/rand"

	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/piwi3910/RoomFit/internal/room"
)

const (
	// distanceTolerance treats two wall distances as the same constraint.
	distanceTolerance = 1e-9
	// sweepTolerance absorbs rounding when a unit exactly fills the room.
	sweepTolerance = 1e-9
)

// TrimReport describes what trimming the wall constraints had to drop.
type TrimReport struct {
	Conflict bool // duplicate or opposite constraints were removed
}

// trimWallConstraints reduces the constraints to at most one per axis, so at
// most two perpendicular constraints remain.
// Duplicate directions keep the larger distance; of two opposite directions
// the shorter distance is dropped, and on a tie the higher direction.
func (u *PlacementUnit) trimWallConstraints() TrimReport {
	var res TrimReport
	if len(u.walls) <= 1 {
		return res
	}

	var set [4]bool
	var dist [4]float64
	for _, w := range u.walls {
		d := int(w.Direction)
		if !set[d] {
			set[d], dist[d] = true, w.Distance
			continue
		}
		if math.Abs(w.Distance-dist[d]) > distanceTolerance {
			res.Conflict = true
		}
		if w.Distance > dist[d] {
			dist[d] = w.Distance
		}
	}
	for axis := 0; axis < 2; axis++ {
		a, b := axis, axis+2
		if set[a] && set[b] {
			res.Conflict = true
			if dist[a] < dist[b] {
				set[a] = false
			} else {
				set[b] = false
			}
		}
	}

	u.walls = u.walls[:0]
	for d := 0; d < 4; d++ {
		if set[d] {
			u.walls = append(u.walls, WallConstraint{Direction: geom.Direction(d), Distance: dist[d]})
		}
	}
	return res
}

// SetDomain re-centres the unit, trims its wall constraints and enumerates
// every candidate placement in r. The unit's pose afterwards is the home pose
// all candidates are relative to.
func (u *PlacementUnit) SetDomain(r *room.Room) TrimReport {
	u.domain = u.domain[:0]
	u.Recenter()
	res := u.trimWallConstraints()

	step := r.CellSize
	switch len(u.walls) {
	case 0:
		u.freeDomain(r.Width, r.Depth, step)
	case 1:
		u.singleWallDomain(r.Width, r.Depth, step)
	case 2:
		u.cornerDomain(r.Width, r.Depth)
	}
	u.saveHome()
	return res
}

// freeDomain enumerates a grid over the whole free area, once for the
// natural footprint (rotations 0 and 2) and once for the swapped footprint
// (rotations 1 and 3).
func (u *PlacementUnit) freeDomain(width, depth, step float64) {
	x, y := u.XLength(), u.YLength()
	for _, pass := range []struct {
		xLen, yLen float64
		rotations  [2]int
	}{
		{x, y, [2]int{0, 2}},
		{y, x, [2]int{1, 3}},
	} {
		xs := sweep((-width+pass.xLen)/2, (width-pass.xLen)/2, step)
		ys := sweep((-depth+pass.yLen)/2, (depth-pass.yLen)/2, step)
		for _, px := range xs {
			for _, py := range ys {
				for _, rot := range pass.rotations {
					u.domain = append(u.domain, Candidate{Position: geom.Vec(px, py), Rotation: rot})
				}
			}
		}
	}
}

// singleWallDomain turns the unit so its constraint points at +X, then lines
// it up against each of the four walls in turn.
func (u *PlacementUnit) singleWallDomain(width, depth, step float64) {
	u.RotateAround(geom.Vector2D{}, 4-int(u.walls[0].Direction))
	d := u.walls[0].Distance
	yLen := u.YLength()

	for _, py := range sweep((-depth+yLen)/2, (depth-yLen)/2, step) {
		u.domain = append(u.domain, Candidate{Position: geom.Vec(width/2-d, py), Rotation: 0})
	}
	for _, py := range sweep((-depth+yLen)/2, (depth-yLen)/2, step) {
		u.domain = append(u.domain, Candidate{Position: geom.Vec(-width/2+d, py), Rotation: 2})
	}
	for _, px := range sweep((-width+yLen)/2, (width-yLen)/2, step) {
		u.domain = append(u.domain, Candidate{Position: geom.Vec(px, depth/2-d), Rotation: 1})
	}
	for _, px := range sweep((-width+yLen)/2, (width-yLen)/2, step) {
		u.domain = append(u.domain, Candidate{Position: geom.Vec(px, -depth/2+d), Rotation: 3})
	}
}

// cornerDomain turns the unit so its two constraints point at +X and +Y and
// emits the four room corners.
func (u *PlacementUnit) cornerDomain(width, depth float64) {
	a, b := u.walls[0].Direction, u.walls[1].Direction
	first := a
	if b.Add(1) == a {
		first = b
	}
	u.RotateAround(geom.Vector2D{}, 4-int(first))

	var dx, dy float64
	for _, w := range u.walls {
		if w.Direction == geom.DirPosX {
			dx = w.Distance
		} else {
			dy = w.Distance
		}
	}
	u.domain = append(u.domain,
		Candidate{Position: geom.Vec(width/2-dx, depth/2-dy), Rotation: 0},
		Candidate{Position: geom.Vec(-width/2+dy, depth/2-dx), Rotation: 1},
		Candidate{Position: geom.Vec(-width/2+dx, -depth/2+dy), Rotation: 2},
		Candidate{Position: geom.Vec(width/2-dy, -depth/2+dx), Rotation: 3},
	)
}

// sweep returns values from lo to hi inclusive, spaced as close to step as
// fits a whole number of intervals. The end points are exact. A range that
// is negative beyond rounding yields nothing.
func sweep(lo, hi, step float64) []float64 {
	delta := hi - lo
	if delta < -sweepTolerance {
		return nil
	}
	if delta <= sweepTolerance {
		return []float64{(lo + hi) / 2}
	}
	n := int(math.Round(delta / step))
	if n < 1 {
		n = 1
	}
	out := make([]float64, n+1)
	for i := 0; i < n; i++ {
		out[i] = lo + delta*float64(i)/float64(n)
	}
	out[n] = hi
	return out
}

// shuffleDomain permutes the domain uniformly with rng.
func (u *PlacementUnit) shuffleDomain(rng *rand.Rand) {
	n := len(u.domain)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		u.domain[i], u.domain[j] = u.domain[j], u.domain[i]
	}
}
