package engine

import (
	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/piwi3910/RoomFit/internal/room"
)

// SearchStats counts the work done by one search.
type SearchStats struct {
	Units      int `json:"units"`
	Candidates int `json:"candidates"` // candidate placements tried
	Backtracks int `json:"backtracks"` // committed placements undone
}

// fits reports whether every member can stand where the unit currently is:
// footprints inside the room and occupiable, clearance strips reservable.
func (u *PlacementUnit) fits(r *room.Room) bool {
	for _, m := range u.members {
		f := u.all[m]
		min, max := f.Footprint()
		if !r.Contains(min, max) {
			return false
		}
		if !r.CanAreaBeOccupied(min, max, f.Model.BoundingBox.Height) {
			return false
		}
		for _, strip := range f.ClearanceStrips() {
			if !r.CanAreaBeReserved(strip[0], strip[1]) {
				return false
			}
		}
	}
	return true
}

// place reserves every member's clearance strips and occupies its footprint.
func (u *PlacementUnit) place(r *room.Room) {
	for _, m := range u.members {
		f := u.all[m]
		for _, strip := range f.ClearanceStrips() {
			r.ReserveArea(strip[0], strip[1])
		}
		min, max := f.Footprint()
		r.OccupyArea(min, max)
	}
}

// unplace reverts place and returns the unit to its home pose.
func (u *PlacementUnit) unplace(r *room.Room) {
	for _, m := range u.members {
		f := u.all[m]
		for _, strip := range f.ClearanceStrips() {
			r.UnreserveArea(strip[0], strip[1])
		}
		min, max := f.Footprint()
		r.UnoccupyArea(min, max)
	}
	u.restoreHome()
}

// tryFitAt moves the unit from its home pose to c and places it if it fits.
// On failure the unit is back in its home pose and r is untouched.
func (u *PlacementUnit) tryFitAt(c Candidate, r *room.Room) bool {
	u.RotateAround(geom.Vector2D{}, c.Rotation)
	u.Translate(c.Position)
	if !u.fits(r) {
		u.restoreHome()
		return false
	}
	u.place(r)
	return true
}

// searcher runs the depth-first search over units on one room grid.
type searcher struct {
	room    *room.Room
	units   []*PlacementUnit
	limit   int
	stats   SearchStats
	aborted bool
}

func newSearcher(r *room.Room, units []*PlacementUnit, limit int) *searcher {
	return &searcher{room: r, units: units, limit: limit, stats: SearchStats{Units: len(units)}}
}

// run returns true when every unit was placed. On false the grid is exactly
// as it was before the call.
func (s *searcher) run() bool {
	return s.search(0)
}

func (s *searcher) search(i int) bool {
	if i == len(s.units) {
		return true
	}
	u := s.units[i]
	for _, c := range u.domain {
		if s.limit > 0 && s.stats.Candidates >= s.limit {
			s.aborted = true
			return false
		}
		s.stats.Candidates++
		if !u.tryFitAt(c, s.room) {
			continue
		}
		if s.search(i + 1) {
			return true
		}
		u.unplace(s.room)
		s.stats.Backtracks++
		if s.aborted {
			return false
		}
	}
	return false
}

// prefilter drops candidates that cannot fit even in the empty room. The
// grid only gains occupation during a search, so these could never succeed.
// Order is preserved.
func prefilter(u *PlacementUnit, empty *room.Room) {
	kept := u.domain[:0]
	for _, c := range u.domain {
		if u.tryFitAt(c, empty) {
			u.unplace(empty)
			kept = append(kept, c)
		}
	}
	u.domain = kept
}
