package engine

import (
	"sort"

	"github.com/piwi3910/RoomFit/internal/room"
)

// SeedComparison holds the outcome of one seed in a comparison run.
type SeedComparison struct {
	Seed        int64
	Result      Result
	Placed      int
	Candidates  int
	Backtracks  int
	Diagnostics int
}

// CompareSeeds runs the same request once per seed so callers can pick the
// layout they like. Results keep the seed order. Each run gets its own copy
// of the room grid.
func CompareSeeds(f *Furnisher, r *room.Room, modelIDs []string, seeds []int64) ([]SeedComparison, error) {
	results := make([]SeedComparison, 0, len(seeds))

	for _, seed := range seeds {
		res, err := f.Generate(r, modelIDs, seed)
		if err != nil {
			return nil, err
		}
		results = append(results, SeedComparison{
			Seed:        res.Seed,
			Result:      res,
			Placed:      len(res.Placements),
			Candidates:  res.Stats.Candidates,
			Backtracks:  res.Stats.Backtracks,
			Diagnostics: len(res.Diagnostics),
		})
	}

	return results, nil
}

// BestSeed picks the comparison that placed the most fittings, preferring
// fewer tried candidates on a tie. It returns false for an empty slice.
func BestSeed(results []SeedComparison) (SeedComparison, bool) {
	if len(results) == 0 {
		return SeedComparison{}, false
	}
	sorted := make([]SeedComparison, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Placed != sorted[j].Placed {
			return sorted[i].Placed > sorted[j].Placed
		}
		return sorted[i].Candidates < sorted[j].Candidates
	})
	return sorted[0], true
}

// DefaultSeeds returns n consecutive seeds starting at base. A base of 0
// starts at 1 so every seed is reproducible.
func DefaultSeeds(base int64, n int) []int64 {
	if base == 0 {
		base = 1
	}
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = base + int64(i)
	}
	return seeds
}
