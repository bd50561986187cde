package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSeeds(t *testing.T) {
	f, _ := newTestFurnisher(t)
	r := demoRoom(t)
	seeds := []int64{3, 1, 2}

	results, err := CompareSeeds(f, r, []string{"sofa", "lamp", "coffee_table"}, seeds)
	require.NoError(t, err)
	require.Len(t, results, len(seeds))
	for i, res := range results {
		assert.Equal(t, seeds[i], res.Seed, "results keep seed order")
		assert.Equal(t, 3, res.Placed)
		assert.Equal(t, res.Result.Stats.Candidates, res.Candidates)
	}
}

func TestCompareSeeds_PropagatesErrors(t *testing.T) {
	f, _ := newTestFurnisher(t)
	_, err := CompareSeeds(f, demoRoom(t), []string{"throne"}, []int64{1, 2})
	assert.ErrorIs(t, err, ErrUnknownFittingModel)
}

func TestBestSeed(t *testing.T) {
	_, ok := BestSeed(nil)
	assert.False(t, ok)

	best, ok := BestSeed([]SeedComparison{
		{Seed: 1, Placed: 0, Candidates: 5},
		{Seed: 2, Placed: 3, Candidates: 900},
		{Seed: 3, Placed: 3, Candidates: 40},
		{Seed: 4, Placed: 3, Candidates: 40},
	})
	require.True(t, ok)
	assert.Equal(t, int64(3), best.Seed, "most placed, then fewest candidates, then first")
}

func TestDefaultSeeds(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, DefaultSeeds(0, 3))
	assert.Equal(t, []int64{10, 11}, DefaultSeeds(10, 2))
	assert.Empty(t, DefaultSeeds(5, 0))
}
