package pagerank

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/prashannakc/PAGE-RANK/pagerank RandSource

// RandSource is the source of randomness used by the sampling estimator.
// It is satisfied by *rand.Rand.
type RandSource interface {
	// Intn returns a uniformly distributed integer in [0, n).
	Intn(n int) int

	// Float64 returns a uniformly distributed float64 in [0.0, 1.0).
	Float64() float64
}

// weightedChooser draws node IDs with probability proportional to their
// weight using a cumulative weight table and a binary search.
type weightedChooser struct {
	ids        []string
	cumWeights []float64
}

// newWeightedChooser builds a chooser for dist. The table follows the order
// of ids; IDs missing from dist get a zero weight and are never chosen.
func newWeightedChooser(ids []string, dist Distribution) *weightedChooser {
	weights := make([]float64, len(ids))
	for i, id := range ids {
		weights[i] = dist[id]
	}

	return &weightedChooser{
		ids:        ids,
		cumWeights: floats.CumSum(make([]float64, len(weights)), weights),
	}
}

// Choose draws a single node ID using src.
func (wc *weightedChooser) Choose(src RandSource) string {
	last := len(wc.cumWeights) - 1
	target := src.Float64() * wc.cumWeights[last]

	// Search for the first bucket whose upper bound lies strictly above the
	// target so that zero-weight entries can never be selected.
	idx := sort.Search(len(wc.cumWeights), func(i int) bool {
		return wc.cumWeights[i] > target
	})
	if idx > last {
		idx = last
	}
	return wc.ids[idx]
}
