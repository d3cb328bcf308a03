package pagerank

import (
	"sort"
)

// Distribution maps each node ID to the probability of visiting it next.
type Distribution map[string]float64

// Ranks maps each node ID to its estimated PageRank score.
type Ranks map[string]float64

// Score is a single (node ID, rank) pair.
type Score struct {
	ID   string
	Rank float64
}

// Sum returns the total of all scores, added up one by one in node ID
// order.
func (r Ranks) Sum() float64 {
	var total float64
	for _, score := range r.Sorted() {
		total += score.Rank
	}
	return total
}

// Sorted returns the scores ordered by node ID.
func (r Ranks) Sorted() []Score {
	scores := make([]Score, 0, len(r))
	for id, rank := range r {
		scores = append(scores, Score{ID: id, Rank: rank})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].ID < scores[j].ID })
	return scores
}

// normalize scales the scores in place so they add up to exactly 1.0.
func (r Ranks) normalize() {
	total := r.Sum()
	if total == 0 {
		return
	}
	for id, rank := range r {
		r[id] = rank / total
	}
	r.absorbDrift()
}

// absorbDrift replaces the last non-zero score (in node ID order) with 1.0
// minus the running total of the scores before it, so that Sum returns
// exactly 1.0. The adjustment is at most a few ulps.
func (r Ranks) absorbDrift() {
	scores := r.Sorted()
	last := -1
	for i, score := range scores {
		if score.Rank != 0 {
			last = i
		}
	}
	if last < 0 {
		return
	}

	var running float64
	for _, score := range scores[:last] {
		running += score.Rank
	}
	r[scores[last].ID] = 1.0 - running
}
