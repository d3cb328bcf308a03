package pagerank

import (
	"math"

	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"golang.org/x/xerrors"
)

const (
	// DefaultConvergenceThreshold is the maximum per-node score change
	// across a full round below which IterateRank considers the scores
	// stable.
	DefaultConvergenceThreshold = 0.001

	// DefaultMaxIterations is the number of rounds after which IterateRank
	// gives up waiting for convergence.
	DefaultMaxIterations = 1000
)

// IterateOptions tunes the stopping criteria of IterateRank. Zero values
// select the defaults.
type IterateOptions struct {
	// ConvergenceThreshold is the maximum absolute per-node change across
	// a round that is required for the scores to be considered stable.
	ConvergenceThreshold float64

	// MaxIterations caps the number of rounds.
	MaxIterations int
}

func (o *IterateOptions) validate() error {
	if o.ConvergenceThreshold < 0 || math.IsNaN(o.ConvergenceThreshold) {
		return xerrors.Errorf("convergence threshold %v: %w", o.ConvergenceThreshold, ErrInvalidThreshold)
	} else if o.ConvergenceThreshold == 0 {
		o.ConvergenceThreshold = DefaultConvergenceThreshold
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return nil
}

// IterationResult is the outcome of an IterateRank run.
type IterationResult struct {
	// Ranks holds the normalized scores.
	Ranks Ranks

	// Iterations is the number of completed rounds.
	Iterations int

	// MaxDelta is the largest per-node change observed in the last round.
	MaxDelta float64

	// Converged is false if the run stopped because it hit the iteration
	// ceiling.
	Converged bool
}

// IterateRank calculates PageRank scores by repeatedly applying
//
//	PR(p) = (1-d)/N + d * Σ PR(q)/L(q)
//
// where q ranges over the nodes linking to p and L(q) is q's out-degree,
// until no score moves by more than the convergence threshold within a
// round. Each round only reads the scores of the previous round. Sinks
// contribute nothing to the sum, unlike Transition where they jump
// uniformly.
//
// If the iteration ceiling is reached first, the best-effort result is
// returned together with an error wrapping ErrNotConverged.
func IterateRank(g linkgraph.Graph, dampingFactor float64, opts IterateOptions) (*IterationResult, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	} else if err = checkDampingFactor(dampingFactor); err != nil {
		return nil, err
	} else if err = opts.validate(); err != nil {
		return nil, err
	}

	var (
		ids       = g.Nodes()
		parents   = g.Parents()
		numNodes  = float64(len(ids))
		jumpScore = (1.0 - dampingFactor) / numNodes
		outDegree = make(map[string]float64, len(ids))
		ranks     = make(Ranks, len(ids))
		prev      = make(Ranks, len(ids))
		res       = new(IterationResult)
	)
	for _, id := range ids {
		outDegree[id] = float64(g.OutDegree(id))
		ranks[id] = 1.0 / numNodes
	}

	for res.Iterations < opts.MaxIterations {
		for id, rank := range ranks {
			prev[id] = rank
		}

		res.MaxDelta = 0
		for _, id := range ids {
			var linkScore float64
			for _, parent := range parents[id] {
				linkScore += prev[parent] / outDegree[parent]
			}

			newRank := jumpScore + dampingFactor*linkScore
			if absDelta := math.Abs(newRank - prev[id]); absDelta > res.MaxDelta {
				res.MaxDelta = absDelta
			}
			ranks[id] = newRank
		}
		res.Iterations++

		if res.MaxDelta < opts.ConvergenceThreshold {
			res.Converged = true
			break
		}
	}

	ranks.normalize()
	res.Ranks = ranks

	if !res.Converged {
		return res, xerrors.Errorf("stopped after %d iterations with max delta %v: %w", res.Iterations, res.MaxDelta, ErrNotConverged)
	}
	return res, nil
}
