package pagerank

import (
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"golang.org/x/xerrors"
)

var (
	// ErrEmptyGraph is returned when ranking a graph with no nodes.
	ErrEmptyGraph = linkgraph.ErrEmptyGraph

	// ErrUnknownNode is returned by Transition when the current node is
	// not part of the graph.
	ErrUnknownNode = linkgraph.ErrUnknownNode

	// ErrInvalidDampingFactor is returned when the damping factor is not
	// in the open (0, 1) range.
	ErrInvalidDampingFactor = xerrors.New("damping factor must be in the range (0, 1)")

	// ErrInvalidSampleCount is returned by SampleRank when asked to draw
	// fewer than one sample.
	ErrInvalidSampleCount = xerrors.New("sample count must be a positive integer")

	// ErrInvalidThreshold is returned by IterateRank when the convergence
	// threshold is not positive.
	ErrInvalidThreshold = xerrors.New("convergence threshold must be positive")

	// ErrNotConverged is returned by IterateRank together with a
	// best-effort result when the iteration ceiling is reached before the
	// scores stabilize.
	ErrNotConverged = xerrors.New("PageRank scores did not converge")
)

func checkDampingFactor(d float64) error {
	if !(d > 0 && d < 1) {
		return xerrors.Errorf("damping factor %v: %w", d, ErrInvalidDampingFactor)
	}
	return nil
}
