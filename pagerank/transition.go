package pagerank

import (
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"golang.org/x/xerrors"
)

// Transition returns the probability distribution over the node a random
// surfer visits after current.
//
// With probability dampingFactor the surfer follows one of current's
// outbound links chosen uniformly; otherwise it jumps to any node of the
// graph chosen uniformly. A sink node has no links to follow, so the surfer
// always jumps and every node receives 1/N. Note that IterateRank treats
// sinks differently: there they contribute nothing to other nodes.
func Transition(g linkgraph.Graph, current string, dampingFactor float64) (Distribution, error) {
	if len(g) == 0 {
		return nil, ErrEmptyGraph
	} else if err := checkDampingFactor(dampingFactor); err != nil {
		return nil, err
	}

	out, exists := g[current]
	if !exists {
		return nil, xerrors.Errorf("transition from %q: %w", current, ErrUnknownNode)
	}

	var (
		numNodes = float64(len(g))
		numLinks = out.Cardinality()
		dist     = make(Distribution, len(g))
	)

	if numLinks == 0 {
		for id := range g {
			dist[id] = 1.0 / numNodes
		}
		return dist, nil
	}

	jumpProb := (1.0 - dampingFactor) / numNodes
	linkProb := dampingFactor / float64(numLinks)
	for id := range g {
		dist[id] = jumpProb
	}
	out.Each(func(dst string) bool {
		dist[dst] += linkProb
		return false
	})

	return dist, nil
}
