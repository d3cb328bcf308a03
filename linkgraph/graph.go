package linkgraph

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/xerrors"
)

var (
	// ErrEmptyGraph is returned by Validate when the graph has no nodes.
	ErrEmptyGraph = xerrors.New("link graph has no nodes")

	// ErrDanglingLink is returned by Validate when an outbound link points
	// to a node that is not part of the graph.
	ErrDanglingLink = xerrors.New("link destination is not part of the graph")

	// ErrUnknownNode is returned by AddLink when the source node has not
	// been added to the graph.
	ErrUnknownNode = xerrors.New("node is not part of the graph")
)

// Graph maps each node ID to the set of node IDs it links to. Every member of
// an outbound set is expected to also be a key of the graph. A node with an
// empty outbound set is a sink.
//
// Graph instances are not safe for concurrent mutation. Once populated they
// are treated as read-only and can be shared freely.
type Graph map[string]mapset.Set[string]

// New returns an empty Graph.
func New() Graph {
	return make(Graph)
}

// FromAdjacency builds a Graph from a plain adjacency list. Link targets that
// do not appear as keys of adj are added as sinks so the result always
// passes Validate (unless adj is empty).
func FromAdjacency(adj map[string][]string) Graph {
	g := make(Graph, len(adj))
	for id := range adj {
		g.AddNode(id)
	}
	for src, dsts := range adj {
		for _, dst := range dsts {
			g.AddNode(dst)
			// src was added in the loop above so AddLink cannot fail.
			_ = g.AddLink(src, dst)
		}
	}
	return g
}

// AddNode inserts a node with no outbound links. Adding a node that already
// exists is a no-op.
func (g Graph) AddNode(id string) {
	if _, exists := g[id]; !exists {
		g[id] = mapset.NewThreadUnsafeSet[string]()
	}
}

// AddLink inserts a directed link from src to dst. The src node must already
// exist. Self links are silently ignored.
func (g Graph) AddLink(src, dst string) error {
	out, exists := g[src]
	if !exists {
		return xerrors.Errorf("create link from %q to %q: %w", src, dst, ErrUnknownNode)
	}

	// Don't allow self-links
	if src == dst {
		return nil
	}
	out.Add(dst)
	return nil
}

// Has returns true if id is a node of the graph.
func (g Graph) Has(id string) bool {
	_, exists := g[id]
	return exists
}

// OutDegree returns the number of outbound links for node id.
func (g Graph) OutDegree(id string) int {
	if out := g[id]; out != nil {
		return out.Cardinality()
	}
	return 0
}

// Validate checks that the graph is not empty and that it contains no
// dangling links.
func (g Graph) Validate() error {
	if len(g) == 0 {
		return ErrEmptyGraph
	}

	for _, src := range g.Nodes() {
		for _, dst := range g.Links(src) {
			if _, exists := g[dst]; !exists {
				return xerrors.Errorf("link from %q to %q: %w", src, dst, ErrDanglingLink)
			}
		}
	}
	return nil
}

// Nodes returns the IDs of all graph nodes in lexicographic order.
func (g Graph) Nodes() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Links returns the outbound links of node id in lexicographic order.
func (g Graph) Links(id string) []string {
	out := g[id]
	if out == nil {
		return nil
	}

	links := out.ToSlice()
	sort.Strings(links)
	return links
}

// Parents returns an inbound index for the graph: for every node, the sorted
// list of nodes linking to it. Every node of the graph has an entry, even if
// it has no parents.
func (g Graph) Parents() map[string][]string {
	parents := make(map[string][]string, len(g))
	for _, src := range g.Nodes() {
		if _, exists := parents[src]; !exists {
			parents[src] = nil
		}
		for _, dst := range g.Links(src) {
			parents[dst] = append(parents[dst], src)
		}
	}
	return parents
}
