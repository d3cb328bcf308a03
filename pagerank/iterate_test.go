package pagerank

import (
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(IterateTestSuite))

type IterateTestSuite struct{}

func (s *IterateTestSuite) TestSimpleGraphCase1(c *gc.C) {
	s.assertPageRankScores(c, spec{
		descr: `
 (A) -> (B) -> (C)
  ^             |
  |             |
  +-------------+

Expect PageRank score to be distributed evenly across the three nodes.
`,
		adj: map[string][]string{
			"A": {"B"},
			"B": {"C"},
			"C": {"A"},
		},
		expScores: map[string]float64{
			"A": 1.0 / 3.0,
			"B": 1.0 / 3.0,
			"C": 1.0 / 3.0,
		},
	})
}

func (s *IterateTestSuite) TestSimpleGraphCase2(c *gc.C) {
	s.assertPageRankScores(c, spec{
		descr: `
  +--(A)<-+
  |       |
  V       |
 (B) <-> (C)

Expect B and C to get better score than A due to the back-link between them.
`,
		adj: map[string][]string{
			"A": {"B"},
			"B": {"C"},
			"C": {"A", "B"},
		},
		expScores: map[string]float64{
			"A": 0.2145,
			"B": 0.3937,
			"C": 0.3879,
		},
	})
}

func (s *IterateTestSuite) TestSimpleGraphCase3(c *gc.C) {
	s.assertPageRankScores(c, spec{
		descr: `
 (A) <-> (B) <-> (C)

Expect A and C to get the same score and B to get the largest score since there
are two links pointing to it.
`,
		adj: map[string][]string{
			"A": {"B"},
			"B": {"A", "C"},
			"C": {"B"},
		},
		expScores: map[string]float64{
			"A": 0.2569,
			"B": 0.4860,
			"C": 0.2569,
		},
	})
}

func (s *IterateTestSuite) TestSymmetricCycle(c *gc.C) {
	s.assertPageRankScores(c, spec{
		descr: `
 (A) <-> (B)
`,
		adj: map[string][]string{
			"A": {"B"},
			"B": {"A"},
		},
		expScores: map[string]float64{
			"A": 0.5,
			"B": 0.5,
		},
	})
}

func (s *IterateTestSuite) TestDeadEnd(c *gc.C) {
	c.Log(`
 (A) -> (B) -> (C)

C is a dead-end. It receives B's score but hands nothing on, so it must
end up ahead of A which has no inbound links at all.
`)
	res, err := IterateRank(chain(), 0.85, IterateOptions{})
	c.Assert(err, gc.IsNil)
	c.Assert(res.Converged, gc.Equals, true)
	assertSumsToExactlyOne(c, res.Ranks)
	c.Assert(res.Ranks["C"] > res.Ranks["A"], gc.Equals, true, gc.Commentf("got %v", res.Ranks))
	c.Assert(res.Ranks["B"] > res.Ranks["A"], gc.Equals, true, gc.Commentf("got %v", res.Ranks))

	// Un-normalized fixed point: A = 0.05, B = 0.05 + 0.85A, C = 0.05 + 0.85B.
	total := 0.05 + 0.0925 + 0.128625
	assertScores(c, res.Ranks, map[string]float64{
		"A": 0.05 / total,
		"B": 0.0925 / total,
		"C": 0.128625 / total,
	}, 1e-9)
}

func (s *IterateTestSuite) TestIsolatedNode(c *gc.C) {
	res, err := IterateRank(isolated(), 0.85, IterateOptions{})
	c.Assert(err, gc.IsNil)
	c.Assert(res.Ranks, gc.DeepEquals, Ranks{"A": 1.0})
	c.Assert(res.Iterations, gc.Equals, 2)
}

func (s *IterateTestSuite) TestDeterministic(c *gc.C) {
	res1, err := IterateRank(corpus0(), 0.85, IterateOptions{})
	c.Assert(err, gc.IsNil)
	res2, err := IterateRank(corpus0(), 0.85, IterateOptions{})
	c.Assert(err, gc.IsNil)
	c.Assert(res1, gc.DeepEquals, res2)
}

func (s *IterateTestSuite) TestNonConvergence(c *gc.C) {
	res, err := IterateRank(corpus0(), 0.85, IterateOptions{MaxIterations: 1})
	c.Assert(xerrors.Is(err, ErrNotConverged), gc.Equals, true)
	c.Assert(res, gc.NotNil)
	c.Assert(res.Converged, gc.Equals, false)
	c.Assert(res.Iterations, gc.Equals, 1)
	assertSumsToExactlyOne(c, res.Ranks)
}

func (s *IterateTestSuite) TestMatchesGonumOnSinkFreeGraphs(c *gc.C) {
	graphs := []linkgraph.Graph{corpus0(), cycle(), linkgraph.FromAdjacency(map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D", "E"},
		"D": {"E"},
		"E": {"A"},
	})}

	for _, g := range graphs {
		for _, d := range []float64{0.5, 0.8, 0.85} {
			res, err := IterateRank(g, d, IterateOptions{ConvergenceThreshold: 1e-12})
			c.Assert(err, gc.IsNil)
			assertScores(c, res.Ranks, gonumPageRank(g, d), 1e-6)
		}
	}
}

func (s *IterateTestSuite) TestPreconditions(c *gc.C) {
	_, err := IterateRank(linkgraph.New(), 0.85, IterateOptions{})
	c.Assert(xerrors.Is(err, ErrEmptyGraph), gc.Equals, true)

	_, err = IterateRank(corpus0(), 0, IterateOptions{})
	c.Assert(xerrors.Is(err, ErrInvalidDampingFactor), gc.Equals, true)

	_, err = IterateRank(corpus0(), 0.85, IterateOptions{ConvergenceThreshold: -1})
	c.Assert(xerrors.Is(err, ErrInvalidThreshold), gc.Equals, true)
}

func (s *IterateTestSuite) assertPageRankScores(c *gc.C, spec spec) {
	c.Log(spec.descr)

	res, err := IterateRank(linkgraph.FromAdjacency(spec.adj), 0.85, IterateOptions{})
	c.Assert(err, gc.IsNil)
	c.Logf("converged after %d iterations", res.Iterations)

	assertScores(c, res.Ranks, spec.expScores, 0.01)
	assertSumsToExactlyOne(c, res.Ranks)
}

// gonumPageRank computes reference scores for g with gonum's power-iteration
// implementation. Both formulations only agree when g has no sinks.
func gonumPageRank(g linkgraph.Graph, d float64) map[string]float64 {
	ids := g.Nodes()
	index := make(map[string]int64, len(ids))
	dg := simple.NewDirectedGraph()
	for i, id := range ids {
		index[id] = int64(i)
		dg.AddNode(simple.Node(i))
	}
	for _, src := range ids {
		for _, dst := range g.Links(src) {
			dg.SetEdge(simple.Edge{F: simple.Node(index[src]), T: simple.Node(index[dst])})
		}
	}

	scores := network.PageRank(dg, d, 1e-12)
	exp := make(map[string]float64, len(ids))
	for _, id := range ids {
		exp[id] = scores[index[id]]
	}
	return exp
}
