package pagerank

import (
	"fmt"
	"math/rand"

	"github.com/golang/mock/gomock"
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"github.com/prashannakc/PAGE-RANK/pagerank/mocks"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SampleTestSuite))

type SampleTestSuite struct{}

func (s *SampleTestSuite) TestRanksSumToOne(c *gc.C) {
	src := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 7, 1000, 10000} {
		ranks, err := SampleRank(corpus0(), 0.85, n, src)
		c.Assert(err, gc.IsNil)
		c.Assert(ranks, gc.HasLen, 4)
		assertSumsToExactlyOne(c, ranks)
	}
}

func (s *SampleTestSuite) TestRanksSumToExactlyOneOnSinks(c *gc.C) {
	adj := make(map[string][]string)
	for i := 0; i < 10; i++ {
		adj[fmt.Sprintf("%d.html", i)] = nil
	}
	g := linkgraph.FromAdjacency(adj)

	src := rand.New(rand.NewSource(42))
	for n := 1; n <= 200; n++ {
		ranks, err := SampleRank(g, 0.85, n, src)
		c.Assert(err, gc.IsNil)
		c.Assert(ranks.Sum(), gc.Equals, 1.0, gc.Commentf("sample count %d: %v", n, ranks))
		for id, rank := range ranks {
			c.Assert(rank >= 0, gc.Equals, true, gc.Commentf("sample count %d: score for %s: %v", n, id, rank))
		}
	}
}

func (s *SampleTestSuite) TestSingleSample(c *gc.C) {
	ranks, err := SampleRank(corpus0(), 0.85, 1, rand.New(rand.NewSource(42)))
	c.Assert(err, gc.IsNil)

	var ones, zeros int
	for _, rank := range ranks {
		switch rank {
		case 1.0:
			ones++
		case 0.0:
			zeros++
		}
	}
	c.Assert(ones, gc.Equals, 1)
	c.Assert(zeros, gc.Equals, 3)
}

func (s *SampleTestSuite) TestWalkUsesTransitionOfPreviousSample(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	// With d = 0.5 the cumulative tables over [A, B] are:
	//   from A (links to B): [0.25, 1.0]
	//   from B (sink):       [0.5, 1.0]
	g := linkgraph.FromAdjacency(map[string][]string{
		"A": {"B"},
		"B": {},
	})

	src := mocks.NewMockRandSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Intn(2).Return(0),        // A
		src.EXPECT().Float64().Return(0.1),    // A -> A
		src.EXPECT().Float64().Return(0.3),    // A -> B
		src.EXPECT().Float64().Return(0.7),    // B -> B
		src.EXPECT().Float64().Return(0.4999), // B -> A
	)

	ranks, err := SampleRank(g, 0.5, 5, src)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.DeepEquals, Ranks{"A": 0.6, "B": 0.4})
}

func (s *SampleTestSuite) TestSymmetricCycle(c *gc.C) {
	ranks, err := SampleRank(cycle(), 0.85, 20000, rand.New(rand.NewSource(42)))
	c.Assert(err, gc.IsNil)
	assertScores(c, ranks, map[string]float64{"A": 0.5, "B": 0.5}, 0.02)
}

func (s *SampleTestSuite) TestIsolatedNode(c *gc.C) {
	ranks, err := SampleRank(isolated(), 0.85, 100, nil)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.DeepEquals, Ranks{"A": 1.0})
}

func (s *SampleTestSuite) TestAgreesWithIteration(c *gc.C) {
	res, err := IterateRank(corpus0(), 0.85, IterateOptions{ConvergenceThreshold: 1e-9})
	c.Assert(err, gc.IsNil)

	ranks, err := SampleRank(corpus0(), 0.85, 100000, rand.New(rand.NewSource(42)))
	c.Assert(err, gc.IsNil)
	assertScores(c, ranks, res.Ranks, 0.02)
}

func (s *SampleTestSuite) TestPreconditions(c *gc.C) {
	_, err := SampleRank(linkgraph.New(), 0.85, 10, nil)
	c.Assert(xerrors.Is(err, ErrEmptyGraph), gc.Equals, true)

	for _, n := range []int{0, -10} {
		_, err = SampleRank(corpus0(), 0.85, n, nil)
		c.Assert(xerrors.Is(err, ErrInvalidSampleCount), gc.Equals, true, gc.Commentf("sample count %d", n))
	}

	_, err = SampleRank(corpus0(), 1.0, 10, nil)
	c.Assert(xerrors.Is(err, ErrInvalidDampingFactor), gc.Equals, true)

	dangling := corpus0()
	dangling["1.html"].Add("missing.html")
	_, err = SampleRank(dangling, 0.85, 10, nil)
	c.Assert(xerrors.Is(err, linkgraph.ErrDanglingLink), gc.Equals, true)
}
