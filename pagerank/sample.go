package pagerank

import (
	"math/rand"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"golang.org/x/xerrors"
)

// maxCachedChoosers bounds the number of per-node cumulative weight tables
// that a single sampling run keeps around.
const maxCachedChoosers = 1024

// SampleRank estimates PageRank scores by simulating a random surfer that
// visits samples pages. The first page is picked uniformly at random; every
// following page is drawn from the Transition distribution of the page
// visited before it. The score of each page is the fraction of samples that
// landed on it. The scores add up to exactly 1.0.
//
// All draws come from src. If src is nil, a time-seeded generator is used.
func SampleRank(g linkgraph.Graph, dampingFactor float64, samples int, src RandSource) (Ranks, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	} else if err = checkDampingFactor(dampingFactor); err != nil {
		return nil, err
	} else if samples <= 0 {
		return nil, xerrors.Errorf("sample count %d: %w", samples, ErrInvalidSampleCount)
	}
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w, err := newWalker(g, dampingFactor, src)
	if err != nil {
		return nil, err
	}

	visits := make(map[string]int, len(g))
	for _, id := range w.ids {
		visits[id] = 0
	}

	cur := w.ids[src.Intn(len(w.ids))]
	visits[cur]++
	for i := 1; i < samples; i++ {
		if cur, err = w.next(cur); err != nil {
			return nil, err
		}
		visits[cur]++
	}

	ranks := make(Ranks, len(visits))
	for id, count := range visits {
		ranks[id] = float64(count) / float64(samples)
	}
	ranks.absorbDrift()
	return ranks, nil
}

// walker drives a single random walk over a graph. It caches the weighted
// chooser for each node it leaves from so that consecutive visits to the
// same node reuse the same cumulative table.
type walker struct {
	g             linkgraph.Graph
	dampingFactor float64
	src           RandSource
	ids           []string
	choosers      *lru.Cache[string, *weightedChooser]
}

func newWalker(g linkgraph.Graph, dampingFactor float64, src RandSource) (*walker, error) {
	cacheSize := len(g)
	if cacheSize > maxCachedChoosers {
		cacheSize = maxCachedChoosers
	}
	choosers, err := lru.New[string, *weightedChooser](cacheSize)
	if err != nil {
		return nil, xerrors.Errorf("create chooser cache: %w", err)
	}

	return &walker{
		g:             g,
		dampingFactor: dampingFactor,
		src:           src,
		ids:           g.Nodes(),
		choosers:      choosers,
	}, nil
}

// next draws the node visited after cur.
func (w *walker) next(cur string) (string, error) {
	chooser, cached := w.choosers.Get(cur)
	if !cached {
		dist, err := Transition(w.g, cur, w.dampingFactor)
		if err != nil {
			return "", err
		}
		chooser = newWeightedChooser(w.ids, dist)
		w.choosers.Add(cur, chooser)
	}
	return chooser.Choose(w.src), nil
}
