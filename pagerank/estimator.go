package pagerank

import (
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"golang.org/x/xerrors"
)

// Estimator bundles a validated Config with the two PageRank estimators so
// callers do not need to thread the parameters through every call.
type Estimator struct {
	cfg Config
}

// NewEstimator returns a new Estimator instance using the provided config
// options.
func NewEstimator(cfg Config) (*Estimator, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank estimator config validation failed: %w", err)
	}
	return &Estimator{cfg: cfg}, nil
}

// Config returns the estimator configuration with defaults applied.
func (e *Estimator) Config() Config { return e.cfg }

// Sample runs SampleRank on g.
func (e *Estimator) Sample(g linkgraph.Graph) (Ranks, error) {
	return SampleRank(g, e.cfg.DampingFactor, e.cfg.Samples, e.cfg.RandSource)
}

// Iterate runs IterateRank on g.
func (e *Estimator) Iterate(g linkgraph.Graph) (*IterationResult, error) {
	return IterateRank(g, e.cfg.DampingFactor, IterateOptions{
		ConvergenceThreshold: e.cfg.ConvergenceThreshold,
		MaxIterations:        e.cfg.MaxIterations,
	})
}
