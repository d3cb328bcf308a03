package pagerank

import (
	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

const (
	// DefaultDampingFactor is used when Config.DampingFactor is not set.
	DefaultDampingFactor = 0.85

	// DefaultSamples is used when Config.Samples is not set.
	DefaultSamples = 10000
)

// Config encapsulates the required parameters for creating a new PageRank
// estimator instance.
type Config struct {
	// DampingFactor is the probability that a random surfer will click on
	// one of the outgoing links on the page they are currently visiting
	// instead of visiting (teleporting to) a random page in the graph.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// Samples is the number of pages visited by the random surfer when
	// estimating scores by sampling.
	//
	// If not specified, a default value of 10000 will be used instead.
	Samples int

	// At the end of each round of the iterative algorithm, the maximum
	// absolute score change across all pages is compared against
	// ConvergenceThreshold. The algorithm stops once the change drops
	// below it.
	//
	// If not specified, a default value of 0.001 will be used instead.
	ConvergenceThreshold float64

	// MaxIterations caps the number of rounds of the iterative algorithm.
	//
	// If not specified, a default value of 1000 will be used instead.
	MaxIterations int

	// The source of randomness for the sampling estimator. If not
	// specified, a time-seeded generator is created for each run.
	RandSource RandSource
}

// validate checks whether the PageRank estimator configuration is valid and
// sets the default values where required.
func (c *Config) validate() error {
	var err error
	if c.DampingFactor < 0 || c.DampingFactor >= 1.0 {
		err = multierror.Append(err, xerrors.New("DampingFactor must be in the range (0, 1)"))
	} else if c.DampingFactor == 0 {
		c.DampingFactor = DefaultDampingFactor
	}

	if c.Samples < 0 {
		err = multierror.Append(err, xerrors.New("Samples must be a positive integer"))
	} else if c.Samples == 0 {
		c.Samples = DefaultSamples
	}

	if c.ConvergenceThreshold < 0 || c.ConvergenceThreshold >= 1.0 {
		err = multierror.Append(err, xerrors.New("ConvergenceThreshold must be in the range (0, 1)"))
	} else if c.ConvergenceThreshold == 0 {
		c.ConvergenceThreshold = DefaultConvergenceThreshold
	}

	if c.MaxIterations < 0 {
		err = multierror.Append(err, xerrors.New("MaxIterations must be a positive integer"))
	} else if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}

	return err
}
