package pagerank

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	pr "github.com/prashannakc/PAGE-RANK/pagerank"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/prashannakc/PAGE-RANK/service/pagerank GraphLoader

// GraphLoader is implemented by objects that can produce the link graph to
// be ranked.
type GraphLoader interface {
	Load(ctx context.Context) (linkgraph.Graph, error)
}

// Config encapsulates the settings for configuring the PageRank ranking
// service.
type Config struct {
	// An API for loading the link graph.
	GraphLoader GraphLoader

	// The settings for the PageRank estimators.
	Estimator pr.Config

	// A clock instance for measuring stage durations. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The registry where the service metrics are registered. If not
	// specified, a private registry will be used instead.
	Registerer prometheus.Registerer

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.GraphLoader == nil {
		err = multierror.Append(err, xerrors.Errorf("graph loader has not been provided"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// Report collects the outcome of a single ranking pass.
type Report struct {
	// A unique identifier for the pass; also attached to its log entries.
	RunID uuid.UUID

	// The number of pages in the ranked graph.
	Pages int

	// The number of samples drawn by the sampling estimator.
	Samples int

	// The scores estimated by sampling.
	SampleRanks pr.Ranks

	// The outcome of the iterative estimator. Iteration.Converged is false
	// if the scores had not stabilized when the iteration ceiling was hit.
	Iteration *pr.IterationResult

	LoadTime    time.Duration
	SampleTime  time.Duration
	IterateTime time.Duration
}

// Service ranks the pages of a link graph with both PageRank estimators.
type Service struct {
	cfg       Config
	estimator *pr.Estimator
	metrics   *metrics
}

// NewService creates a new PageRank ranking service instance with the
// specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("pagerank service: config validation failed: %w", err)
	}

	estimator, err := pr.NewEstimator(cfg.Estimator)
	if err != nil {
		return nil, xerrors.Errorf("pagerank service: %w", err)
	}

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, xerrors.Errorf("pagerank service: register metrics: %w", err)
	}

	return &Service{
		cfg:       cfg,
		estimator: estimator,
		metrics:   m,
	}, nil
}

// Name returns the service name.
func (svc *Service) Name() string { return "PageRank ranker" }

// Rank loads the link graph and scores it with the sampling and the
// iterative estimators. The context is checked between stages; an estimator
// that has started always runs to completion.
//
// Failing to converge is not treated as an error: the best-effort scores are
// reported and the condition is logged and exported as a metric.
func (svc *Service) Rank(ctx context.Context) (*Report, error) {
	var (
		estCfg  = svc.estimator.Config()
		rep     = &Report{RunID: uuid.New(), Samples: estCfg.Samples}
		logger  = svc.cfg.Logger.WithField("run_id", rep.RunID.String())
		startAt = svc.cfg.Clock.Now()
	)
	logger.Info("starting PageRank pass")

	tick := svc.cfg.Clock.Now()
	g, err := svc.cfg.GraphLoader.Load(ctx)
	if err != nil {
		svc.metrics.failures.Inc()
		return nil, xerrors.Errorf("load link graph: %w", err)
	}
	rep.LoadTime = svc.cfg.Clock.Now().Sub(tick)
	rep.Pages = len(g)
	svc.metrics.pages.Set(float64(rep.Pages))
	svc.metrics.stageDuration.WithLabelValues("load").Set(rep.LoadTime.Seconds())

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	tick = svc.cfg.Clock.Now()
	if rep.SampleRanks, err = svc.estimator.Sample(g); err != nil {
		svc.metrics.failures.Inc()
		return nil, xerrors.Errorf("sample PageRank: %w", err)
	}
	rep.SampleTime = svc.cfg.Clock.Now().Sub(tick)
	svc.metrics.samples.Add(float64(rep.Samples))
	svc.metrics.stageDuration.WithLabelValues("sample").Set(rep.SampleTime.Seconds())

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	tick = svc.cfg.Clock.Now()
	rep.Iteration, err = svc.estimator.Iterate(g)
	if err != nil && !xerrors.Is(err, pr.ErrNotConverged) {
		svc.metrics.failures.Inc()
		return nil, xerrors.Errorf("iterate PageRank: %w", err)
	}
	rep.IterateTime = svc.cfg.Clock.Now().Sub(tick)
	svc.metrics.iterations.Set(float64(rep.Iteration.Iterations))
	svc.metrics.stageDuration.WithLabelValues("iterate").Set(rep.IterateTime.Seconds())
	if rep.Iteration.Converged {
		svc.metrics.converged.Set(1)
	} else {
		svc.metrics.converged.Set(0)
		logger.WithFields(logrus.Fields{
			"iterations": rep.Iteration.Iterations,
			"max_delta":  rep.Iteration.MaxDelta,
		}).Warn("PageRank scores did not converge; reporting best-effort values")
	}

	svc.metrics.passes.Inc()

	logger.WithFields(logrus.Fields{
		"pages":           rep.Pages,
		"samples":         rep.Samples,
		"iterations":      rep.Iteration.Iterations,
		"converged":       rep.Iteration.Converged,
		"graph_load_time": rep.LoadTime.String(),
		"sample_time":     rep.SampleTime.String(),
		"iterate_time":    rep.IterateTime.String(),
		"total_pass_time": svc.cfg.Clock.Now().Sub(startAt).String(),
	}).Info("completed PageRank pass")

	return rep, nil
}
