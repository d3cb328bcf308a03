package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/prashannakc/PAGE-RANK/corpus"
	pr "github.com/prashannakc/PAGE-RANK/pagerank"
	"github.com/prashannakc/PAGE-RANK/service/pagerank"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

var (
	appName = "pagerank"
	appSha  = "populated-at-link-time"
	logger  *logrus.Entry
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	// Values from an optional .env file act as defaults for the flags
	// below; variables already present in the environment take precedence.
	if err := godotenv.Load(); err != nil && !xerrors.Is(err, os.ErrNotExist) {
		logger.WithField("err", err).Warn("ignoring malformed .env file")
	}

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Usage = "rank the pages of an HTML corpus with PageRank"
	app.ArgsUsage = "CORPUS"
	app.Flags = []cli.Flag{
		cli.Float64Flag{
			Name:   "damping-factor",
			Value:  pr.DefaultDampingFactor,
			EnvVar: "DAMPING_FACTOR",
			Usage:  "The probability that the random surfer follows a link instead of jumping to a random page",
		},
		cli.IntFlag{
			Name:   "samples",
			Value:  pr.DefaultSamples,
			EnvVar: "SAMPLES",
			Usage:  "The number of pages visited by the random surfer when estimating PageRank by sampling",
		},
		cli.Float64Flag{
			Name:   "convergence-threshold",
			Value:  pr.DefaultConvergenceThreshold,
			EnvVar: "CONVERGENCE_THRESHOLD",
			Usage:  "The maximum per-page score change at which the iterative PageRank is considered stable",
		},
		cli.IntFlag{
			Name:   "max-iterations",
			Value:  pr.DefaultMaxIterations,
			EnvVar: "MAX_ITERATIONS",
			Usage:  "The maximum number of rounds of the iterative PageRank",
		},
		cli.Int64Flag{
			Name:   "seed",
			EnvVar: "SEED",
			Usage:  "The seed for the random surfer (0 selects a time-based seed)",
		},
		cli.StringFlag{
			Name:   "metrics-file",
			EnvVar: "METRICS_FILE",
			Usage:  "If set, write the run metrics to this file in the Prometheus text format",
		},
		cli.StringFlag{
			Name:   "log-level",
			Value:  "info",
			EnvVar: "LOG_LEVEL",
			Usage:  "The log level (debug, info, warn, error)",
		},
	}
	app.Action = runMain
	return app
}

func runMain(appCtx *cli.Context) error {
	if appCtx.NArg() != 1 {
		return xerrors.Errorf("usage: %s [options] %s", appName, appCtx.App.ArgsUsage)
	}

	// The flags carry their own defaults; a zero here was set explicitly
	// and must not fall back to the estimator defaults.
	if err := validateEstimatorFlags(appCtx); err != nil {
		return err
	}

	lvl, err := logrus.ParseLevel(appCtx.String("log-level"))
	if err != nil {
		return err
	}
	logger.Logger.SetLevel(lvl)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Start signal watcher
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			logger.WithField("signal", s.String()).Infof("shutting down due to signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	corpusDir := appCtx.Args().First()
	loader, err := corpus.NewLoader(corpus.Config{
		FS:     os.DirFS(corpusDir),
		Logger: logger.WithField("corpus", corpusDir),
	})
	if err != nil {
		return err
	}

	estimatorCfg := pr.Config{
		DampingFactor:        appCtx.Float64("damping-factor"),
		Samples:              appCtx.Int("samples"),
		ConvergenceThreshold: appCtx.Float64("convergence-threshold"),
		MaxIterations:        appCtx.Int("max-iterations"),
	}
	if seed := appCtx.Int64("seed"); seed != 0 {
		estimatorCfg.RandSource = rand.New(rand.NewSource(seed))
	}

	registry := prometheus.NewRegistry()
	svc, err := pagerank.NewService(pagerank.Config{
		GraphLoader: loader,
		Estimator:   estimatorCfg,
		Registerer:  registry,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	rep, err := svc.Rank(ctx)
	if err != nil {
		return err
	}

	printRanks(appCtx.App.Writer, fmt.Sprintf("PageRank Results from Sampling (n = %d)", rep.Samples), rep.SampleRanks)
	printRanks(appCtx.App.Writer, "PageRank Results from Iteration", rep.Iteration.Ranks)

	if metricsFile := appCtx.String("metrics-file"); metricsFile != "" {
		if err = prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			return xerrors.Errorf("write metrics: %w", err)
		}
		logger.WithField("path", metricsFile).Debug("wrote metrics")
	}
	return nil
}

func validateEstimatorFlags(appCtx *cli.Context) error {
	var err error
	if d := appCtx.Float64("damping-factor"); !(d > 0 && d < 1) {
		err = multierror.Append(err, xerrors.Errorf("damping-factor must be in the range (0, 1); got %v", d))
	}
	if n := appCtx.Int("samples"); n <= 0 {
		err = multierror.Append(err, xerrors.Errorf("samples must be a positive integer; got %d", n))
	}
	if t := appCtx.Float64("convergence-threshold"); !(t > 0 && t < 1) {
		err = multierror.Append(err, xerrors.Errorf("convergence-threshold must be in the range (0, 1); got %v", t))
	}
	if n := appCtx.Int("max-iterations"); n <= 0 {
		err = multierror.Append(err, xerrors.Errorf("max-iterations must be a positive integer; got %d", n))
	}
	return err
}

// printRanks writes a title followed by one "  id: rank" line per page,
// ordered by page name.
func printRanks(w io.Writer, title string, ranks pr.Ranks) {
	fmt.Fprintln(w, title)
	for _, score := range ranks.Sorted() {
		fmt.Fprintf(w, "  %s: %.4f\n", score.ID, score.Rank)
	}
}
