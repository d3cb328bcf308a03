package pagerank

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	passes        prometheus.Counter
	failures      prometheus.Counter
	samples       prometheus.Counter
	pages         prometheus.Gauge
	iterations    prometheus.Gauge
	converged     prometheus.Gauge
	stageDuration *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagerank_passes_total",
			Help: "The total number of completed ranking passes",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagerank_pass_failures_total",
			Help: "The total number of ranking passes that failed",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagerank_samples_total",
			Help: "The total number of pages visited by the random surfer",
		}),
		pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagerank_graph_pages",
			Help: "The number of pages in the last ranked link graph",
		}),
		iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagerank_iterations",
			Help: "The number of rounds run by the last iterative pass",
		}),
		converged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagerank_converged",
			Help: "Set to 1 if the last iterative pass converged, 0 otherwise",
		}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pagerank_stage_duration_seconds",
			Help: "The time spent in each stage of the last ranking pass",
		}, []string{"stage"}),
	}

	for _, c := range []prometheus.Collector{
		m.passes, m.failures, m.samples, m.pages, m.iterations, m.converged, m.stageDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
