package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsRegistry creates metrics and registers them in one step.
type metricsRegistry struct {
	R prometheus.Registerer
}

func (mr metricsRegistry) NewCounter(c prometheus.CounterOpts) prometheus.Counter {
	pm := prometheus.NewCounter(c)
	mr.R.MustRegister(pm)
	return pm
}

func (mr metricsRegistry) NewCounterVec(c prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	pm := prometheus.NewCounterVec(c, labels)
	mr.R.MustRegister(pm)
	return pm
}

func (mr metricsRegistry) NewGauge(g prometheus.GaugeOpts) prometheus.Gauge {
	pm := prometheus.NewGauge(g)
	mr.R.MustRegister(pm)
	return pm
}

func (mr metricsRegistry) NewHistogram(h prometheus.HistogramOpts) prometheus.Histogram {
	pm := prometheus.NewHistogram(h)
	mr.R.MustRegister(pm)
	return pm
}

type metrics struct {
	requests      *prometheus.CounterVec
	parses        prometheus.Counter
	parseDuration prometheus.Histogram
	problems      prometheus.Counter
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	sessions      prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) *metrics {
	mr := metricsRegistry{R: r}
	return &metrics{
		requests: mr.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "requests_total",
			Help:      "Number of requests served, by operation",
		}, []string{"op"}),
		parses: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "parses_total",
			Help:      "Number of queries parsed (cache misses)",
		}),
		parseDuration: mr.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hermes",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing a query",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		problems: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "problems_total",
			Help:      "Number of problems reported by tolerant parses",
		}),
		cacheHits: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "cache_hits_total",
			Help:      "Number of parse requests answered from the tree cache",
		}),
		cacheMisses: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "cache_misses_total",
			Help:      "Number of parse requests not found in the tree cache",
		}),
		sessions: mr.NewGauge(prometheus.GaugeOpts{
			Namespace: "hermes",
			Name:      "assist_sessions",
			Help:      "Number of open content assist websocket sessions",
		}),
	}
}
