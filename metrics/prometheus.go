package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/linkcore"
)

// PrometheusCollector implements linkcore.MetricsCollector by recording
// every match and grouping-edge operation into Prometheus counters and
// histograms.
type PrometheusCollector struct {
	matchTotal      *prometheus.CounterVec
	matchDuration   prometheus.Histogram
	matchResults    prometheus.Histogram
	addEdgeTotal    *prometheus.CounterVec
	mergeTotal      prometheus.Counter
	addEdgeDuration prometheus.Histogram
}

// NewPrometheusCollector creates a PrometheusCollector and registers
// its metrics with reg. Pass prometheus.DefaultRegisterer to use the
// global registry.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		matchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "linkcore",
			Subsystem: "match",
			Name:      "total",
			Help:      "Total number of Match calls, partitioned by outcome.",
		}, []string{"outcome"}),
		matchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "linkcore",
			Subsystem: "match",
			Name:      "duration_seconds",
			Help:      "Match call latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		matchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "linkcore",
			Subsystem: "match",
			Name:      "results",
			Help:      "Number of results returned per Match call.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		addEdgeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "linkcore",
			Subsystem: "grouping",
			Name:      "edges_total",
			Help:      "Total number of AddEdge calls, partitioned by outcome.",
		}, []string{"outcome"}),
		mergeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "linkcore",
			Subsystem: "grouping",
			Name:      "merges_total",
			Help:      "Total number of group merges triggered.",
		}),
		addEdgeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "linkcore",
			Subsystem: "grouping",
			Name:      "edge_duration_seconds",
			Help:      "AddEdge call latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.matchTotal, c.matchDuration, c.matchResults, c.addEdgeTotal, c.mergeTotal, c.addEdgeDuration)
	return c
}

var _ linkcore.MetricsCollector = (*PrometheusCollector)(nil)

// RecordMatch implements linkcore.MetricsCollector.
func (c *PrometheusCollector) RecordMatch(k, results int, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.matchTotal.WithLabelValues(outcome).Inc()
	c.matchDuration.Observe(duration.Seconds())
	c.matchResults.Observe(float64(results))
}

// RecordAddEdge implements linkcore.MetricsCollector.
func (c *PrometheusCollector) RecordAddEdge(merged bool, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.addEdgeTotal.WithLabelValues(outcome).Inc()
	if merged {
		c.mergeTotal.Inc()
	}
	c.addEdgeDuration.Observe(duration.Seconds())
}
