package xab

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector receives engine events. Implementations must be cheap; they run
// inside every round.
type Collector interface {
	ObserveRound(reward float64)
	ObserveRefresh()
	ObserveExpansion(depth int)
	ObserveTree(nodes, depth int)
}

type noCollector struct{}

// NewNoCollector returns a Collector that drops every event.
func NewNoCollector() Collector { return noCollector{} }

func (noCollector) ObserveRound(float64) {}
func (noCollector) ObserveRefresh()      {}
func (noCollector) ObserveExpansion(int) {}
func (noCollector) ObserveTree(int, int) {}

// PrometheusCollector exports engine events as Prometheus metrics.
type PrometheusCollector struct {
	rounds     prometheus.Counter
	refreshes  prometheus.Counter
	expansions prometheus.Counter
	rewards    prometheus.Histogram
	nodes      prometheus.Gauge
	depth      prometheus.Gauge
}

// NewPrometheusCollector creates the metrics under namespace and registers
// them on reg.
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	collector, err := NewPrometheusCollector(reg, "xab")
//	engine, err := NewHCT(config, domain, NewBinaryPartition, WithCollector(collector))
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Rounds completed by the engine.",
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Full confidence bound refreshes (power of two rounds).",
		}),
		expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expansions_total",
			Help:      "Cells split into two children.",
		}),
		rewards: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reward",
			Help:      "Observed rewards.",
			Buckets:   prometheus.LinearBuckets(-1, 0.25, 9),
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_nodes",
			Help:      "Cells in the partition tree.",
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_depth",
			Help:      "Depth of the deepest cell.",
		}),
	}

	for _, m := range []prometheus.Collector{c.rounds, c.refreshes, c.expansions, c.rewards, c.nodes, c.depth} {
		if err := reg.Register(m); err != nil {
			return nil, errors.Wrap(err, "register engine metrics")
		}
	}

	return c, nil
}

func (c *PrometheusCollector) ObserveRound(reward float64) {
	c.rounds.Inc()
	c.rewards.Observe(reward)
}

func (c *PrometheusCollector) ObserveRefresh()      { c.refreshes.Inc() }
func (c *PrometheusCollector) ObserveExpansion(int) { c.expansions.Inc() }

func (c *PrometheusCollector) ObserveTree(nodes, depth int) {
	c.nodes.Set(float64(nodes))
	c.depth.Set(float64(depth))
}
