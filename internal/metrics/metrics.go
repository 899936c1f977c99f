// Package metrics exposes pipeline counters to Prometheus and samples
// process resource usage
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "osmclean"

var (
	// ElementsRead counts elements decoded from the input, by element type
	ElementsRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_read_total",
			Help:      "Total number of elements read from the input",
		},
		[]string{"element_type"},
	)

	// ElementsDropped counts elements rejected by the inclusion filter
	ElementsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_dropped_total",
			Help:      "Total number of elements dropped by the inclusion filter",
		},
		[]string{"reason"},
	)

	// ElementsInvalid counts elements skipped as invalid records
	ElementsInvalid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_invalid_total",
			Help:      "Total number of invalid elements skipped",
		},
		[]string{"element_type"},
	)

	// ElementsWritten counts elements or documents handed to the output
	ElementsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_written_total",
			Help:      "Total number of elements written to the output",
		},
		[]string{"output"},
	)

	// RuleRewrites counts tag values changed by each normalization rule
	RuleRewrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_rewrites_total",
			Help:      "Total number of tag values changed by a normalization rule",
		},
		[]string{"rule"},
	)
)

// ObserveRewrite records one rewrite by rule. Its signature matches
// normalize.Observer.
func ObserveRewrite(rule string) {
	RuleRewrites.WithLabelValues(rule).Inc()
}
