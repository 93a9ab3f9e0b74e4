// Package metrics exposes Prometheus instrumentation for the build and
// query paths of the Elias-Fano sets, sparse indexes, and webgraph readers
// this module implements: construction throughput, per-operation latency,
// and index-size overhead.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(setsBuilt)
	prometheus.MustRegister(elementsIndexed)
	prometheus.MustRegister(buildDuration)
	prometheus.MustRegister(queryLatency)
	prometheus.MustRegister(sparseIndexQuantumBits)
	prometheus.MustRegister(graphSuccessorsDecoded)
	prometheus.MustRegister(graphReferenceDepth)
}

var setsBuilt = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sux_sets_built",
		Help: "Elias-Fano sets constructed, by builder kind",
	},
	[]string{"builder"},
)

var elementsIndexed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sux_elements_indexed",
		Help: "Elements pushed through a builder, by builder kind",
	},
	[]string{"builder"},
)

var buildDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "sux_build_duration_seconds",
		Help:    "Wall time spent building a set or index, by builder kind",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"builder"},
)

var queryLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "sux_query_duration_seconds",
		Help:    "Latency of a single rank, select, or successor query",
		Buckets: prometheus.ExponentialBuckets(1e-8, 4, 10),
	},
	[]string{"op"},
)

var sparseIndexQuantumBits = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "sux_sparse_index_quantum_bits",
		Help: "Configured sample quantum (log2) of a sparse index, by index name",
	},
	[]string{"index"},
)

var graphSuccessorsDecoded = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "sux_graph_successors_decoded",
		Help: "Total successor-list decode calls across all graphs",
	},
)

var graphReferenceDepth = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "sux_graph_reference_depth",
		Help:    "Back-reference chain depth resolved per successor decode",
		Buckets: prometheus.LinearBuckets(0, 1, 10),
	},
)

// ObserveBuild records one completed build of kind builder, reporting both
// throughput and a wall-clock histogram sample.
func ObserveBuild(builder string, elements uint64, d time.Duration) {
	setsBuilt.WithLabelValues(builder).Inc()
	elementsIndexed.WithLabelValues(builder).Add(float64(elements))
	buildDuration.WithLabelValues(builder).Observe(d.Seconds())
}

// ObserveQuery records the latency of a single rank/select/successor
// lookup under op.
func ObserveQuery(op string, d time.Duration) {
	queryLatency.WithLabelValues(op).Observe(d.Seconds())
}

// SetSparseIndexQuantum records the sample quantum an index named name was
// built with, so overhead can be correlated against quantum choice.
func SetSparseIndexQuantum(name string, quantumLog2 uint) {
	sparseIndexQuantumBits.WithLabelValues(name).Set(float64(quantumLog2))
}

// ObserveGraphDecode records one successor-list decode and the reference
// depth it had to resolve to produce it.
func ObserveGraphDecode(depth int) {
	graphSuccessorsDecoded.Inc()
	graphReferenceDepth.Observe(float64(depth))
}
