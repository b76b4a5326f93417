// Package metrics defines prometheus metric types and provides convenience
// methods to add accounting to a single code-generation run.
//
// When defining new operations or metrics, these are helpful values to track:
//  - things coming into or going out of the system: specs loaded, artifacts written.
//  - the success or error status of any of the above.
//  - the distribution of processing latency.
package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationTimeHistogram tracks the wall-clock time spent building the
	// IR, resolving one family, and rendering a single artifact, by mode.
	GenerationTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nlgen_generation_time_histogram",
			Help:    "time to build, resolve, and render one artifact (seconds)",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		},
		[]string{"mode"})

	// OperationsCount tracks how many operations a resolved family carries,
	// per family name, so regressions in spec complexity are visible.
	OperationsCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nlgen_family_operations_count",
			Help: "number of operations in the most recently resolved family",
		},
		[]string{"family"})

	// AttrSetCount tracks the number of resolved attribute sets, including
	// synthesized sub-message variant sets.
	AttrSetCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nlgen_family_attr_set_count",
			Help: "number of attribute sets in the most recently resolved family",
		},
		[]string{"family"})

	// ResolveErrors counts failures by the stage that failed:
	// "license-mismatch", "build" (ir.BuildFamily) or "resolve"
	// (Family.Resolve).
	ResolveErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlgen_resolve_errors_total",
			Help: "count of family resolution failures by error kind",
		},
		[]string{"kind"})

	// ArtifactsWritten counts successful artifact writes by mode.
	ArtifactsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlgen_artifacts_written_total",
			Help: "count of artifacts successfully written by mode",
		},
		[]string{"mode"})

	// SkippedUnchanged counts --cmp-out runs that left an existing file
	// untouched because the rendered bytes were identical.
	SkippedUnchanged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlgen_artifacts_skipped_unchanged_total",
			Help: "count of artifact writes skipped because content was unchanged under --cmp-out",
		})
)

// init() prints a log message to let the user know that the package has been
// loaded and the metrics registered. The metrics are auto-registered, which
// means they are registered as soon as this package is loaded, and the exact
// time this occurs (and whether this occurs at all in a given context) can be
// opaque.
func init() {
	log.Println("Prometheus metrics in nlgen.metrics are registered.")
}
