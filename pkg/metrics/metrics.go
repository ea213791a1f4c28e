// Package metrics holds the metric names and histogram buckets shared by the
// packages that record cruise metrics.
package metrics

const (
	// Assignments counts assignment attempts, labelled by Result.
	Assignments = "cruise.assignments"
	// LoadDuration records how long a registry load took, in seconds.
	LoadDuration = "cruise.load.duration"
	// Result is the attribute key carrying the outcome of an operation: "ok"
	// or the error kind code.
	Result = "result"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals
