package schema

import "sort"

// MetricResult is one catalog entry's outcome against a snapshot.
type MetricResult struct {
	Value    MetricValue `json:"value"`              // Computed value, or the unavailable variant on failure
	Elements []string    `json:"elements,omitempty"` // Drill-down: ids of elements contributing to the value
	Error    string      `json:"error,omitempty"`    // Set when the metric's compute failed; isolates the failure
}

// Failed reports whether the metric's computation failed.
func (r MetricResult) Failed() bool { return r.Error != "" }

// MetricReport is the full evaluation of a catalog against one snapshot.
type MetricReport struct {
	Revision string                  `json:"revision"`
	Results  map[string]MetricResult `json:"results"`
}

// Names returns all metric names in the report, sorted for stable output.
func (r *MetricReport) Names() []string {
	names := make([]string, 0, len(r.Results))
	for name := range r.Results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FailureCount returns how many metrics failed to compute.
func (r *MetricReport) FailureCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}
