package schema

// ValueTransition is the delta representation for categorical metrics:
// the old and new labels, not a numeric difference.
type ValueTransition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MetricDelta holds one metric's before/after values and their difference.
// Exactly one of Delta (numeric metrics, both sides available) or Transition
// (categorical metrics) is meaningful; a metric present in only one report
// keeps the missing side unavailable and carries neither.
type MetricDelta struct {
	Before     MetricValue              `json:"before"`
	After      MetricValue              `json:"after"`
	Delta      float64                  `json:"delta"`                // After.Number - Before.Number
	HasDelta   bool                     `json:"has_delta"`            // True only when both sides are numeric
	Transition *ValueTransition         `json:"transition,omitempty"` // Categorical change, when both sides are categorical
	Changes    map[string]ElementChange `json:"changes,omitempty"`    // Element diff restricted to the metric's drill-down ids
}

// MetricDeltaReport is the combined view over two metric reports and an
// element diff: per-metric deltas plus an overall summary.
type MetricDeltaReport struct {
	BaseRevision   string                 `json:"base_revision"`
	TargetRevision string                 `json:"target_revision"`
	Deltas         map[string]MetricDelta `json:"deltas"`
	Summary        DeltaSummary           `json:"summary"`
}

// DeltaSummary has high-level counts over a delta report.
type DeltaSummary struct {
	NetDelta           float64     `json:"net_delta"`           // Sum of all numeric metric deltas
	MetricsChanged     int         `json:"metrics_changed"`     // Metrics whose value differs between revisions
	MetricsUnavailable int         `json:"metrics_unavailable"` // Metrics missing or failed on at least one side
	Elements           DiffSummary `json:"elements"`            // Classification counts of the full element diff
}

// Names returns all metric names in the delta report, sorted.
func (r *MetricDeltaReport) Names() []string {
	return sortedKeys(r.Deltas)
}
