package core

import "github.com/archstat/archstat/schema"

// Aggregate combines two metric reports and an element diff into a metric
// delta report. Numeric metrics get delta = current - baseline; categorical
// metrics get an (old, new) transition instead of a number. A metric present
// in only one report keeps the missing side unavailable and is never
// silently dropped. Each metric's entry also carries the element diff
// restricted to its drill-down ids, explaining which element-level changes
// drove the movement.
func Aggregate(base, target *schema.MetricReport, diff *schema.ElementDiff) *schema.MetricDeltaReport {
	report := &schema.MetricDeltaReport{
		BaseRevision:   base.Revision,
		TargetRevision: target.Revision,
		Deltas:         make(map[string]schema.MetricDelta),
	}

	names := make(map[string]bool)
	for name := range base.Results {
		names[name] = true
	}
	for name := range target.Results {
		names[name] = true
	}

	for name := range names {
		baseRes, inBase := base.Results[name]
		targetRes, inTarget := target.Results[name]

		before := schema.Unavailable()
		if inBase {
			before = baseRes.Value
		}
		after := schema.Unavailable()
		if inTarget {
			after = targetRes.Value
		}

		delta := schema.MetricDelta{Before: before, After: after}

		switch {
		case before.IsNumeric() && after.IsNumeric():
			delta.Delta = after.Number - before.Number
			delta.HasDelta = true
		case before.Kind == schema.CategoricalKind && after.Kind == schema.CategoricalKind:
			delta.Transition = &schema.ValueTransition{From: before.Category, To: after.Category}
		}

		// Drill-down ids from both sides: the elements the metric counted
		// before and after are exactly the ones whose changes can explain it.
		drilldown := append(append([]string(nil), baseRes.Elements...), targetRes.Elements...)
		if restricted := diff.Restrict(drilldown); len(restricted) > 0 {
			delta.Changes = restricted
		}

		report.Deltas[name] = delta

		if delta.HasDelta {
			report.Summary.NetDelta += delta.Delta
		}
		if !before.Equal(after) {
			report.Summary.MetricsChanged++
		}
		if !before.IsAvailable() || !after.IsAvailable() {
			report.Summary.MetricsUnavailable++
		}
	}

	report.Summary.Elements = diff.Summary()
	return report
}
