package core

import (
	"sort"

	"github.com/archstat/archstat/schema"
)

// DefaultCatalog builds the built-in metric catalog. The selection mirrors
// the KPIs a systems-engineering dashboard cares about: element counts per
// kind, ownership gaps, requirement coverage, allocation gaps and dangling
// traceability references.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.MustRegister(Metric{
		Name:        "elements_total",
		Description: "Total number of elements in the model",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			ids := s.IDs()
			return schema.Numeric(float64(len(ids))), ids, nil
		},
	})

	for name, kind := range map[string]string{
		"components_total":   schema.ComponentType,
		"functions_total":    schema.FunctionType,
		"requirements_total": schema.RequirementType,
		"interfaces_total":   schema.InterfaceType,
		"capabilities_total": schema.CapabilityType,
	} {
		c.MustRegister(CountOfType(name, kind))
	}

	c.MustRegister(Metric{
		Name:        "functions_without_owner",
		Description: "Functions with no owner attribute set",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			var ids []string
			for _, el := range s.OfType(schema.FunctionType) {
				if owner, ok := el.Attributes["owner"]; !ok || owner == nil || owner == "" {
					ids = append(ids, el.ID)
				}
			}
			return schema.Numeric(float64(len(ids))), ids, nil
		},
	})

	c.MustRegister(Metric{
		Name:        "unallocated_functions",
		Description: "Functions not allocated to any component",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			var ids []string
			for _, el := range s.OfType(schema.FunctionType) {
				if len(el.Relations["allocated_to"]) == 0 {
					ids = append(ids, el.ID)
				}
			}
			return schema.Numeric(float64(len(ids))), ids, nil
		},
	})

	c.MustRegister(Metric{
		Name:        "avg_requirement_coverage",
		Description: "Average coverage ratio over requirements (0 when there are none)",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			var ids []string
			var sum float64
			for _, el := range s.OfType(schema.RequirementType) {
				cov, ok := el.Attributes["coverage"].(float64)
				if !ok {
					continue
				}
				sum += cov
				ids = append(ids, el.ID)
			}
			if len(ids) == 0 {
				// Defined empty value: never a division error.
				return schema.Numeric(0), nil, nil
			}
			return schema.Numeric(sum / float64(len(ids))), ids, nil
		},
	})

	c.MustRegister(Metric{
		Name:        "uncovered_requirements",
		Description: "Requirements not traced by any other element",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			traced := make(map[string]bool)
			for _, el := range s.Elements {
				for _, target := range el.Relations["traces"] {
					traced[target] = true
				}
			}
			var ids []string
			for _, el := range s.OfType(schema.RequirementType) {
				if !traced[el.ID] {
					ids = append(ids, el.ID)
				}
			}
			return schema.Numeric(float64(len(ids))), ids, nil
		},
	})

	c.MustRegister(Metric{
		Name:        "dangling_references",
		Description: "Relation targets that do not resolve inside the snapshot",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			dangling := s.DanglingTargets()
			total := 0
			ids := make([]string, 0, len(dangling))
			for id, missing := range dangling {
				total += len(missing)
				ids = append(ids, id)
			}
			sort.Strings(ids)
			return schema.Numeric(float64(total)), ids, nil
		},
	})

	c.MustRegister(Metric{
		Name:        "requirement_kinds",
		Description: "Number of distinct requirement kind attributes in use",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			kinds := make(map[string]bool)
			var ids []string
			for _, el := range s.OfType(schema.RequirementType) {
				kind, _ := el.Attributes["kind"].(string)
				if kind == "" {
					continue
				}
				if !kinds[kind] {
					kinds[kind] = true
				}
				ids = append(ids, el.ID)
			}
			return schema.Numeric(float64(len(kinds))), ids, nil
		},
	})

	c.MustRegister(Metric{
		Name:        "dominant_requirement_kind",
		Description: "Most frequent requirement kind attribute (n/a when there are no requirements)",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			counts := make(map[string]int)
			byKind := make(map[string][]string)
			for _, el := range s.OfType(schema.RequirementType) {
				kind, _ := el.Attributes["kind"].(string)
				if kind == "" {
					kind = "unset"
				}
				counts[kind]++
				byKind[kind] = append(byKind[kind], el.ID)
			}
			if len(counts) == 0 {
				return schema.Categorical(schema.CategoricalNA), nil, nil
			}
			dominant := ""
			for kind, n := range counts {
				// Ties break lexicographically so evaluation stays deterministic.
				if dominant == "" || n > counts[dominant] || (n == counts[dominant] && kind < dominant) {
					dominant = kind
				}
			}
			return schema.Categorical(dominant), byKind[dominant], nil
		},
	})

	return c
}

// CountOfType builds a count metric over one element kind with the matching
// element ids as drill-down.
func CountOfType(name string, typeTag string) Metric {
	return Metric{
		Name:        name,
		Description: "Total number of " + typeTag + " elements",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			elements := s.OfType(typeTag)
			ids := make([]string, 0, len(elements))
			for _, el := range elements {
				ids = append(ids, el.ID)
			}
			return schema.Numeric(float64(len(ids))), ids, nil
		},
	}
}
