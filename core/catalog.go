package core

import (
	"sort"

	"github.com/archstat/archstat/schema"
)

// ComputeFunc is a pure metric computation: deterministic, side-effect-free,
// depending on nothing but the given snapshot. It returns the metric value
// and, optionally, the ids of the elements contributing to it (drill-down).
type ComputeFunc func(snapshot *schema.Snapshot) (schema.MetricValue, []string, error)

// Metric is a named metric definition in the catalog.
type Metric struct {
	Name        string
	Description string
	Compute     ComputeFunc
}

// Catalog is a registry of named metric definitions. Names are unique;
// registering a duplicate fails with schema.DuplicateMetricError.
type Catalog struct {
	metrics map[string]Metric
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{metrics: make(map[string]Metric)}
}

// Register adds a metric definition to the catalog.
func (c *Catalog) Register(m Metric) error {
	if _, exists := c.metrics[m.Name]; exists {
		return &schema.DuplicateMetricError{Name: m.Name}
	}
	c.metrics[m.Name] = m
	return nil
}

// MustRegister adds a metric definition and panics on duplicates. Catalog
// misconfiguration is a programming error, caught at build time.
func (c *Catalog) MustRegister(m Metric) {
	if err := c.Register(m); err != nil {
		panic(err)
	}
}

// Get returns the metric definition registered under the given name.
func (c *Catalog) Get(name string) (Metric, bool) {
	m, ok := c.metrics[name]
	return m, ok
}

// Names returns all registered metric names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.metrics))
	for name := range c.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered metrics.
func (c *Catalog) Len() int {
	return len(c.metrics)
}
