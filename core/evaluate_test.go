package core

import (
	"errors"
	"testing"

	"github.com/archstat/archstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluateFailureIsolation ensures one broken metric never hides the
// others and never produces a fabricated zero.
func TestEvaluateFailureIsolation(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(Metric{
		Name: "works",
		Compute: func(s *schema.Snapshot) (schema.MetricValue, []string, error) {
			return schema.Numeric(float64(len(s.Elements))), nil, nil
		},
	})
	c.MustRegister(Metric{
		Name: "errors",
		Compute: func(_ *schema.Snapshot) (schema.MetricValue, []string, error) {
			return schema.MetricValue{}, nil, errors.New("boom")
		},
	})
	c.MustRegister(Metric{
		Name: "panics",
		Compute: func(_ *schema.Snapshot) (schema.MetricValue, []string, error) {
			panic("unexpected nil")
		},
	})

	s := snap("v1", schema.Element{ID: "a", Type: "component"})
	report := Evaluate(s, c, 4)

	require.Len(t, report.Results, 3)
	assert.Equal(t, "v1", report.Revision)

	ok := report.Results["works"]
	assert.False(t, ok.Failed())
	assert.Equal(t, schema.Numeric(1), ok.Value)

	failed := report.Results["errors"]
	assert.True(t, failed.Failed())
	assert.False(t, failed.Value.IsAvailable())
	assert.Contains(t, failed.Error, "boom")

	panicked := report.Results["panics"]
	assert.True(t, panicked.Failed())
	assert.False(t, panicked.Value.IsAvailable())
	assert.Contains(t, panicked.Error, "panic")

	assert.Equal(t, 2, report.FailureCount())
}

// TestEvaluateDeterministicAcrossWorkers ensures the worker count never
// affects the result.
func TestEvaluateDeterministicAcrossWorkers(t *testing.T) {
	s := snap("v1",
		schema.Element{ID: "component/core", Type: "component"},
		schema.Element{ID: "function/parse", Type: "function", Relations: map[string][]string{"allocated_to": {"component/core"}}},
		schema.Element{ID: "requirement/r1", Type: "requirement", Attributes: map[string]any{"coverage": 0.8}},
	)
	catalog := DefaultCatalog()

	serial := Evaluate(s, catalog, 1)
	parallel := Evaluate(s, catalog, 16)

	assert.Equal(t, serial.Results, parallel.Results)
}

// TestEvaluateDrilldownSorted ensures drill-down ids come back sorted.
func TestEvaluateDrilldownSorted(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(Metric{
		Name: "unsorted",
		Compute: func(_ *schema.Snapshot) (schema.MetricValue, []string, error) {
			return schema.Numeric(3), []string{"c", "a", "b"}, nil
		},
	})

	report := Evaluate(snap("v1"), c, 2)
	assert.Equal(t, []string{"a", "b", "c"}, report.Results["unsorted"].Elements)
}

// TestCatalogDuplicateRegistration ensures duplicate names are rejected.
func TestCatalogDuplicateRegistration(t *testing.T) {
	c := NewCatalog()
	m := Metric{Name: "dup", Compute: func(_ *schema.Snapshot) (schema.MetricValue, []string, error) {
		return schema.Numeric(0), nil, nil
	}}

	require.NoError(t, c.Register(m))
	err := c.Register(m)
	require.Error(t, err)

	var dupErr *schema.DuplicateMetricError
	assert.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dup", dupErr.Name)

	assert.Panics(t, func() { c.MustRegister(m) })
}

// TestCatalogNamesSorted ensures catalog listing is deterministic.
func TestCatalogNamesSorted(t *testing.T) {
	c := NewCatalog()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		c.MustRegister(Metric{Name: name, Compute: func(_ *schema.Snapshot) (schema.MetricValue, []string, error) {
			return schema.Numeric(0), nil, nil
		}})
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.Names())
	assert.Equal(t, 3, c.Len())
}
