package core

import (
	"testing"

	"github.com/archstat/archstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snap builds a snapshot from a list of elements for test fixtures.
func snap(revision string, elements ...schema.Element) *schema.Snapshot {
	s := &schema.Snapshot{Revision: revision, Elements: make(map[string]schema.Element, len(elements))}
	for _, el := range elements {
		s.Elements[el.ID] = el
	}
	return s
}

// TestDiffIdenticalSnapshots ensures a snapshot compared to itself yields
// only unchanged classifications.
func TestDiffIdenticalSnapshots(t *testing.T) {
	s := snap("v1",
		schema.Element{ID: "function/parse", Type: "function", Attributes: map[string]any{"owner": "alice"}},
		schema.Element{ID: "component/core", Type: "component", Relations: map[string][]string{"exposes": {"interface/api"}}},
	)

	diff := Diff(s, s, DiffOptions{})

	assert.Len(t, diff.Changes, 2)
	for id, change := range diff.Changes {
		assert.Equal(t, schema.UnchangedChange, change.Kind, "element %s", id)
		assert.Empty(t, change.Fields)
	}
	summary := diff.Summary()
	assert.Equal(t, schema.DiffSummary{Unchanged: 2}, summary)
}

// TestDiffDisjointSnapshots ensures disjoint snapshots classify everything
// as added or removed.
func TestDiffDisjointSnapshots(t *testing.T) {
	base := snap("v1", schema.Element{ID: "function/old", Type: "function"})
	target := snap("v2", schema.Element{ID: "function/new", Type: "function"})

	diff := Diff(base, target, DiffOptions{})

	require.Len(t, diff.Changes, 2)
	assert.Equal(t, schema.RemovedChange, diff.Changes["function/old"].Kind)
	assert.Equal(t, schema.AddedChange, diff.Changes["function/new"].Kind)
}

// TestDiffSwapSides ensures swapping baseline and current swaps added and
// removed classifications.
func TestDiffSwapSides(t *testing.T) {
	base := snap("v1", schema.Element{ID: "a", Type: "component"})
	target := snap("v2", schema.Element{ID: "b", Type: "component"})

	forward := Diff(base, target, DiffOptions{})
	backward := Diff(target, base, DiffOptions{})

	assert.Equal(t, schema.RemovedChange, forward.Changes["a"].Kind)
	assert.Equal(t, schema.AddedChange, forward.Changes["b"].Kind)
	assert.Equal(t, schema.AddedChange, backward.Changes["a"].Kind)
	assert.Equal(t, schema.RemovedChange, backward.Changes["b"].Kind)
}

// TestDiffModifiedFields covers the field-level classification of
// modifications, including retyping and relation changes.
func TestDiffModifiedFields(t *testing.T) {
	tests := []struct {
		name     string
		before   schema.Element
		after    schema.Element
		opts     DiffOptions
		kind     schema.ChangeKind
		fields   []string
	}{
		{
			name:   "changed attribute",
			before: schema.Element{ID: "x", Type: "function", Attributes: map[string]any{"owner": "alice"}},
			after:  schema.Element{ID: "x", Type: "function", Attributes: map[string]any{"owner": "bob"}},
			kind:   schema.ModifiedChange,
			fields: []string{"owner"},
		},
		{
			name:   "added and removed attributes",
			before: schema.Element{ID: "x", Type: "function", Attributes: map[string]any{"owner": "alice"}},
			after:  schema.Element{ID: "x", Type: "function", Attributes: map[string]any{"criticality": "high"}},
			kind:   schema.ModifiedChange,
			fields: []string{"criticality", "owner"},
		},
		{
			name:   "retyping is a modified type field",
			before: schema.Element{ID: "x", Type: "function"},
			after:  schema.Element{ID: "x", Type: "component"},
			kind:   schema.ModifiedChange,
			fields: []string{"type"},
		},
		{
			name:   "relation target changed",
			before: schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"allocated_to": {"component/a"}}},
			after:  schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"allocated_to": {"component/b"}}},
			kind:   schema.ModifiedChange,
			fields: []string{"allocated_to"},
		},
		{
			name:   "relation reordered is a change by default",
			before: schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"r1", "r2"}}},
			after:  schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"r2", "r1"}}},
			kind:   schema.ModifiedChange,
			fields: []string{"traces"},
		},
		{
			name:   "relation reordered ignored when configured",
			before: schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"r1", "r2"}}},
			after:  schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"r2", "r1"}}},
			opts:   DiffOptions{IgnoreRelationOrder: true},
			kind:   schema.UnchangedChange,
		},
		{
			name:   "relation membership change survives order-insensitive mode",
			before: schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"r1", "r2"}}},
			after:  schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"r1", "r3"}}},
			opts:   DiffOptions{IgnoreRelationOrder: true},
			kind:   schema.ModifiedChange,
			fields: []string{"traces"},
		},
		{
			name:   "dangling target compared as a value",
			before: schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"requirement/missing"}}},
			after:  schema.Element{ID: "x", Type: "function", Relations: map[string][]string{"traces": {"requirement/missing"}}},
			kind:   schema.UnchangedChange,
		},
		{
			name:   "nil-valued attribute removed",
			before: schema.Element{ID: "x", Type: "function", Attributes: map[string]any{"owner": nil}},
			after:  schema.Element{ID: "x", Type: "function"},
			kind:   schema.ModifiedChange,
			fields: []string{"owner"},
		},
		{
			name:   "numeric attribute equality is exact",
			before: schema.Element{ID: "x", Type: "requirement", Attributes: map[string]any{"coverage": 0.5}},
			after:  schema.Element{ID: "x", Type: "requirement", Attributes: map[string]any{"coverage": 0.5}},
			kind:   schema.UnchangedChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Diff(snap("v1", tt.before), snap("v2", tt.after), tt.opts)
			require.Contains(t, diff.Changes, "x")
			change := diff.Changes["x"]
			assert.Equal(t, tt.kind, change.Kind)
			assert.Equal(t, tt.fields, change.Fields)
		})
	}
}

// TestDiffNilAttributeSymmetry ensures attribute presence is compared, not
// just values: a key holding nil differs from the key being absent, and the
// classification is the same whichever snapshot is the baseline.
func TestDiffNilAttributeSymmetry(t *testing.T) {
	withNil := snap("v1",
		schema.Element{ID: "function/f", Type: "function", Attributes: map[string]any{"owner": nil}},
	)
	without := snap("v2",
		schema.Element{ID: "function/f", Type: "function"},
	)

	forward := Diff(withNil, without, DiffOptions{})
	backward := Diff(without, withNil, DiffOptions{})

	want := schema.ElementChange{Kind: schema.ModifiedChange, Fields: []string{"owner"}}
	assert.Equal(t, want, forward.Changes["function/f"])
	assert.Equal(t, want, backward.Changes["function/f"])
}

// TestDiffOwnerScenario walks a small concrete scenario end to end.
func TestDiffOwnerScenario(t *testing.T) {
	base := snap("v1",
		schema.Element{ID: "function/f1", Type: "function"},
		schema.Element{ID: "function/f2", Type: "function", Attributes: map[string]any{"owner": "alice"}},
	)
	target := snap("v2",
		schema.Element{ID: "function/f1", Type: "function", Attributes: map[string]any{"owner": "bob"}},
		schema.Element{ID: "function/f3", Type: "function"},
	)

	diff := Diff(base, target, DiffOptions{})

	assert.Equal(t, schema.ModifiedChange, diff.Changes["function/f1"].Kind)
	assert.Equal(t, []string{"owner"}, diff.Changes["function/f1"].Fields)
	assert.Equal(t, schema.RemovedChange, diff.Changes["function/f2"].Kind)
	assert.Equal(t, schema.AddedChange, diff.Changes["function/f3"].Kind)
	assert.Equal(t, schema.DiffSummary{Added: 1, Removed: 1, Modified: 1}, diff.Summary())
}

// TestDiffRestrict ensures restriction keeps only the requested ids and
// drops unchanged entries.
func TestDiffRestrict(t *testing.T) {
	base := snap("v1",
		schema.Element{ID: "a", Type: "function"},
		schema.Element{ID: "b", Type: "function"},
	)
	target := snap("v2",
		schema.Element{ID: "a", Type: "function"},
		schema.Element{ID: "b", Type: "function", Attributes: map[string]any{"owner": "carol"}},
		schema.Element{ID: "c", Type: "function"},
	)

	diff := Diff(base, target, DiffOptions{})

	restricted := diff.Restrict([]string{"a", "b", "c", "never-seen"})
	assert.NotContains(t, restricted, "a", "unchanged entries are dropped")
	assert.Contains(t, restricted, "b")
	assert.Contains(t, restricted, "c")
	assert.NotContains(t, restricted, "never-seen")
}
