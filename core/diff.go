package core

import (
	"reflect"
	"sort"

	"github.com/archstat/archstat/schema"
)

// DiffOptions controls how the differ compares elements.
type DiffOptions struct {
	// IgnoreRelationOrder treats a reordered relation sequence with identical
	// membership as unchanged. The default is order-sensitive: relation order
	// can carry traceability semantics, so reordering counts as a change.
	IgnoreRelationOrder bool
}

// Diff computes the element diff between a baseline and a current snapshot.
// Every id present in either snapshot appears exactly once: ids only in the
// current snapshot are Added, ids only in the baseline are Removed, ids in
// both are Modified when at least one attribute or relation differs and
// Unchanged otherwise. A changed type tag is the modified field "type";
// identity is the id, so retyping is never a remove plus add.
func Diff(baseline, current *schema.Snapshot, opts DiffOptions) *schema.ElementDiff {
	diff := &schema.ElementDiff{
		BaseRevision:   baseline.Revision,
		TargetRevision: current.Revision,
		Changes:        make(map[string]schema.ElementChange, max(len(baseline.Elements), len(current.Elements))),
	}

	for id := range baseline.Elements {
		if _, inCurrent := current.Elements[id]; !inCurrent {
			diff.Changes[id] = schema.ElementChange{Kind: schema.RemovedChange}
		}
	}
	for id, after := range current.Elements {
		before, inBaseline := baseline.Elements[id]
		if !inBaseline {
			diff.Changes[id] = schema.ElementChange{Kind: schema.AddedChange}
			continue
		}
		fields := changedFields(before, after, opts)
		if len(fields) == 0 {
			diff.Changes[id] = schema.ElementChange{Kind: schema.UnchangedChange}
		} else {
			diff.Changes[id] = schema.ElementChange{Kind: schema.ModifiedChange, Fields: fields}
		}
	}

	return diff
}

// changedFields compares two versions of the same element and returns the
// sorted set of differing field names.
func changedFields(before, after schema.Element, opts DiffOptions) []string {
	fieldSet := make(map[string]bool)

	if before.Type != after.Type {
		fieldSet[schema.TypeField] = true
	}

	// Presence is part of the comparison: a key holding nil is not the same
	// as the key being absent, so removal of a nil-valued attribute still
	// counts as a change.
	for key, beforeVal := range before.Attributes {
		afterVal, present := after.Attributes[key]
		if !present || !attrEqual(beforeVal, afterVal) {
			fieldSet[key] = true
		}
	}
	for key := range after.Attributes {
		if _, seen := before.Attributes[key]; !seen {
			fieldSet[key] = true
		}
	}

	for rel := range before.Relations {
		if !relationEqual(before.Relations[rel], after.Relations[rel], opts) {
			fieldSet[rel] = true
		}
	}
	for rel := range after.Relations {
		if _, seen := before.Relations[rel]; !seen && len(after.Relations[rel]) > 0 {
			fieldSet[rel] = true
		}
	}

	if len(fieldSet) == 0 {
		return nil
	}
	fields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// attrEqual compares two scalar attribute values. The loader normalizes
// numbers to float64, so deep equality is exact here; it also stays safe if
// a hand-built snapshot carries an unexpected composite value.
func attrEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// relationEqual compares two relation target sequences. Positional by
// default; set comparison when order is configured to be ignored. Dangling
// targets are just values here, compared like any other.
func relationEqual(a, b []string, opts DiffOptions) bool {
	if len(a) != len(b) {
		return false
	}
	if opts.IgnoreRelationOrder {
		a = append([]string(nil), a...)
		b = append([]string(nil), b...)
		sort.Strings(a)
		sort.Strings(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
