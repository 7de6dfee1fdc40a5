// Package schema has the data model and shared types for all parts of archstat.
package schema

import "sort"

// Element is a single modeled thing inside a snapshot: a component, function,
// requirement, or any other element kind the modeling tool produces.
// The ID is the stable identity used for diffing across revisions; it must
// survive renames and retyping as long as the modeled thing itself survives.
type Element struct {
	ID         string              `json:"id"`                   // Stable identifier, unique within a snapshot
	Type       string              `json:"type"`                 // Element kind tag (e.g. "function", "requirement")
	Attributes map[string]any      `json:"attributes,omitempty"` // Scalar attribute values keyed by name
	Relations  map[string][]string `json:"relations,omitempty"`  // Ordered target id sequences keyed by relation name
}

// Snapshot is an immutable point-in-time view of a model at one revision.
// Nothing in the core mutates a snapshot after construction.
type Snapshot struct {
	Revision string             `json:"revision"` // Label or commit-like identifier
	Elements map[string]Element `json:"elements"` // Elements keyed by stable id
}

// IDs returns all element ids in the snapshot, sorted for determinism.
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.Elements))
	for id := range s.Elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OfType returns all elements with the given type tag, sorted by id.
func (s *Snapshot) OfType(typeTag string) []Element {
	var out []Element
	for _, id := range s.IDs() {
		if el := s.Elements[id]; el.Type == typeTag {
			out = append(out, el)
		}
	}
	return out
}

// Resolves reports whether the given id refers to an element present in the
// snapshot. Relation targets that do not resolve are dangling; they are kept
// and compared as values, never treated as structural errors.
func (s *Snapshot) Resolves(id string) bool {
	_, ok := s.Elements[id]
	return ok
}

// DanglingTargets returns, per element id, the relation targets that do not
// resolve inside the snapshot. Elements without dangling targets are omitted.
func (s *Snapshot) DanglingTargets() map[string][]string {
	dangling := make(map[string][]string)
	for _, id := range s.IDs() {
		el := s.Elements[id]
		var missing []string
		for _, rel := range sortedKeys(el.Relations) {
			for _, target := range el.Relations[rel] {
				if !s.Resolves(target) {
					missing = append(missing, target)
				}
			}
		}
		if len(missing) > 0 {
			dangling[id] = missing
		}
	}
	return dangling
}

// sortedKeys returns the map keys in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
