package schema

// ElementChange classifies one element's fate between two revisions.
// For modifications, Fields lists the changed attribute and relation names;
// a type change is recorded as the field "type".
type ElementChange struct {
	Kind   ChangeKind `json:"kind"`
	Fields []string   `json:"fields,omitempty"` // Sorted changed field names, Modified only
}

// ElementDiff maps every element id present in either snapshot to exactly
// one classification.
type ElementDiff struct {
	BaseRevision   string                   `json:"base_revision"`
	TargetRevision string                   `json:"target_revision"`
	Changes        map[string]ElementChange `json:"changes"`
}

// DiffSummary has per-classification counts over a diff.
type DiffSummary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

// Summary counts the diff's classifications.
func (d *ElementDiff) Summary() DiffSummary {
	var s DiffSummary
	for _, c := range d.Changes {
		switch c.Kind {
		case AddedChange:
			s.Added++
		case RemovedChange:
			s.Removed++
		case ModifiedChange:
			s.Modified++
		case UnchangedChange:
			s.Unchanged++
		}
	}
	return s
}

// Restrict returns the subset of the diff covering only the given ids,
// dropping unchanged entries. This is what ties a metric's delta to the
// element-level changes that plausibly caused it.
func (d *ElementDiff) Restrict(ids []string) map[string]ElementChange {
	restricted := make(map[string]ElementChange)
	for _, id := range ids {
		c, ok := d.Changes[id]
		if !ok || c.Kind == UnchangedChange {
			continue
		}
		restricted[id] = c
	}
	return restricted
}

// IDs returns all element ids covered by the diff, sorted.
func (d *ElementDiff) IDs() []string {
	return sortedKeys(d.Changes)
}
