package schema

import "fmt"

// SnapshotLoadError means the model location or revision could not be
// resolved. Fatal for that snapshot; the core never retries.
type SnapshotLoadError struct {
	Locator  string
	Revision string
	Err      error
}

func (e *SnapshotLoadError) Error() string {
	if e.Revision == "" {
		return fmt.Sprintf("cannot load model %q: %v", e.Locator, e.Err)
	}
	return fmt.Sprintf("cannot load model %q at revision %q: %v", e.Locator, e.Revision, e.Err)
}

func (e *SnapshotLoadError) Unwrap() error { return e.Err }

// SchemaMismatchError means the loaded data does not conform to the expected
// element/attribute/relation shape. Fatal; no partial snapshot is produced.
type SchemaMismatchError struct {
	Locator string
	Detail  string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("model %q does not match the expected shape: %s", e.Locator, e.Detail)
}

// DuplicateMetricError means two metric definitions were registered under
// the same name. Catalog misconfiguration, fatal at build time.
type DuplicateMetricError struct {
	Name string
}

func (e *DuplicateMetricError) Error() string {
	return fmt.Sprintf("metric %q is already registered", e.Name)
}

// MetricComputationError means a single metric's compute failed against a
// snapshot. Isolated per metric: the report carries it alongside the
// successfully computed entries instead of aborting the evaluation.
type MetricComputationError struct {
	Metric string
	Err    error
}

func (e *MetricComputationError) Error() string {
	return fmt.Sprintf("metric %q failed: %v", e.Metric, e.Err)
}

func (e *MetricComputationError) Unwrap() error { return e.Err }
