package schema

// Custom string types for type safety.
type (
	// ChangeKind classifies how an element changed between two revisions.
	ChangeKind string

	// ValueKind distinguishes the variants of a MetricValue.
	ValueKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// HistoryBackend represents the database backend for report history.
	HistoryBackend string
)

// Element change classifications. Every id present in either snapshot of a
// diff gets exactly one of these.
const (
	AddedChange     ChangeKind = "added"
	RemovedChange   ChangeKind = "removed"
	ModifiedChange  ChangeKind = "modified"
	UnchangedChange ChangeKind = "unchanged"
)

// Metric value variants.
const (
	NumericKind     ValueKind = "numeric"
	CategoricalKind ValueKind = "categorical"
	UnavailableKind ValueKind = "unavailable"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     HistoryBackend = "sqlite"
	MySQLBackend      HistoryBackend = "mysql"
	PostgreSQLBackend HistoryBackend = "postgresql"
	NoneBackend       HistoryBackend = "none"
)

// CategoricalNA is the defined empty value for categorical metrics evaluated
// over a population with zero relevant elements.
const CategoricalNA = "n/a"

// TypeField is the changed-field name recorded when an element changes its
// type tag between revisions. Retyping keeps the id, so it is a modification,
// never a remove plus add.
const TypeField = "type"

// Well-known element type tags. The tag set is open: manifests may carry any
// tag, these are only the ones the built-in catalog knows about.
const (
	ComponentType   = "component"
	FunctionType    = "function"
	RequirementType = "requirement"
	InterfaceType   = "interface"
	CapabilityType  = "capability"
)
