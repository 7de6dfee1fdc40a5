package schema

import (
	"fmt"
	"strconv"
)

// MetricValue is the tagged variant a metric computation produces: a number,
// a category label, or nothing (the metric could not be computed or was not
// present on one side of a comparison). A failed metric is never rendered as
// zero; it stays unavailable.
type MetricValue struct {
	Kind     ValueKind `json:"kind"`
	Number   float64   `json:"number,omitempty"`
	Category string    `json:"category,omitempty"`
}

// Numeric builds a numeric metric value.
func Numeric(v float64) MetricValue {
	return MetricValue{Kind: NumericKind, Number: v}
}

// Categorical builds a categorical metric value.
func Categorical(label string) MetricValue {
	return MetricValue{Kind: CategoricalKind, Category: label}
}

// Unavailable builds the explicit "no value" variant.
func Unavailable() MetricValue {
	return MetricValue{Kind: UnavailableKind}
}

// IsNumeric reports whether the value carries a number.
func (v MetricValue) IsNumeric() bool { return v.Kind == NumericKind }

// IsAvailable reports whether the value carries anything at all.
func (v MetricValue) IsAvailable() bool { return v.Kind != UnavailableKind }

// Equal reports whether two values are the same variant with the same payload.
func (v MetricValue) Equal(other MetricValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case NumericKind:
		return v.Number == other.Number
	case CategoricalKind:
		return v.Category == other.Category
	default:
		return true
	}
}

// String renders the value for tables and logs.
func (v MetricValue) String() string {
	switch v.Kind {
	case NumericKind:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case CategoricalKind:
		return v.Category
	default:
		return "unavailable"
	}
}

// Format renders the value with the given decimal precision for numbers.
func (v MetricValue) Format(precision int) string {
	if v.Kind == NumericKind {
		return fmt.Sprintf("%.*f", precision, v.Number)
	}
	return v.String()
}
