package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTruncatePath ensures long ids get an ellipsis prefix while short ones
// pass through.
func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{name: "short path untouched", path: "function/parse", maxWidth: 20, expected: "function/parse"},
		{name: "exact width untouched", path: "abcde", maxWidth: 5, expected: "abcde"},
		{name: "long path keeps the tail", path: "component/subsystem/function/parse", maxWidth: 15, expected: "...nction/parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

// TestCreateFormatters checks precision handling of the float formatter.
func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtInt := CreateFormatters(2)
	assert.Equal(t, "1.50", fmtFloat(1.5))
	assert.Equal(t, "0.00", fmtFloat(0))
	assert.Equal(t, "%d", fmtInt)

	fmtFloat0, _ := CreateFormatters(0)
	assert.Equal(t, "2", fmtFloat0(1.6))
}
