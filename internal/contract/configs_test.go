package contract

import (
	"path/filepath"
	"testing"

	"github.com/archstat/archstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr:    ".",
		ModelPath:      "model.yaml",
		Limit:          DefaultResultLimit,
		Workers:        4,
		Precision:      2,
		Output:         "text",
		HistoryBackend: "sqlite",
		Emoji:          "yes",
		Color:          "yes",
	}
}

// TestProcessAndValidateDefaults checks that a minimal input resolves to a
// sane config.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.ModelPath = ""
	input.Workers = 0

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.True(t, filepath.IsAbs(cfg.RepoPath))
	assert.Equal(t, DefaultModelPath, cfg.ModelPath)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
	assert.False(t, cfg.CompareMode)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

// TestProcessAndValidateCompareMode ensures a baseline revision flips the
// config into compare mode.
func TestProcessAndValidateCompareMode(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.BaseRevision = "v1.0.0"
	input.Revision = "v1.1.0"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.True(t, cfg.CompareMode)
	assert.Equal(t, "v1.0.0", cfg.BaseRevision)
	assert.Equal(t, "v1.1.0", cfg.Revision)
}

// TestProcessAndValidateErrors covers inputs that must be rejected.
func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
		detail string
	}{
		{
			name:   "absolute model path",
			mutate: func(in *ConfigRawInput) { in.ModelPath = "/etc/model.yaml" },
			detail: "must be relative",
		},
		{
			name:   "limit too small",
			mutate: func(in *ConfigRawInput) { in.Limit = 0 },
			detail: "limit must be between",
		},
		{
			name:   "limit too large",
			mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			detail: "limit must be between",
		},
		{
			name:   "unknown output mode",
			mutate: func(in *ConfigRawInput) { in.Output = "xml" },
			detail: "unsupported output mode",
		},
		{
			name:   "unknown history backend",
			mutate: func(in *ConfigRawInput) { in.HistoryBackend = "redis" },
			detail: "unsupported history backend",
		},
		{
			name:   "mysql without connection string",
			mutate: func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			detail: "requires a connection string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			err := ProcessAndValidate(&Config{}, input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

// TestProcessAndValidatePrecisionClamping ensures precision stays in range
// instead of failing.
func TestProcessAndValidatePrecisionClamping(t *testing.T) {
	tests := []struct {
		name     string
		in       int
		expected int
	}{
		{name: "negative clamps to zero", in: -2, expected: 0},
		{name: "in range passes through", in: 3, expected: 3},
		{name: "above max clamps to max", in: 9, expected: MaxPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validInput()
			input.Precision = tt.in
			require.NoError(t, ProcessAndValidate(cfg, input))
			assert.Equal(t, tt.expected, cfg.Precision)
		})
	}
}

// TestRevalidateCompare covers the post-hoc comparison validation used by
// MCP handlers.
func TestRevalidateCompare(t *testing.T) {
	cfg := &Config{BaseRevision: "v1", Revision: "v2"}
	require.NoError(t, RevalidateCompare(cfg))
	assert.True(t, cfg.CompareMode)

	assert.Error(t, RevalidateCompare(&Config{}), "baseline is required")
	assert.Error(t, RevalidateCompare(&Config{BaseRevision: "v1", Revision: "v1"}), "identical revisions")
	assert.NoError(t, RevalidateCompare(&Config{BaseRevision: "v1"}), "empty current revision means worktree")
}

// TestCloneIsIndependent ensures per-request overrides never race the base.
func TestCloneIsIndependent(t *testing.T) {
	base := &Config{RepoPath: "/repo", Revision: "v1"}
	clone := base.Clone()
	clone.Revision = "v2"
	assert.Equal(t, "v1", base.Revision)
	assert.Equal(t, "v2", clone.Revision)
}

// TestParseYesNo covers the yes/no toggle parser.
func TestParseYesNo(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		expected bool
	}{
		{"yes", false, true},
		{"TRUE", false, true},
		{"on", false, true},
		{"1", false, true},
		{"no", true, false},
		{"False", true, false},
		{"off", true, false},
		{"0", true, false},
		{"", true, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseYesNo(tt.value, tt.fallback))
		})
	}
}
