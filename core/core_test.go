package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest drops a manifest into a fresh directory and returns it.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.yaml"), []byte(content), 0o644))
	return dir
}

// worktreeConfig returns a config that reads the working tree and writes
// JSON to a file, bypassing stdout and the history store.
func worktreeConfig(t *testing.T, repoPath string) *contract.Config {
	t.Helper()
	return &contract.Config{
		RepoPath:       repoPath,
		ModelPath:      "model.yaml",
		ResultLimit:    10,
		Workers:        2,
		Precision:      2,
		Output:         schema.JSONOut,
		OutputFile:     filepath.Join(t.TempDir(), "out.json"),
		HistoryBackend: schema.NoneBackend,
	}
}

// TestExecuteReportWorktree runs the report path end to end against a
// working tree manifest.
func TestExecuteReportWorktree(t *testing.T) {
	dir := writeManifest(t, `
elements:
  - id: component/core
    type: component
  - id: function/parse
    type: function
    relations:
      allocated_to: [component/core]
`)
	cfg := worktreeConfig(t, dir)

	require.NoError(t, ExecuteReport(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var report schema.MetricReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "worktree", report.Revision)
	assert.True(t, schema.Numeric(2).Equal(report.Results["elements_total"].Value))
	assert.True(t, schema.Numeric(0).Equal(report.Results["unallocated_functions"].Value))
}

// TestExecuteReportMissingManifest ensures load failures surface as
// snapshot load errors.
func TestExecuteReportMissingManifest(t *testing.T) {
	cfg := worktreeConfig(t, t.TempDir())

	err := ExecuteReport(context.Background(), cfg, nil)
	var loadErr *schema.SnapshotLoadError
	assert.ErrorAs(t, err, &loadErr)
}

// TestExecuteCatalog writes the catalog through the configured output.
func TestExecuteCatalog(t *testing.T) {
	cfg := worktreeConfig(t, ".")

	require.NoError(t, ExecuteCatalog(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var entries []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Equal(t, DefaultCatalog().Len(), len(entries))
}

// TestGetCompareResultsWithLoader drives the comparison pipeline through a
// stub loader serving two revisions.
func TestGetCompareResultsWithLoader(t *testing.T) {
	base := snap("v1",
		schema.Element{ID: "function/f1", Type: schema.FunctionType},
	)
	target := snap("v2",
		schema.Element{ID: "function/f1", Type: schema.FunctionType},
		schema.Element{ID: "function/f2", Type: schema.FunctionType},
	)
	ldr := &stubLoader{snapshots: map[string]*schema.Snapshot{"v1": base, "v2": target}}

	cfg := &contract.Config{BaseRevision: "v1", Revision: "v2", Workers: 2}
	delta, err := GetCompareResults(context.Background(), cfg, ldr)
	require.NoError(t, err)

	d := delta.Deltas["functions_total"]
	assert.True(t, d.HasDelta)
	assert.InDelta(t, 1.0, d.Delta, 1e-9)
	assert.Equal(t, schema.DiffSummary{Added: 1, Unchanged: 1}, delta.Summary.Elements)
}

// stubLoader serves pre-built snapshots keyed by revision.
type stubLoader struct {
	snapshots map[string]*schema.Snapshot
}

func (s *stubLoader) Load(_ context.Context, _ string, _ string, revision string) (*schema.Snapshot, error) {
	snapshot, ok := s.snapshots[revision]
	if !ok {
		return nil, &schema.SnapshotLoadError{Revision: revision, Err: os.ErrNotExist}
	}
	return snapshot, nil
}
