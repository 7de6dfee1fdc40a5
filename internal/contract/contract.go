// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/archstat/archstat/schema"
)

// GitClient defines the necessary operations for reading model manifests out
// of a git repository. This allows the core logic to be tested without
// needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// ShowFile returns the content of a file at a specific revision.
	ShowFile(ctx context.Context, repoPath string, revision string, path string) ([]byte, error)

	// ResolveRevision resolves a revision label (branch, tag, hash) to a full
	// commit hash, failing when the label does not exist.
	ResolveRevision(ctx context.Context, repoPath string, revision string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// ModelLoader is the snapshot adapter contract: it presents a model at a
// given revision as an immutable snapshot with stable element ids.
// Implementations fail with schema.SnapshotLoadError when the locator or
// revision cannot be resolved and schema.SchemaMismatchError when the data
// does not have the expected shape. Retry policy, if any, belongs to the
// caller, never to the loader.
type ModelLoader interface {
	Load(ctx context.Context, repoPath string, modelPath string, revision string) (*schema.Snapshot, error)
}

// HistoryManager defines the interface for reaching the report history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetReportStore() ReportStore
}

// ReportStore defines the interface for persisting evaluated metric reports.
type ReportStore interface {
	// RecordReport stores one evaluated report and returns its run id.
	RecordReport(modelPath string, report *schema.MetricReport, duration time.Duration) (int64, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllMetricValues returns every recorded metric value row.
	GetAllMetricValues() ([]schema.MetricValueRecord, error)

	// Clear removes all recorded history.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
