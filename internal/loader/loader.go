// Package loader is the model snapshot adapter: it reads a model manifest
// out of a git repository at a given revision and presents it as an
// immutable snapshot with stable element ids.
package loader

import (
	"context"
	"os"
	"path/filepath"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/schema"
)

// WorktreeRevision is the snapshot revision label used when no revision is
// configured and the manifest is read straight from the working tree.
const WorktreeRevision = "worktree"

// GitModelLoader loads model manifests from a git repository. An empty
// revision reads the working tree file directly; anything else goes through
// 'git show'. The loader never retries: retry policy belongs to the caller.
type GitModelLoader struct {
	client contract.GitClient
}

var _ contract.ModelLoader = &GitModelLoader{} // Compile-time check

// NewGitModelLoader creates a loader backed by the given git client.
func NewGitModelLoader(client contract.GitClient) *GitModelLoader {
	return &GitModelLoader{client: client}
}

// Load implements the contract.ModelLoader interface.
func (l *GitModelLoader) Load(ctx context.Context, repoPath string, modelPath string, revision string) (*schema.Snapshot, error) {
	locator := filepath.Join(repoPath, modelPath)

	if revision == "" {
		data, err := os.ReadFile(locator)
		if err != nil {
			return nil, &schema.SnapshotLoadError{Locator: locator, Err: err}
		}
		return DecodeSnapshot(data, locator, WorktreeRevision)
	}

	if _, err := l.client.ResolveRevision(ctx, repoPath, revision); err != nil {
		return nil, &schema.SnapshotLoadError{Locator: locator, Revision: revision, Err: err}
	}
	data, err := l.client.ShowFile(ctx, repoPath, revision, modelPath)
	if err != nil {
		return nil, &schema.SnapshotLoadError{Locator: locator, Revision: revision, Err: err}
	}
	return DecodeSnapshot(data, locator, revision)
}
