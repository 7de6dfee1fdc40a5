// Package core has core logic for metric evaluation, revision diffing and
// delta aggregation.
package core

import (
	"context"
	"time"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/internal/loader"
	"github.com/archstat/archstat/internal/outwriter"
	"github.com/archstat/archstat/schema"
)

// ExecutorFunc defines the function signature for executing different
// analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

type suppressHeaderKey struct{}

// WithSuppressHeader marks a context so executors skip the stdout header,
// e.g. when stdio is carrying the MCP protocol.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey{}, true)
}

func headerSuppressed(ctx context.Context) bool {
	v, _ := ctx.Value(suppressHeaderKey{}).(bool)
	return v
}

// GetReportResults loads the configured snapshot and evaluates the built-in
// catalog against it.
func GetReportResults(ctx context.Context, cfg *contract.Config, ldr contract.ModelLoader) (*schema.MetricReport, error) {
	snapshot, err := ldr.Load(ctx, cfg.RepoPath, cfg.ModelPath, cfg.Revision)
	if err != nil {
		return nil, err
	}
	return Evaluate(snapshot, DefaultCatalog(), cfg.Workers), nil
}

// GetCompareResults loads the baseline and current snapshots, evaluates both
// and combines them with the element diff into a delta report.
func GetCompareResults(ctx context.Context, cfg *contract.Config, ldr contract.ModelLoader) (*schema.MetricDeltaReport, error) {
	baseline, err := ldr.Load(ctx, cfg.RepoPath, cfg.ModelPath, cfg.BaseRevision)
	if err != nil {
		return nil, err
	}
	current, err := ldr.Load(ctx, cfg.RepoPath, cfg.ModelPath, cfg.Revision)
	if err != nil {
		return nil, err
	}

	catalog := DefaultCatalog()
	baseReport := Evaluate(baseline, catalog, cfg.Workers)
	currentReport := Evaluate(current, catalog, cfg.Workers)
	diff := Diff(baseline, current, DiffOptions{IgnoreRelationOrder: cfg.IgnoreRelationOrder})

	return Aggregate(baseReport, currentReport, diff), nil
}

// ExecuteReport runs the metrics-only evaluation and prints the report.
// It serves as the main entry point for the 'report' mode; no element diff
// is ever constructed here.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	ldr := loader.NewGitModelLoader(contract.NewLocalGitClient())

	if cfg.Output == schema.TextOut && !headerSuppressed(ctx) {
		contract.LogReportHeader(cfg)
	}

	report, err := GetReportResults(ctx, cfg, ldr)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	recordReport(cfg, mgr, report, duration)
	return outwriter.NewOutWriter().WriteReport(report, cfg, duration)
}

// ExecuteCompare runs two evaluations (baseline and current revision),
// diffs the snapshots and prints the delta report.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	ldr := loader.NewGitModelLoader(contract.NewLocalGitClient())

	if cfg.Output == schema.TextOut && !headerSuppressed(ctx) {
		contract.LogCompareHeader(cfg)
	}

	baseline, err := ldr.Load(ctx, cfg.RepoPath, cfg.ModelPath, cfg.BaseRevision)
	if err != nil {
		return err
	}
	current, err := ldr.Load(ctx, cfg.RepoPath, cfg.ModelPath, cfg.Revision)
	if err != nil {
		return err
	}

	catalog := DefaultCatalog()
	baseReport := Evaluate(baseline, catalog, cfg.Workers)
	currentReport := Evaluate(current, catalog, cfg.Workers)
	diff := Diff(baseline, current, DiffOptions{IgnoreRelationOrder: cfg.IgnoreRelationOrder})
	deltaReport := Aggregate(baseReport, currentReport, diff)
	duration := time.Since(start)

	recordReport(cfg, mgr, currentReport, duration)
	return outwriter.NewOutWriter().WriteDelta(deltaReport, cfg, duration)
}

// ExecuteCatalog displays the definitions of all built-in metrics.
// This is a static display that does not require loading a model.
func ExecuteCatalog(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	catalog := DefaultCatalog()
	entries := make([]outwriter.CatalogEntry, 0, catalog.Len())
	for _, name := range catalog.Names() {
		m, _ := catalog.Get(name)
		entries = append(entries, outwriter.CatalogEntry{Name: m.Name, Description: m.Description})
	}
	return outwriter.NewOutWriter().WriteCatalog(entries, cfg)
}

// recordReport persists the evaluated report when a history store is wired.
func recordReport(cfg *contract.Config, mgr contract.HistoryManager, report *schema.MetricReport, duration time.Duration) {
	if mgr == nil || cfg.HistoryBackend == schema.NoneBackend {
		return
	}
	store := mgr.GetReportStore()
	if store == nil {
		return
	}
	if _, err := store.RecordReport(cfg.ModelPath, report, duration); err != nil {
		contract.LogWarning("could not record report history: " + err.Error())
	}
}
