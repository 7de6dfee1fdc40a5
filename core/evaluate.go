package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/archstat/archstat/schema"
)

// Evaluate runs every catalog entry against the snapshot and returns the
// metric report. Metrics are mutually independent pure functions, so they
// fan out over a bounded number of workers; evaluation order never affects
// the result. One failing metric never blocks the rest: its entry carries a
// schema.MetricComputationError and an unavailable value, never a fabricated
// zero.
func Evaluate(snapshot *schema.Snapshot, catalog *Catalog, workers int) *schema.MetricReport {
	report := &schema.MetricReport{
		Revision: snapshot.Revision,
		Results:  make(map[string]schema.MetricResult, catalog.Len()),
	}

	if workers < 1 {
		workers = 1
	}

	names := catalog.Names()
	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for range min(workers, max(len(names), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				metric, _ := catalog.Get(name)
				result := computeOne(metric, snapshot)
				mu.Lock()
				report.Results[name] = result
				mu.Unlock()
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	return report
}

// computeOne runs a single metric with failure isolation. A panic inside a
// metric's compute is contained the same way as a returned error.
func computeOne(metric Metric, snapshot *schema.Snapshot) (result schema.MetricResult) {
	defer func() {
		if r := recover(); r != nil {
			compErr := &schema.MetricComputationError{Metric: metric.Name, Err: fmt.Errorf("panic: %v", r)}
			result = schema.MetricResult{Value: schema.Unavailable(), Error: compErr.Error()}
		}
	}()

	value, ids, err := metric.Compute(snapshot)
	if err != nil {
		compErr := &schema.MetricComputationError{Metric: metric.Name, Err: err}
		return schema.MetricResult{Value: schema.Unavailable(), Error: compErr.Error()}
	}

	sort.Strings(ids)
	return schema.MetricResult{Value: value, Elements: ids}
}
