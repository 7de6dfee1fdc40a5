package schema

// HistoryStatus has status information about the report history store.
type HistoryStatus struct {
	Backend    HistoryBackend   `json:"backend"`
	Location   string           `json:"location,omitempty"` // SQLite file path, empty for server backends
	TotalRuns  int64            `json:"total_runs"`
	TableSizes map[string]int64 `json:"table_sizes"`
}

// RunRecord is one persisted evaluation run.
type RunRecord struct {
	RunID         int64  `json:"run_id"`
	Model         string `json:"model"`
	Revision      string `json:"revision"`
	CreatedAt     int64  `json:"created_at"` // Unix seconds
	DurationMs    int64  `json:"duration_ms"`
	TotalMetrics  int    `json:"total_metrics"`
	FailedMetrics int    `json:"failed_metrics"`
}

// MetricValueRecord is one persisted metric value belonging to a run.
type MetricValueRecord struct {
	RunID    int64   `json:"run_id"`
	Metric   string  `json:"metric"`
	Kind     string  `json:"kind"`
	Number   float64 `json:"number"`
	Category string  `json:"category"`
	Error    string  `json:"error"`
	Elements int     `json:"elements"` // Drill-down id count
}
