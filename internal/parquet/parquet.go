// Package parquet provides data structures and functions for exporting
// archstat report history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/archstat/archstat/schema"
	"github.com/parquet-go/parquet-go"
)

// RunRecord represents a single evaluation run with metadata.
// This struct maps to the archstat_runs database table.
type RunRecord struct {
	RunID         int64  `parquet:"run_id,snappy"`
	Model         string `parquet:"model,snappy"`
	Revision      string `parquet:"revision,snappy"`
	CreatedAt     int64  `parquet:"created_at,snappy"`
	DurationMs    int64  `parquet:"duration_ms,snappy"`
	TotalMetrics  int32  `parquet:"total_metrics,snappy"`
	FailedMetrics int32  `parquet:"failed_metrics,snappy"`
}

// MetricValueRecord represents one metric value belonging to a run.
// This struct maps to the archstat_metric_values database table.
type MetricValueRecord struct {
	RunID    int64   `parquet:"run_id,snappy"`
	Metric   string  `parquet:"metric,snappy"`
	Kind     string  `parquet:"kind,snappy"`
	Number   float64 `parquet:"number,snappy"`
	Category string  `parquet:"category,snappy"`
	Error    string  `parquet:"error,snappy"`
	Elements int32   `parquet:"elements,snappy"`
}

// ConvertRunRecords converts database run rows to their Parquet shape.
func ConvertRunRecords(runs []schema.RunRecord) []RunRecord {
	out := make([]RunRecord, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunRecord{
			RunID:         r.RunID,
			Model:         r.Model,
			Revision:      r.Revision,
			CreatedAt:     r.CreatedAt,
			DurationMs:    r.DurationMs,
			TotalMetrics:  int32(r.TotalMetrics),
			FailedMetrics: int32(r.FailedMetrics),
		})
	}
	return out
}

// ConvertMetricValueRecords converts database value rows to their Parquet shape.
func ConvertMetricValueRecords(values []schema.MetricValueRecord) []MetricValueRecord {
	out := make([]MetricValueRecord, 0, len(values))
	for _, v := range values {
		out = append(out, MetricValueRecord{
			RunID:    v.RunID,
			Metric:   v.Metric,
			Kind:     v.Kind,
			Number:   v.Number,
			Category: v.Category,
			Error:    v.Error,
			Elements: int32(v.Elements),
		})
	}
	return out
}

// WriteRunsParquet writes run records to a Parquet file.
func WriteRunsParquet(data []RunRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteMetricValuesParquet writes metric value records to a Parquet file.
func WriteMetricValuesParquet(data []MetricValueRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes any record slice using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the record struct tags.
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
