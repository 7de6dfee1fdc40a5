package history

import (
	"errors"
	"fmt"

	"github.com/archstat/archstat/internal/parquet"
)

// ExecuteHistoryExport exports all recorded report history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetReportStore()
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no report history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total metric value rows: %d\n", status.TableSizes["archstat_metric_values"])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	values, err := store.GetAllMetricValues()
	if err != nil {
		return fmt.Errorf("failed to retrieve metric values: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	valuesFile := outputFile + ".metric_values.parquet"
	if err := parquet.WriteMetricValuesParquet(parquet.ConvertMetricValueRecords(values), valuesFile); err != nil {
		return fmt.Errorf("failed to write metric values: %w", err)
	}
	fmt.Printf("Exported %d metric value rows to: %s\n", len(values), valuesFile)

	return nil
}
