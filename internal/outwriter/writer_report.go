package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteReportResults outputs a metric report, dispatching based on the
// output format configured.
func WriteReportResults(w io.Writer, report *schema.MetricReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := writeCSVReport(csvWriter, report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeReportTable(w, report, cfg, fmtFloat, duration)
	}
	return nil
}

// writeReportTable writes the report as a human-readable table.
func writeReportTable(w io.Writer, report *schema.MetricReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Metric", "Value", "Elements"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for _, name := range report.Names() {
		result := report.Results[name]
		value := result.Value.Format(cfg.Precision)
		if result.Failed() {
			value = "unavailable"
		}
		data = append(data, []string{
			contract.TruncatePath(name, maxWidth),
			value,
			formatDrilldown(result.Elements, cfg.ResultLimit),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if failures := report.FailureCount(); failures > 0 {
		for _, name := range report.Names() {
			if result := report.Results[name]; result.Failed() {
				if _, err := fmt.Fprintf(w, "Failed: %s\n", result.Error); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintf(w, "Evaluated %d metrics at revision %s in %v\n", len(report.Results), report.Revision, duration)
	return err
}

// writeCSVReport writes the report rows to a CSV writer.
func writeCSVReport(w *csv.Writer, report *schema.MetricReport, cfg *contract.Config) error {
	if err := w.Write([]string{"metric", "kind", "value", "elements", "error"}); err != nil {
		return err
	}
	for _, name := range report.Names() {
		result := report.Results[name]
		rec := []string{
			name,
			string(result.Value.Kind),
			result.Value.Format(cfg.Precision),
			strconv.Itoa(len(result.Elements)),
			result.Error,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// formatDrilldown renders drill-down ids up to the configured limit.
func formatDrilldown(ids []string, limit int) string {
	if len(ids) == 0 {
		return "-"
	}
	if limit > 0 && len(ids) > limit {
		return fmt.Sprintf("%s… (%d total)", strings.Join(ids[:limit], ", "), len(ids))
	}
	return strings.Join(ids, ", ")
}
