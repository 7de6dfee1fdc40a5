package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDeltaResults outputs a metric delta report, dispatching based on the
// output format configured.
func WriteDeltaResults(w io.Writer, report *schema.MetricDeltaReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := writeCSVDelta(csvWriter, report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeDeltaTable(w, report, cfg, duration)
	}
	return nil
}

// writeDeltaTable writes the delta report in a before/after/delta format.
func writeDeltaTable(w io.Writer, report *schema.MetricDeltaReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Metric", "Before", "After", "Delta", "Changed Elements"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	maxWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for _, name := range report.Names() {
		delta := report.Deltas[name]
		data = append(data, []string{
			contract.TruncatePath(name, maxWidth),
			delta.Before.Format(cfg.Precision),
			delta.After.Format(cfg.Precision),
			formatDelta(delta, cfg.Precision, red, green, yellow),
			strconv.Itoa(len(delta.Changes)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := report.Summary
	if _, err := fmt.Fprintf(w, "Comparison of %s to %s\n", report.TargetRevision, report.BaseRevision); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Net delta: %.*f, Metrics changed: %d, Metrics unavailable: %d\n", cfg.Precision, s.NetDelta, s.MetricsChanged, s.MetricsUnavailable); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Elements added: %d, removed: %d, modified: %d, unchanged: %d\n", s.Elements.Added, s.Elements.Removed, s.Elements.Modified, s.Elements.Unchanged); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Comparison completed in %v with %d workers\n", duration, cfg.Workers)
	return err
}

// formatDelta renders one metric's delta cell: signed colored arrows for
// numeric deltas, an old→new pair for categorical transitions, and a plain
// marker when either side is unavailable.
func formatDelta(delta schema.MetricDelta, precision int, red, green, yellow func(...any) string) string {
	switch {
	case delta.HasDelta:
		switch {
		case delta.Delta > 0:
			return red(fmt.Sprintf("+%.*f ▲", precision, delta.Delta))
		case delta.Delta < 0:
			return green(fmt.Sprintf("%.*f ▼", precision, delta.Delta))
		default:
			return yellow(fmt.Sprintf("%.*f", precision, 0.0))
		}
	case delta.Transition != nil:
		if delta.Transition.From == delta.Transition.To {
			return yellow(delta.Transition.To)
		}
		return yellow(fmt.Sprintf("%s → %s", delta.Transition.From, delta.Transition.To))
	default:
		return "n/a"
	}
}

// writeCSVDelta writes the delta report rows to a CSV writer.
func writeCSVDelta(w *csv.Writer, report *schema.MetricDeltaReport, cfg *contract.Config) error {
	header := []string{
		"metric",
		"before",
		"after",
		"delta",
		"transition_from",
		"transition_to",
		"changed_elements",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, name := range report.Names() {
		delta := report.Deltas[name]
		deltaStr := ""
		if delta.HasDelta {
			deltaStr = fmt.Sprintf("%.*f", cfg.Precision, delta.Delta)
		}
		from, to := "", ""
		if delta.Transition != nil {
			from, to = delta.Transition.From, delta.Transition.To
		}
		rec := []string{
			name,
			delta.Before.Format(cfg.Precision),
			delta.After.Format(cfg.Precision),
			deltaStr,
			from,
			to,
			strconv.Itoa(len(delta.Changes)),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
