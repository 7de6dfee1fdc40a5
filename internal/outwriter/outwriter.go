// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a metric report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.MetricReport, cfg *contract.Config, duration time.Duration) error {
	w, closeFn, err := selectOutput(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return WriteReportResults(w, report, cfg, duration)
}

// WriteDelta prints a metric delta report using the configured output format.
func (ow *OutWriter) WriteDelta(report *schema.MetricDeltaReport, cfg *contract.Config, duration time.Duration) error {
	w, closeFn, err := selectOutput(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return WriteDeltaResults(w, report, cfg, duration)
}

// WriteCatalog prints the metric definitions using the configured output format.
func (ow *OutWriter) WriteCatalog(entries []CatalogEntry, cfg *contract.Config) error {
	w, closeFn, err := selectOutput(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return WriteCatalogResults(w, entries, cfg)
}

// selectOutput returns the configured output destination and a close func.
func selectOutput(cfg *contract.Config) (io.Writer, func(), error) {
	if cfg.OutputFile == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open output file %s: %w", cfg.OutputFile, err)
	}
	return file, func() { _ = file.Close() }, nil
}

// createFormatters returns a float formatter and an int format string for
// the configured precision.
func createFormatters(precision int) (func(float64) string, string) {
	return contract.CreateFormatters(precision)
}

// writeJSON marshals any result structure with indentation.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// getMaxTableIDWidth calculates the maximum width for metric names and
// element ids in table output based on terminal width.
func getMaxTableIDWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI.
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the value/delta columns with borders and padding.
	available := termWidth - 45
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
