package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/schema"
	"github.com/olekukonko/tablewriter"
)

// CatalogEntry is one metric definition row for display.
type CatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WriteCatalogResults outputs the metric definitions, dispatching based on
// the output format configured.
func WriteCatalogResults(w io.Writer, entries []CatalogEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, entries); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := csvWriter.Write([]string{"metric", "description"}); err != nil {
			return err
		}
		for _, e := range entries {
			if err := csvWriter.Write([]string{e.Name, e.Description}); err != nil {
				return err
			}
		}
	default:
		table := tablewriter.NewWriter(w)
		defer func() { _ = table.Close() }()
		table.Header([]string{"Metric", "Description"})
		var data [][]string
		for _, e := range entries {
			data = append(data, []string{e.Name, e.Description})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%d metrics registered\n", len(entries)); err != nil {
			return err
		}
	}
	return nil
}
