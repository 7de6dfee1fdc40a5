package cmd

import (
	"github.com/archstat/archstat/core"
	"github.com/archstat/archstat/internal/contract"
	"github.com/spf13/cobra"
)

// catalogCmd displays the definitions of all built-in metrics.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Display the definitions of all built-in metrics",
	Long: `Show the name and description of every metric in the built-in catalog.

No model is loaded - this is purely informational.

Examples:
  # List all metrics
  archstat catalog

  # Machine-readable catalog
  archstat catalog --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalog(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot display catalog", err)
		}
	},
}
