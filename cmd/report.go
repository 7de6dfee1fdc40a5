package cmd

import (
	"github.com/archstat/archstat/core"
	"github.com/archstat/archstat/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd evaluates the metric catalog at a single revision.
var reportCmd = &cobra.Command{
	Use:   "report [repo-path]",
	Short: "Evaluate all metrics against the model at one revision",
	Long: `Evaluate the full metric catalog against the model manifest at a single revision.

Each metric is computed independently, so one broken metric never hides the
others; failed metrics are reported as unavailable with their error.

Use this to:
- Get a health snapshot of the current model
- Audit a tagged release (--rev v1.2.0)
- Feed dashboards via --output json or csv

Examples:
  # Evaluate the working tree of the current repository
  archstat report

  # Evaluate a tagged revision of a model in another repository
  archstat report ~/work/platform --rev v2.3.0

  # Machine-readable output for scripting
  archstat report --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot evaluate metrics", err)
		}
	},
}
