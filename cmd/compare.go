package cmd

import (
	"errors"

	"github.com/archstat/archstat/core"
	"github.com/archstat/archstat/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd explains metric movement between two revisions.
var compareCmd = &cobra.Command{
	Use:   "compare [repo-path]",
	Short: "Compare metrics between two revisions of the model",
	Long: `Compare metric values between a baseline revision and a current revision,
and attribute the movement to the elements that changed.

For every metric you get the before value, the after value, the delta, and
the restricted set of added/removed/modified elements that drove it.
Categorical metrics report a transition instead of a numeric delta.

Ideal for:
- Release notes - what drifted between v1 and v2
- Review gates - did this branch introduce unallocated functions
- Refactoring validation - confirm coverage went up, not down

Examples:
  # Compare a tag against the working tree
  archstat compare --base-rev v1.0.0

  # Compare two tags of a model in another repository
  archstat compare ~/work/platform --base-rev v1.0.0 --rev v1.1.0

  # Order-insensitive relation comparison
  archstat compare --base-rev main --ignore-relation-order`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if !cfg.CompareMode {
			contract.LogFatal("Cannot run comparison", errors.New("a baseline revision must be provided via --base-rev"))
		}
		if err := core.ExecuteCompare(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
	},
}
