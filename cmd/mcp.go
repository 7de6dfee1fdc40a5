package cmd

import (
	"github.com/archstat/archstat/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Archstat MCP server",
	Long:  `Launch an MCP server that allows AI agents to evaluate and compare model metrics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Normal header logs are suppressed inside the handlers to avoid
		// polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}
