// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/archstat/archstat/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the archstat MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Archstat Model Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	evaluateTool := mcp.NewTool("evaluate_metrics",
		mcp.WithDescription("Evaluate the metric catalog against a model at one revision and return the report as JSON."),
		mcp.WithString("repo_path", mcp.Description("Path to the git repository holding the model")),
		mcp.WithString("model", mcp.Description("Path of the model manifest within the repository")),
		mcp.WithString("rev", mcp.Description("Revision label to evaluate (default: working tree)")),
	)
	s.AddTool(evaluateTool, h.handleEvaluateMetrics)

	compareTool := mcp.NewTool("compare_revisions",
		mcp.WithDescription("Compare model metrics between a baseline and a current revision and return the delta report as JSON."),
		mcp.WithString("repo_path", mcp.Description("Path to the git repository holding the model")),
		mcp.WithString("model", mcp.Description("Path of the model manifest within the repository")),
		mcp.WithString("base_rev", mcp.Description("Baseline revision label"), mcp.Required()),
		mcp.WithString("rev", mcp.Description("Current revision label (default: working tree)")),
	)
	s.AddTool(compareTool, h.handleCompareRevisions)

	catalogTool := mcp.NewTool("list_catalog",
		mcp.WithDescription("List all metric definitions in the built-in catalog."),
	)
	s.AddTool(catalogTool, h.handleListCatalog)

	return s
}

// StartMCPServer builds the server and serves the MCP protocol over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
