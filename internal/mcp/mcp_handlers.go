package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/archstat/archstat/core"
	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/internal/loader"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// requestConfig clones the base config and applies per-request overrides.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if m := request.GetString("model", ""); m != "" {
		cfg.ModelPath = m
	}
	if r := request.GetString("rev", ""); r != "" {
		cfg.Revision = r
	}
	return cfg
}

func (h *toolHandler) handleEvaluateMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)

	ldr := loader.NewGitModelLoader(contract.NewLocalGitClient())
	report, err := core.GetReportResults(core.WithSuppressHeader(ctx), cfg, ldr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareRevisions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	cfg.BaseRevision = request.GetString("base_rev", "")

	if err := contract.RevalidateCompare(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}

	ldr := loader.NewGitModelLoader(contract.NewLocalGitClient())
	deltaReport, err := core.GetCompareResults(core.WithSuppressHeader(ctx), cfg, ldr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(deltaReport, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCatalog(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog := core.DefaultCatalog()
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	entries := make([]entry, 0, catalog.Len())
	for _, name := range catalog.Names() {
		m, _ := catalog.Get(name)
		entries = append(entries, entry{Name: m.Name, Description: m.Description})
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
