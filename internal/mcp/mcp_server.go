// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Coco MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Coco Care Snapshot Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_care_snapshot ---
	s.AddTool(mcp.NewTool("get_care_snapshot",
		mcp.WithDescription("Summarize a care team's recent tasks, medications, moods, routines and caregiver burden, with highlights comparing the window to the one before it."),
		mcp.WithString("entity_id", mcp.Description("The care team (entity) to summarize."), mcp.Required()),
		mcp.WithNumber("window_days", mcp.Description("Window size in days: 7 or 30. Defaults to 7.")),
		mcp.WithBoolean("force", mcp.Description("Recompute even when a fresh snapshot is stored.")),
	), h.handleGetCareSnapshot)

	// --- 2. Tool: get_snapshot_store_status ---
	s.AddTool(mcp.NewTool("get_snapshot_store_status",
		mcp.WithDescription("Report the snapshot store backend, entry counts and age of stored snapshots."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the Coco MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
