package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LakGar/Coco-sub001/core"
	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGetCareSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.EntityID = request.GetString("entity_id", "")
	if cfg.EntityID == "" {
		return mcp.NewToolResultError("entity_id is required"), nil
	}
	if cfg.WindowDays == 0 {
		cfg.WindowDays = contract.DefaultWindowDays
	}
	cfg.WindowDays = request.GetInt("window_days", cfg.WindowDays)
	if err := schema.ValidateWindowDays(cfg.WindowDays); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window_days %d: %v", cfg.WindowDays, err)), nil
	}
	cfg.Force = request.GetBool("force", cfg.Force)

	enriched, err := core.GetEnrichedSnapshot(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(enriched, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetSnapshotStore()
	if store == nil {
		return mcp.NewToolResultError("snapshot store is not initialized"), nil
	}
	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
