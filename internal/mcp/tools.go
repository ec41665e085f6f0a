package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListSensors = mcp.NewTool("list_sensors",
	mcp.WithDescription("List the sensor entities the bridge has created, with their stable IDs, metric keys, and display names."),
	mcp.WithString("user_id", mcp.Description("Filter by user ID. Omit for all users.")),
)

var toolGetLatestReadings = mcp.NewTool("get_latest_readings",
	mcp.WithDescription("Get the latest reading per sensor: state value, unit, and attributes. Only the most recent value is kept per sensor."),
	mcp.WithString("user_id", mcp.Description("Filter by user ID. Omit for all users.")),
)

var toolGetSyncActivity = mcp.NewTool("get_sync_activity",
	mcp.WithDescription("Recent webhook sync outcomes: status, metric counts, and created/updated/skipped totals per delivery."),
	mcp.WithNumber("limit", mcp.Description("Maximum rows to return. Defaults to 50.")),
)

var toolGetBridgeStatus = mcp.NewTool("get_bridge_status",
	mcp.WithDescription("Bridge health summary: entity, device, and notification counts plus the size of the known-metric catalog."),
)

// --- Tool handlers ---

func (h *handlers) listSensors(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.ListEntities(ctx, req.GetString("user_id", ""))
	if err != nil {
		h.log.Error("mcp list_sensors", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLatestReadings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.LatestStates(ctx, req.GetString("user_id", ""))
	if err != nil {
		h.log.Error("mcp get_latest_readings", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSyncActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 50)
	rows, err := h.ds.RecentSyncLogs(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_sync_activity", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBridgeStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entities, devices, notifications, err := h.ds.Counts(ctx)
	if err != nil {
		h.log.Error("mcp get_bridge_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	status := map[string]any{
		"entities":      entities,
		"devices":       devices,
		"notifications": notifications,
		"known_metrics": len(catalogEntries()),
	}
	result, err := mcp.NewToolResultJSON(status)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
