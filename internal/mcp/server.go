// Package mcp exposes the bridge's registries and sync activity to MCP
// clients, for diagnostics and querying the latest readings.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("HealthBridge", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("HealthBridge health-metric bridge. Inspect per-user sensor entities, their latest readings, recent sync activity, and bridge status."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListSensors, Handler: h.listSensors},
		server.ServerTool{Tool: toolGetLatestReadings, Handler: h.getLatestReadings},
		server.ServerTool{Tool: toolGetSyncActivity, Handler: h.getSyncActivity},
		server.ServerTool{Tool: toolGetBridgeStatus, Handler: h.getBridgeStatus},
	)

	s.AddResources(
		server.ServerResource{Resource: resMetricCatalog, Handler: h.metricCatalog},
		server.ServerResource{Resource: resNotifications, Handler: h.notifications},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resMetricCatalog = mcp.NewResource(
	"healthbridge://metric_catalog",
	"Metric Catalog",
	mcp.WithResourceDescription("All known health metrics with their native units, device classes, state classes, and icons"),
	mcp.WithMIMEType("application/json"),
)

var resNotifications = mcp.NewResource(
	"healthbridge://notifications",
	"Notifications",
	mcp.WithResourceDescription("Persistent notifications emitted by the bridge (connection acknowledgments, force-create reports)"),
	mcp.WithMIMEType("application/json"),
)
