package mcp

import (
	"context"

	"github.com/meltforce/healthbridge/internal/models"
	"github.com/meltforce/healthbridge/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListEntities(ctx context.Context, userID string) ([]models.SensorEntityRow, error)
	LatestStates(ctx context.Context, userID string) ([]models.EntityStateRow, error)
	RecentSyncLogs(ctx context.Context, limit int) ([]models.SyncLogRow, error)
	ListNotifications(ctx context.Context) ([]models.NotificationRow, error)
	Counts(ctx context.Context) (entities, devices, notifications int, err error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
