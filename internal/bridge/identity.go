package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/meltforce/healthbridge/internal/metric"
	"github.com/meltforce/healthbridge/internal/models"
)

// identityIndex is a per-user cache over the durable entity registry. The
// registry row keyed by unique_id is authoritative; this index only saves a
// round trip once an entity has been seen. Each user carries its own mutex so
// concurrent webhooks for the same user cannot race the resolve/create step.
type identityIndex struct {
	mu    sync.Mutex
	users map[string]*userEntities
}

type userEntities struct {
	mu       sync.Mutex
	byMetric map[string]models.SensorEntityRow
}

func newIdentityIndex() *identityIndex {
	return &identityIndex{users: make(map[string]*userEntities)}
}

func (ix *identityIndex) user(userID string) *userEntities {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	u, ok := ix.users[userID]
	if !ok {
		u = &userEntities{byMetric: make(map[string]models.SensorEntityRow)}
		ix.users[userID] = u
	}
	return u
}

// getOrCreate resolves the stable entity for (userID, key), creating the
// registry row if it does not exist yet. created reports a genuinely new
// row; a cache miss that lands on an existing row (e.g. after a restart)
// reports false.
func (ix *identityIndex) getOrCreate(ctx context.Context, store Store, userID, key string, deviceID uuid.UUID) (models.SensorEntityRow, bool, error) {
	u := ix.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	if row, ok := u.byMetric[key]; ok {
		return row, false, nil
	}

	row, created, err := store.UpsertEntity(ctx, models.SensorEntityRow{
		UniqueID:  metric.UniqueID(key, userID),
		EntityID:  metric.EntityID(key, userID),
		UserID:    userID,
		MetricKey: key,
		Name:      metric.DisplayName(key, userID),
		DeviceID:  deviceID,
	})
	if err != nil {
		return models.SensorEntityRow{}, false, err
	}
	u.byMetric[key] = row
	return row, created, nil
}
