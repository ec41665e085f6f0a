// Package bridge is the sync orchestrator: it drives inbound payloads through
// alias resolution, unit normalization, preference conversion, and the
// entity identity store, and returns a result value describing what happened.
// Side effects like notification dispatch belong to the caller.
package bridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/healthbridge/internal/models"
	"github.com/meltforce/healthbridge/internal/storage"
)

// Store is the durable half of the bridge. *storage.DB satisfies it; tests
// substitute an in-memory fake.
type Store interface {
	GetOrCreateDevice(ctx context.Context, userID string) (models.DeviceRow, error)
	UpsertEntity(ctx context.Context, row models.SensorEntityRow) (models.SensorEntityRow, bool, error)
	UpdateEntityName(ctx context.Context, uniqueID, name string) error
	ListUnnamedEntities(ctx context.Context) ([]models.SensorEntityRow, error)
	UpsertEntityState(ctx context.Context, row models.EntityStateRow) error
	GetUnitPreferences(ctx context.Context) (*models.UnitPreferencesRow, error)
	SaveUnitPreferences(ctx context.Context, nutrientMass, waterVolume string) error
}

// Compile-time check: the Postgres layer satisfies Store.
var _ Store = (*storage.DB)(nil)

// Bridge owns one installation's sync state: the shared secret, cached unit
// preferences, the per-user identity index, and the last-sync rate control.
// All dependencies are injected; there is no ambient global state.
type Bridge struct {
	store Store
	log   *slog.Logger
	token string

	prefMu     sync.RWMutex
	massPref   string
	volumePref string

	identities *identityIndex
	marker     *markerLimiter

	now func() time.Time
}

// New creates a Bridge. massPref and volumePref are the config-file defaults;
// RefreshPreferences overrides them with the persisted selection when one
// exists.
func New(store Store, token, massPref, volumePref string, log *slog.Logger) *Bridge {
	return &Bridge{
		store:      store,
		log:        log,
		token:      token,
		massPref:   massPref,
		volumePref: volumePref,
		identities: newIdentityIndex(),
		marker:     newMarkerLimiter(lastSyncMinInterval),
		now:        time.Now,
	}
}

// Preferences returns the cached display-unit selection.
func (b *Bridge) Preferences() (massPref, volumePref string) {
	b.prefMu.RLock()
	defer b.prefMu.RUnlock()
	return b.massPref, b.volumePref
}

// SetPreferences persists a new display-unit selection and refreshes the
// cache. Callers validate the values first.
func (b *Bridge) SetPreferences(ctx context.Context, massPref, volumePref string) error {
	if err := b.store.SaveUnitPreferences(ctx, massPref, volumePref); err != nil {
		return err
	}
	b.prefMu.Lock()
	b.massPref = massPref
	b.volumePref = volumePref
	b.prefMu.Unlock()
	return nil
}

// RefreshPreferences reloads the persisted selection into the cache. A
// missing row leaves the config defaults in place.
func (b *Bridge) RefreshPreferences(ctx context.Context) error {
	p, err := b.store.GetUnitPreferences(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	b.prefMu.Lock()
	b.massPref = p.NutrientMass
	b.volumePref = p.WaterVolume
	b.prefMu.Unlock()
	return nil
}
