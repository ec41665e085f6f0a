package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/healthbridge/internal/metric"
	"github.com/meltforce/healthbridge/internal/models"
)

// ForceCreate pre-provisions entities without waiting for real data. A nil or
// empty metrics map defaults to every known metric (except the connectivity
// sentinel) at value 0. The first datapoint's value is used verbatim: no unit
// normalization or preference conversion applies here, the attributes carry
// the native unit.
func (b *Bridge) ForceCreate(ctx context.Context, userID string, metrics map[string][]models.Datapoint) (*Result, error) {
	if userID == "" {
		userID = "default_user"
	}
	result := &Result{UserID: userID, Status: StatusOK}
	result.Notices = append(result.Notices, Notice{
		NotificationID: "health_bridge_force_create",
		Title:          "Health Bridge - Entity Creation",
		Message:        fmt.Sprintf("Starting force entity creation for user %s", userID),
	})

	if len(metrics) == 0 {
		metrics = make(map[string][]models.Datapoint)
		for _, key := range metric.Known {
			if key == metric.TestConnection {
				continue
			}
			metrics[key] = []models.Datapoint{{Value: float64(0)}}
		}
	}

	device, err := b.store.GetOrCreateDevice(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("resolving device for %s: %w", userID, err)
	}

	for name, datapoints := range metrics {
		result.MetricsReceived++
		key := metric.Resolve(name)
		if key == metric.TestConnection {
			result.Skipped++
			continue
		}

		var value any = float64(0)
		if len(datapoints) > 0 && datapoints[0].Value != nil {
			value = datapoints[0].Value
		}

		entity, created, err := b.identities.getOrCreate(ctx, b.store, userID, key, device.ID)
		if err != nil {
			b.log.Warn("force-create: identity resolution failed", "metric", key, "user", userID, "error", err)
			result.Skipped++
			continue
		}
		err = b.store.UpsertEntityState(ctx, models.EntityStateRow{
			EntityID:   entity.EntityID,
			State:      formatState(value),
			Attributes: entityAttributes(key, userID),
		})
		if err != nil {
			b.log.Warn("force-create: state write failed", "metric", key, "user", userID, "error", err)
			result.Skipped++
			continue
		}

		result.CreatedEntities = append(result.CreatedEntities, entity.EntityID)
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	var message string
	if len(result.CreatedEntities) > 0 {
		message = fmt.Sprintf("Successfully created/updated %d entities:\n\n%s",
			len(result.CreatedEntities), strings.Join(result.CreatedEntities, "\n"))
	} else {
		message = "No entities were created or updated."
	}
	result.Notices = append(result.Notices, Notice{
		NotificationID: "health_bridge_force_create_complete",
		Title:          "Health Bridge - Entity Creation Complete",
		Message:        message,
	})

	return result, nil
}

// FixEntityNames scans entities with a missing display name, infers the
// metric and user from the unique ID, and writes the repaired title-case
// name. Entities whose unique ID does not parse are left alone.
func (b *Bridge) FixEntityNames(ctx context.Context) (*FixNamesResult, error) {
	unnamed, err := b.store.ListUnnamedEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unnamed entities: %w", err)
	}

	result := &FixNamesResult{Scanned: len(unnamed)}
	for _, e := range unnamed {
		key, userID, ok := metric.ParseUniqueID(e.UniqueID)
		if !ok {
			b.log.Debug("fix-names: unparseable unique ID", "unique_id", e.UniqueID)
			continue
		}
		name := metric.DisplayName(key, userID)
		if err := b.store.UpdateEntityName(ctx, e.UniqueID, name); err != nil {
			b.log.Warn("fix-names: rename failed", "unique_id", e.UniqueID, "error", err)
			continue
		}
		result.Repaired++
		result.Entities = append(result.Entities, e.EntityID)
	}
	return result, nil
}
