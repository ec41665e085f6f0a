package bridge

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/healthbridge/internal/metric"
	"github.com/meltforce/healthbridge/internal/models"
	"github.com/meltforce/healthbridge/internal/units"
)

// Sync processes one webhook delivery. Per-metric failures are isolated and
// counted as skips; an error return means nothing at all could be processed
// (the device row could not be resolved).
func (b *Bridge) Sync(ctx context.Context, payload *models.WebhookPayload) (*Result, error) {
	user := payload.User()
	result := &Result{UserID: user, Status: StatusOK}

	// The marker is best-effort telemetry and is attempted even when the
	// token check below rejects the payload.
	b.writeSyncMarker(ctx, user, result)

	if b.token != "" && payload.Token != "" && payload.Token != b.token {
		b.log.Warn("token mismatch; ignoring payload", "user", user)
		result.Status = StatusRejected
		return result, nil
	}

	if _, ok := payload.Data[metric.TestConnection]; ok {
		result.Status = StatusTestAck
		result.Notices = append(result.Notices, Notice{
			NotificationID: "health_bridge_test_success",
			Title:          "Health Bridge",
			Message:        "Health Bridge connection successful!",
		})
		return result, nil
	}

	if len(payload.Data) == 0 {
		b.log.Debug("webhook had no health data", "user", user)
		result.Status = StatusEmpty
		return result, nil
	}

	device, err := b.store.GetOrCreateDevice(ctx, user)
	if err != nil {
		return result, fmt.Errorf("resolving device for %s: %w", user, err)
	}

	massPref, volumePref := b.Preferences()
	for name, datapoints := range payload.Data {
		result.MetricsReceived++
		b.processMetric(ctx, device.ID, user, name, datapoints, massPref, volumePref, result)
	}

	return result, nil
}

// processMetric runs one metric through the pipeline. A panic or error here
// must not abort sibling metrics, so both degrade to a logged skip.
func (b *Bridge) processMetric(ctx context.Context, deviceID uuid.UUID, user, name string, datapoints []models.Datapoint, massPref, volumePref string, result *Result) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("metric processing panicked", "metric", name, "user", user, "panic", r)
			result.Skipped++
		}
	}()

	if len(datapoints) == 0 {
		b.log.Debug("metric had no datapoints", "metric", name, "user", user)
		result.Skipped++
		return
	}
	// Only the last datapoint is consumed; no history is kept.
	latest := datapoints[len(datapoints)-1].Value
	if latest == nil {
		b.log.Debug("latest datapoint had no value", "metric", name, "user", user)
		result.Skipped++
		return
	}

	key := metric.Resolve(name)
	value := units.Normalize(key, latest)
	attrs := entityAttributes(key, user)
	if converted, unit, applied := units.ApplyPreference(key, value, massPref, volumePref); applied {
		value = converted
		attrs["unit_of_measurement"] = unit
	}

	entity, created, err := b.identities.getOrCreate(ctx, b.store, user, key, deviceID)
	if err != nil {
		b.log.Warn("skipping metric: identity resolution failed", "metric", key, "user", user, "error", err)
		result.Skipped++
		return
	}

	err = b.store.UpsertEntityState(ctx, models.EntityStateRow{
		EntityID:   entity.EntityID,
		State:      formatState(value),
		Attributes: attrs,
	})
	if err != nil {
		b.log.Warn("skipping metric: state write failed", "metric", key, "user", user, "error", err)
		result.Skipped++
		return
	}

	if created {
		result.Created++
		result.CreatedEntities = append(result.CreatedEntities, entity.EntityID)
	} else {
		result.Updated++
	}
}

// writeSyncMarker refreshes the per-user last-sync entity, at most once per
// minimum interval. Failures are logged and never affect the sync itself.
func (b *Bridge) writeSyncMarker(ctx context.Context, user string, result *Result) {
	now := b.now()
	if !b.marker.allow(user, now) {
		b.log.Debug("skipping last_sync_time update", "user", user)
		return
	}

	device, err := b.store.GetOrCreateDevice(ctx, user)
	if err != nil {
		b.log.Warn("last_sync_time: device resolution failed", "user", user, "error", err)
		return
	}
	entity, _, err := b.identities.getOrCreate(ctx, b.store, user, metric.LastSyncTime, device.ID)
	if err != nil {
		b.log.Warn("last_sync_time: identity resolution failed", "user", user, "error", err)
		return
	}
	err = b.store.UpsertEntityState(ctx, models.EntityStateRow{
		EntityID:   entity.EntityID,
		State:      now.UTC().Format(time.RFC3339),
		Attributes: entityAttributes(metric.LastSyncTime, user),
	})
	if err != nil {
		b.log.Warn("last_sync_time: state write failed", "user", user, "error", err)
		return
	}
	result.MarkerUpdated = true
}

// entityAttributes builds the state attributes for a metric from its schema.
func entityAttributes(key, userID string) map[string]any {
	schema := metric.Schema(key)
	attrs := map[string]any{
		"friendly_name": metric.DisplayName(key, userID),
	}
	if schema.NativeUnit != "" {
		attrs["unit_of_measurement"] = schema.NativeUnit
	}
	if schema.DeviceClass != "" {
		attrs["device_class"] = schema.DeviceClass
	}
	if schema.StateClass != "" {
		attrs["state_class"] = schema.StateClass
	}
	if schema.Icon != "" {
		attrs["icon"] = schema.Icon
	}
	return attrs
}

// formatState renders a normalized value as entity state text.
func formatState(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
