package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/healthbridge/internal/models"
)

// UpsertEntity creates or refreshes an entity registry row and reports
// whether the row was newly inserted. The unique_id key makes the operation
// idempotent: two calls for the same (user, metric) always land on one row.
// The display name is rewritten on every call so it stays enforced.
func (db *DB) UpsertEntity(ctx context.Context, row models.SensorEntityRow) (models.SensorEntityRow, bool, error) {
	var inserted bool
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO entities (unique_id, entity_id, user_id, metric_key, name, device_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (unique_id) DO UPDATE
			SET name = EXCLUDED.name, updated_at = NOW()
		RETURNING created_at, updated_at, (xmax = 0)
	`, row.UniqueID, row.EntityID, row.UserID, row.MetricKey, row.Name, row.DeviceID).
		Scan(&row.CreatedAt, &row.UpdatedAt, &inserted)
	if err != nil {
		return models.SensorEntityRow{}, false, fmt.Errorf("upserting entity %s: %w", row.UniqueID, err)
	}
	return row, inserted, nil
}

// ListEntities returns sensor entities, optionally filtered by user.
func (db *DB) ListEntities(ctx context.Context, userID string) ([]models.SensorEntityRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT unique_id, entity_id, user_id, metric_key, name, device_id, created_at, updated_at
		FROM entities
		WHERE $1 = '' OR user_id = $1
		ORDER BY entity_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()
	return scanEntities(rows)
}

// ListUnnamedEntities returns entities whose display name is missing.
// The fix-names maintenance operation repairs these.
func (db *DB) ListUnnamedEntities(ctx context.Context) ([]models.SensorEntityRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT unique_id, entity_id, user_id, metric_key, name, device_id, created_at, updated_at
		FROM entities
		WHERE name = ''
		ORDER BY entity_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying unnamed entities: %w", err)
	}
	defer rows.Close()
	return scanEntities(rows)
}

func scanEntities(rows pgx.Rows) ([]models.SensorEntityRow, error) {
	var result []models.SensorEntityRow
	for rows.Next() {
		var e models.SensorEntityRow
		if err := rows.Scan(&e.UniqueID, &e.EntityID, &e.UserID, &e.MetricKey,
			&e.Name, &e.DeviceID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// UpdateEntityName sets the display name for an entity.
func (db *DB) UpdateEntityName(ctx context.Context, uniqueID, name string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE entities SET name = $2, updated_at = NOW() WHERE unique_id = $1
	`, uniqueID, name)
	if err != nil {
		return fmt.Errorf("updating entity name %s: %w", uniqueID, err)
	}
	return nil
}

// UpsertEntityState replaces the latest reading for an entity. One row per
// entity; no history is kept.
func (db *DB) UpsertEntityState(ctx context.Context, row models.EntityStateRow) error {
	attrs, err := json.Marshal(row.Attributes)
	if err != nil {
		return fmt.Errorf("encoding attributes for %s: %w", row.EntityID, err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO entity_states (entity_id, state, attributes, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (entity_id) DO UPDATE
			SET state = EXCLUDED.state, attributes = EXCLUDED.attributes, updated_at = NOW()
	`, row.EntityID, row.State, attrs)
	if err != nil {
		return fmt.Errorf("upserting state for %s: %w", row.EntityID, err)
	}
	return nil
}

// LatestStates returns the latest reading per entity, optionally filtered
// by user.
func (db *DB) LatestStates(ctx context.Context, userID string) ([]models.EntityStateRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT s.entity_id, s.state, s.attributes, s.updated_at
		FROM entity_states s
		JOIN entities e ON e.entity_id = s.entity_id
		WHERE $1 = '' OR e.user_id = $1
		ORDER BY s.entity_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying latest states: %w", err)
	}
	defer rows.Close()

	var result []models.EntityStateRow
	for rows.Next() {
		var s models.EntityStateRow
		var attrs []byte
		if err := rows.Scan(&s.EntityID, &s.State, &attrs, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning state: %w", err)
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &s.Attributes); err != nil {
				return nil, fmt.Errorf("decoding attributes for %s: %w", s.EntityID, err)
			}
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
