package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/healthbridge/internal/metric"
	"github.com/meltforce/healthbridge/internal/models"
)

// Device metadata is fixed: one logical device per user, described the same
// way everywhere.
const (
	deviceManufacturer = "Health Bridge"
	deviceModel        = "Health Tracker"
	deviceSWVersion    = "1.0"
)

// DeviceID derives the row UUID from the device identifier, so the same user
// always maps to the same device row regardless of which process created it.
func DeviceID(identifier string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(identifier))
}

// GetOrCreateDevice finds or creates the per-user device. Repeated calls for
// the same user return the same row.
func (db *DB) GetOrCreateDevice(ctx context.Context, userID string) (models.DeviceRow, error) {
	identifier := metric.DeviceIdentifier(userID)
	row := models.DeviceRow{
		ID:           DeviceID(identifier),
		Identifier:   identifier,
		UserID:       userID,
		Name:         fmt.Sprintf("Health Bridge (%s)", userID),
		Manufacturer: deviceManufacturer,
		Model:        deviceModel,
		SWVersion:    deviceSWVersion,
	}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO devices (id, identifier, user_id, name, manufacturer, model, sw_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (identifier) DO UPDATE
			SET name = EXCLUDED.name
		RETURNING created_at
	`, row.ID, row.Identifier, row.UserID, row.Name, row.Manufacturer, row.Model, row.SWVersion).Scan(&row.CreatedAt)
	if err != nil {
		return models.DeviceRow{}, fmt.Errorf("upserting device %s: %w", identifier, err)
	}
	return row, nil
}

// ListDevices returns all devices, newest first.
func (db *DB) ListDevices(ctx context.Context) ([]models.DeviceRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, identifier, user_id, name, manufacturer, model, sw_version, created_at
		FROM devices
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var result []models.DeviceRow
	for rows.Next() {
		var d models.DeviceRow
		if err := rows.Scan(&d.ID, &d.Identifier, &d.UserID, &d.Name,
			&d.Manufacturer, &d.Model, &d.SWVersion, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
