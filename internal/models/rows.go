package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceRow groups a user's sensors, one device per user.
type DeviceRow struct {
	ID           uuid.UUID `json:"id"`
	Identifier   string    `json:"identifier"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Model        string    `json:"model"`
	SWVersion    string    `json:"sw_version"`
	CreatedAt    time.Time `json:"created_at"`
}

// SensorEntityRow is the durable identity of one (user, metric) sensor.
type SensorEntityRow struct {
	UniqueID  string    `json:"unique_id"`
	EntityID  string    `json:"entity_id"`
	UserID    string    `json:"user_id"`
	MetricKey string    `json:"metric_key"`
	Name      string    `json:"name"`
	DeviceID  uuid.UUID `json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityStateRow is the latest reading for an entity. One row per entity;
// history is deliberately not kept.
type EntityStateRow struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NotificationRow is a persistent notification; rows with the same
// NotificationID replace each other.
type NotificationRow struct {
	ID             uuid.UUID `json:"id"`
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// SyncLogRow records the outcome of one webhook delivery or force-creation.
type SyncLogRow struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"user_id"`
	Status          string    `json:"status"`
	MetricsReceived int       `json:"metrics_received"`
	Created         int       `json:"created"`
	Updated         int       `json:"updated"`
	Skipped         int       `json:"skipped"`
	ReceivedAt      time.Time `json:"received_at"`
}

// UnitPreferencesRow is the persisted display-unit selection. A single row
// per installation; updates replace it.
type UnitPreferencesRow struct {
	NutrientMass string    `json:"nutrient_mass_unit"`
	WaterVolume  string    `json:"water_volume_unit"`
	UpdatedAt    time.Time `json:"updated_at"`
}
