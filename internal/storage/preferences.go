package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/healthbridge/internal/models"
)

// GetUnitPreferences returns the persisted display-unit selection, or nil
// when none has been saved yet (the config file's values apply then).
func (db *DB) GetUnitPreferences(ctx context.Context) (*models.UnitPreferencesRow, error) {
	var p models.UnitPreferencesRow
	err := db.Pool.QueryRow(ctx, `
		SELECT nutrient_mass_unit, water_volume_unit, updated_at
		FROM unit_preferences
	`).Scan(&p.NutrientMass, &p.WaterVolume, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying unit preferences: %w", err)
	}
	return &p, nil
}

// SaveUnitPreferences replaces the installation's display-unit selection.
func (db *DB) SaveUnitPreferences(ctx context.Context, nutrientMass, waterVolume string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO unit_preferences (singleton, nutrient_mass_unit, water_volume_unit)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (singleton) DO UPDATE
			SET nutrient_mass_unit = EXCLUDED.nutrient_mass_unit,
			    water_volume_unit = EXCLUDED.water_volume_unit,
			    updated_at = NOW()
	`, nutrientMass, waterVolume)
	if err != nil {
		return fmt.Errorf("saving unit preferences: %w", err)
	}
	return nil
}
