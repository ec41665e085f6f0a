// Package metric defines the canonical metric vocabulary: stable keys, the
// display schema for each key, alias resolution from external names, and the
// entity naming scheme built from (key, user).
package metric

// Domain prefixes every identifier this service creates.
const Domain = "health_bridge"

// Canonical metric keys. Every key has exactly one native unit and one display
// schema; external vocabulary is mapped onto these by Resolve.
const (
	// Activity / movement
	Steps                           = "steps"
	Distance                        = "distance"
	ActiveCalories                  = "active_calories"
	FlightsClimbed                  = "flights_climbed"
	WalkingSpeed                    = "walking_speed"
	WalkingStepLength               = "walking_step_length"
	WalkingAsymmetryPercentage      = "walking_asymmetry_percentage"
	WalkingDoubleSupportPercentage  = "walking_double_support_percentage"
	SwimmingDistance                = "swimming_distance"
	SixMinuteWalkTestDistance       = "six_minute_walk_test_distance"
	StairAscentSpeed                = "stair_ascent_speed"
	StairDescentSpeed               = "stair_descent_speed"

	// Body measures
	BodyMass           = "body_mass"
	Height             = "height"
	BodyFatPercentage  = "body_fat_percentage"
	LeanBodyMass       = "lean_body_mass"
	WaistCircumference = "waist_circumference"

	// Vitals
	BodyTemperature         = "body_temperature"
	HeartRate               = "heart_rate"
	RestingHeartRate        = "resting_heart_rate"
	WalkingHeartRateAverage = "walking_heart_rate_average"
	HeartRateVariability    = "heart_rate_variability"
	VO2Max                  = "vo2_max"
	BloodPressureSystolic   = "blood_pressure_systolic"
	BloodPressureDiastolic  = "blood_pressure_diastolic"
	OxygenSaturation        = "oxygen_saturation"

	// Nutrition and glucose
	DietaryCarbohydrates = "dietary_carbohydrates"
	DietaryFat           = "dietary_fat"
	DietaryProtein       = "dietary_protein"
	DietaryWater         = "dietary_water"
	BloodGlucose         = "blood_glucose"
	BasalEnergyBurned    = "basal_energy_burned"

	// Sleep and breathing
	SleepDuration   = "sleep_duration"
	SleepREMHours   = "sleep_rem_hours"
	SleepCoreHours  = "sleep_core_hours"
	SleepDeepHours  = "sleep_deep_hours"
	SleepAwakeHours = "sleep_awake_hours"
	RespiratoryRate = "respiratory_rate"
	MindfulMinutes  = "mindful_minutes"

	// Audio exposure
	HeadphoneAudioExposure     = "headphone_audio_exposure"
	EnvironmentalAudioExposure = "environmental_audio_exposure"

	// TestConnection is a connectivity probe sentinel. It is acknowledged and
	// discarded, never materialized as an entity.
	TestConnection = "test_connection"

	// LastSyncTime is the per-user sync marker entity, written by the
	// orchestrator itself rather than by inbound data.
	LastSyncTime = "last_sync_time"
)
