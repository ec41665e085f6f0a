package metric

import "testing"

// TestSchemaKnownComplete verifies Known and the schema table agree, so
// force-creation and catalog listings cover exactly the defined metrics.
func TestSchemaKnownComplete(t *testing.T) {
	seen := make(map[string]bool, len(Known))
	for _, key := range Known {
		if seen[key] {
			t.Errorf("Known lists %q twice", key)
		}
		seen[key] = true
		if !IsKnown(key) {
			t.Errorf("Known lists %q but schema has no entry", key)
		}
	}
	for key := range schema {
		if key == LastSyncTime {
			continue // marker entity, written by the orchestrator, not listed
		}
		if !seen[key] {
			t.Errorf("schema defines %q but Known does not list it", key)
		}
	}
}

// TestSchemaSpotChecks verifies representative entries carry the expected
// native units and statistics kinds.
func TestSchemaSpotChecks(t *testing.T) {
	cases := []struct {
		key        string
		unit       string
		stateClass string
	}{
		{BodyMass, "kg", StateMeasurement},
		{Height, "mm", StateMeasurement},
		{Steps, "steps", StateTotalIncreasing},
		{BloodGlucose, "mmol/L", StateMeasurement},
		{DietaryWater, "mL", StateTotalIncreasing},
		{SleepDuration, "min", StateMeasurement},
		{MindfulMinutes, "min", StateTotalIncreasing},
		{OxygenSaturation, "%", StateMeasurement},
	}
	for _, c := range cases {
		a := Schema(c.key)
		if a.NativeUnit != c.unit {
			t.Errorf("Schema(%q).NativeUnit = %q, want %q", c.key, a.NativeUnit, c.unit)
		}
		if a.StateClass != c.stateClass {
			t.Errorf("Schema(%q).StateClass = %q, want %q", c.key, a.StateClass, c.stateClass)
		}
	}
}

// TestSchemaUnknownIsZero verifies unknown keys return an empty schema rather
// than an error, since unrecognized metrics are still recorded.
func TestSchemaUnknownIsZero(t *testing.T) {
	a := Schema("grip_strength")
	if !a.IsZero() {
		t.Errorf("Schema for unknown key = %+v, want zero", a)
	}
}

// TestTestConnectionSchema verifies the probe sentinel has no unit or state
// class; it must never look like a real sensor.
func TestTestConnectionSchema(t *testing.T) {
	a := Schema(TestConnection)
	if a.NativeUnit != "" || a.StateClass != "" || a.DeviceClass != "" {
		t.Errorf("test_connection schema = %+v, want icon only", a)
	}
	if a.Icon == "" {
		t.Error("test_connection schema missing icon")
	}
}
