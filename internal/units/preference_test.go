package units

import (
	"math"
	"testing"

	"github.com/meltforce/healthbridge/internal/metric"
)

// TestConvertMass verifies the grams/ounces conversion and the native
// default.
func TestConvertMass(t *testing.T) {
	v, unit := ConvertMass(100, "oz")
	if math.Abs(v-3.5274) > 0.0001 || unit != "oz" {
		t.Errorf("ConvertMass(100, oz) = (%v, %q), want (≈3.5274, oz)", v, unit)
	}
	v, unit = ConvertMass(100, "g")
	if v != 100 || unit != "g" {
		t.Errorf("ConvertMass(100, g) = (%v, %q), want (100, g)", v, unit)
	}
	// Unknown preference falls back to native.
	v, unit = ConvertMass(100, "stone")
	if v != 100 || unit != "g" {
		t.Errorf("ConvertMass(100, stone) = (%v, %q), want (100, g)", v, unit)
	}
}

// TestConvertVolume verifies the milliliters/fluid-ounces conversion and the
// native default.
func TestConvertVolume(t *testing.T) {
	v, unit := ConvertVolume(500, "fl oz")
	if math.Abs(v-16.907) > 0.001 || unit != "fl oz" {
		t.Errorf("ConvertVolume(500, fl oz) = (%v, %q), want (≈16.907, fl oz)", v, unit)
	}
	v, unit = ConvertVolume(500, "mL")
	if v != 500 || unit != "mL" {
		t.Errorf("ConvertVolume(500, mL) = (%v, %q), want (500, mL)", v, unit)
	}
}

// TestApplyPreferenceDietaryOnly verifies preferences touch exactly the four
// dietary metrics and leave everything else alone.
func TestApplyPreferenceDietaryOnly(t *testing.T) {
	v, unit, applied := ApplyPreference(metric.DietaryProtein, 100.0, "oz", "mL")
	if !applied || unit != "oz" {
		t.Fatalf("ApplyPreference protein = (%v, %q, %v)", v, unit, applied)
	}
	if f := v.(float64); math.Abs(f-3.5274) > 0.0001 {
		t.Errorf("protein in oz = %v, want ≈3.5274", f)
	}

	v, unit, applied = ApplyPreference(metric.DietaryWater, 500.0, "g", "fl oz")
	if !applied || unit != "fl oz" {
		t.Fatalf("ApplyPreference water = (%v, %q, %v)", v, unit, applied)
	}

	if _, _, applied = ApplyPreference(metric.BodyMass, 72.0, "oz", "fl oz"); applied {
		t.Error("ApplyPreference converted body_mass; preferences are dietary-only")
	}
	if _, _, applied = ApplyPreference(metric.Steps, 9000.0, "oz", "fl oz"); applied {
		t.Error("ApplyPreference converted steps; preferences are dietary-only")
	}
}

// TestApplyPreferenceNonNumeric verifies non-numeric dietary values pass
// through unconverted.
func TestApplyPreferenceNonNumeric(t *testing.T) {
	v, unit, applied := ApplyPreference(metric.DietaryWater, "lots", "g", "fl oz")
	if applied || unit != "" || v != "lots" {
		t.Errorf("ApplyPreference non-numeric = (%v, %q, %v), want pass-through", v, unit, applied)
	}
}
