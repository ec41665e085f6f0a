package units

import "github.com/meltforce/healthbridge/internal/metric"

const (
	gramsPerOunce            = 28.349523125
	millilitersPerFluidOunce = 29.5735295625
)

// ConvertMass applies the nutrient mass preference. Grams are native; "oz"
// divides down, any other preference returns grams unchanged.
func ConvertMass(value float64, pref string) (float64, string) {
	if pref == "oz" {
		return value / gramsPerOunce, "oz"
	}
	return value, "g"
}

// ConvertVolume applies the water volume preference. Milliliters are native;
// "fl oz" divides down, any other preference returns milliliters unchanged.
func ConvertVolume(value float64, pref string) (float64, string) {
	if pref == "fl oz" {
		return value / millilitersPerFluidOunce, "fl oz"
	}
	return value, "mL"
}

// ApplyPreference converts a normalized value for the four dietary metrics
// and reports the display unit. Every other metric returns applied=false and
// the value untouched; preferences never affect native storage of anything
// outside the dietary set.
func ApplyPreference(key string, value any, massPref, volumePref string) (converted any, unit string, applied bool) {
	f, ok := coerceFloat(value)
	if !ok {
		return value, "", false
	}
	switch key {
	case metric.DietaryCarbohydrates, metric.DietaryFat, metric.DietaryProtein:
		v, u := ConvertMass(f, massPref)
		return v, u, true
	case metric.DietaryWater:
		v, u := ConvertVolume(f, volumePref)
		return v, u, true
	default:
		return value, "", false
	}
}
