package metric

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// aliases maps cleaned external names (lowercase, single-spaced) to canonical
// keys. Only genuinely different vocabulary needs an entry: a spaced spelling
// of a canonical key ("heart rate") already resolves via the fallback
// transform.
var aliases = map[string]string{
	"weight":           BodyMass,
	"body weight":      BodyMass,
	"weight_body_mass": BodyMass,

	"step count": Steps,
	"step_count": Steps,

	"active energy":        ActiveCalories,
	"active_energy":        ActiveCalories,
	"active energy burned": ActiveCalories,
	"active_energy_burned": ActiveCalories,

	"basal energy":   BasalEnergyBurned,
	"basal_energy":   BasalEnergyBurned,
	"resting energy": BasalEnergyBurned,

	"hrv":                         HeartRateVariability,
	"heart_rate_variability_sdnn": HeartRateVariability,
	"heart rate variability sdnn": HeartRateVariability,

	"spo2":                    OxygenSaturation,
	"blood oxygen":            OxygenSaturation,
	"blood_oxygen_saturation": OxygenSaturation,

	"sleep":          SleepDuration,
	"sleep analysis": SleepDuration,
	"sleep_analysis": SleepDuration,

	"glucose":     BloodGlucose,
	"blood sugar": BloodGlucose,

	"body fat": BodyFatPercentage,
	"body_fat": BodyFatPercentage,

	"water": DietaryWater,

	"carbs":         DietaryCarbohydrates,
	"carbohydrates": DietaryCarbohydrates,

	"protein": DietaryProtein,

	"total fat": DietaryFat,
	"total_fat": DietaryFat,

	"mindfulness":     MindfulMinutes,
	"mindful session": MindfulMinutes,
	"mindful_session": MindfulMinutes,

	"walking running distance": Distance,
	"distance_walking_running": Distance,

	"vo2max": VO2Max,

	"six minute walking test distance": SixMinuteWalkTestDistance,
	"six_minute_walking_test_distance": SixMinuteWalkTestDistance,

	"stair speed up":   StairAscentSpeed,
	"stair_speed_up":   StairAscentSpeed,
	"stair speed down": StairDescentSpeed,
	"stair_speed_down": StairDescentSpeed,
}

// Resolve maps a free-form external metric name to its canonical key.
// The input is trimmed, lowercased, and internal whitespace runs collapse to
// single spaces before lookup. Names without an alias entry pass through with
// spaces replaced by underscores, so unrecognized metrics still flow the
// pipeline under a best-effort key.
func Resolve(raw string) string {
	cleaned := whitespaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), " ")
	if key, ok := aliases[cleaned]; ok {
		return key
	}
	return strings.ReplaceAll(cleaned, " ", "_")
}
