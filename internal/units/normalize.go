// Package units converts raw webhook values into each metric's native unit.
// The inbound protocol does not transmit units, so the source unit is sniffed
// from plausible magnitude ranges per metric.
package units

import (
	"math"
	"strconv"
	"strings"

	"github.com/meltforce/healthbridge/internal/metric"
)

// Converter adjusts one raw numeric reading into the metric's native unit.
type Converter func(float64) float64

// converters holds the specially handled metrics. Keys absent here pass
// through after numeric coercion.
var converters = map[string]Converter{
	metric.BodyMass:           gramsToKilograms,
	metric.Height:             heightToMillimeters,
	metric.WaistCircumference: waistToMillimeters,
	metric.WalkingStepLength:  stepLengthToMeters,

	metric.WalkingAsymmetryPercentage:      fractionToPercent,
	metric.WalkingDoubleSupportPercentage:  fractionToPercent,
	metric.OxygenSaturation:                fractionToPercent,
	metric.BodyFatPercentage:               fractionToPercent,

	metric.BloodGlucose: glucoseToMmolPerLiter,

	metric.SleepDuration:   durationToMinutes,
	metric.SleepREMHours:   durationToMinutes,
	metric.SleepCoreHours:  durationToMinutes,
	metric.SleepDeepHours:  durationToMinutes,
	metric.SleepAwakeHours: durationToMinutes,
	metric.MindfulMinutes:  durationToMinutes,
}

// Normalize converts a raw value into the native unit for key. Values that
// fail numeric coercion are returned unchanged rather than erroring; the
// pipeline tolerates non-numeric payloads for metrics it does not specially
// handle.
func Normalize(key string, raw any) any {
	f, ok := coerceFloat(raw)
	if !ok {
		return raw
	}
	if convert, ok := converters[key]; ok {
		return convert(f)
	}
	return f
}

// coerceFloat accepts JSON numbers and numeric strings. Booleans and
// structured values do not coerce.
func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Body mass arrives in grams or kilograms; no tracked body mass exceeds
// 250 kg, so larger readings are grams.
func gramsToKilograms(v float64) float64 {
	if v > 250 {
		return v / 1000
	}
	return v
}

// Height native unit is millimeters. Below 3 the reading is meters, 30–300
// is centimeters, anything else is already millimeters.
func heightToMillimeters(v float64) float64 {
	switch {
	case v < 3.0:
		return v * 1000
	case v >= 30 && v <= 300:
		return v * 10
	default:
		return math.Round(v)
	}
}

func waistToMillimeters(v float64) float64 {
	if v <= 300 {
		return v * 10
	}
	return v
}

func stepLengthToMeters(v float64) float64 {
	if v >= 3 && v <= 300 {
		return v / 100
	}
	return v
}

// Fractions in [0,1] scale to percent; out-of-range readings clamp to [0,100].
func fractionToPercent(v float64) float64 {
	switch {
	case v >= 0 && v <= 1:
		return v * 100
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Glucose above 20 is mg/dL and converts to mmol/L; at or below it is
// already mmol/L.
func glucoseToMmolPerLiter(v float64) float64 {
	if v > 20 {
		return math.Round(v*0.0555*100) / 100
	}
	return v
}

// Durations normalize to minutes: an hour or more of seconds divides down,
// a plausible hours reading (0.5–24) multiplies up, anything else is taken
// as minutes already.
func durationToMinutes(v float64) float64 {
	switch {
	case v >= 3600:
		return v / 60
	case v >= 0.5 && v <= 24:
		return v * 60
	default:
		return v
	}
}
