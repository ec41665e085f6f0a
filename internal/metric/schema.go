package metric

// Attributes describe how a metric is presented: the unit its normalized
// values are stored in, the statistics kind, an optional device classification,
// and an icon hint for frontends.
type Attributes struct {
	NativeUnit  string `json:"native_unit,omitempty"`
	DeviceClass string `json:"device_class,omitempty"`
	StateClass  string `json:"state_class,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// IsZero reports whether no schema is defined (unknown metric).
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// State classes understood by consumers of the entity attributes.
const (
	StateMeasurement     = "measurement"
	StateTotalIncreasing = "total_increasing"
)

// schema is the static display schema per canonical key. Sleep and mindfulness
// durations are minutes native; the normalizer guarantees values arrive in
// that unit.
var schema = map[string]Attributes{
	// Activity / movement
	Steps:          {NativeUnit: "steps", StateClass: StateTotalIncreasing, Icon: "mdi:walk"},
	Distance:       {NativeUnit: "m", DeviceClass: "distance", StateClass: StateTotalIncreasing, Icon: "mdi:map-marker-distance"},
	ActiveCalories: {NativeUnit: "kcal", StateClass: StateTotalIncreasing, Icon: "mdi:fire"},
	FlightsClimbed: {NativeUnit: "floors", StateClass: StateTotalIncreasing, Icon: "mdi:stairs-up"},
	WalkingSpeed:   {NativeUnit: "m/s", DeviceClass: "speed", StateClass: StateMeasurement, Icon: "mdi:run"},
	WalkingStepLength: {
		NativeUnit: "m", DeviceClass: "distance", StateClass: StateMeasurement, Icon: "mdi:ruler",
	},
	WalkingAsymmetryPercentage:     {NativeUnit: "%", StateClass: StateMeasurement, Icon: "mdi:axis-z-rotate-clockwise"},
	WalkingDoubleSupportPercentage: {NativeUnit: "%", StateClass: StateMeasurement, Icon: "mdi:human-handsup"},
	SwimmingDistance:               {NativeUnit: "m", DeviceClass: "distance", StateClass: StateTotalIncreasing, Icon: "mdi:swim"},
	SixMinuteWalkTestDistance:      {NativeUnit: "m", DeviceClass: "distance", StateClass: StateMeasurement, Icon: "mdi:walk"},
	StairAscentSpeed:               {NativeUnit: "m/s", DeviceClass: "speed", StateClass: StateMeasurement, Icon: "mdi:stairs-up"},
	StairDescentSpeed:              {NativeUnit: "m/s", DeviceClass: "speed", StateClass: StateMeasurement, Icon: "mdi:stairs-down"},

	// Body measures
	BodyMass:           {NativeUnit: "kg", DeviceClass: "weight", StateClass: StateMeasurement, Icon: "mdi:weight-kilogram"},
	Height:             {NativeUnit: "mm", DeviceClass: "distance", StateClass: StateMeasurement, Icon: "mdi:ruler"},
	BodyFatPercentage:  {NativeUnit: "%", StateClass: StateMeasurement, Icon: "mdi:human-handsup"},
	LeanBodyMass:       {NativeUnit: "kg", DeviceClass: "weight", StateClass: StateMeasurement, Icon: "mdi:dumbbell"},
	WaistCircumference: {NativeUnit: "mm", DeviceClass: "distance", StateClass: StateMeasurement, Icon: "mdi:tape-measure"},

	// Vitals
	BodyTemperature:         {NativeUnit: "°C", DeviceClass: "temperature", StateClass: StateMeasurement, Icon: "mdi:thermometer"},
	HeartRate:               {NativeUnit: "bpm", DeviceClass: "heart_rate", StateClass: StateMeasurement, Icon: "mdi:heart-pulse"},
	RestingHeartRate:        {NativeUnit: "bpm", DeviceClass: "heart_rate", StateClass: StateMeasurement, Icon: "mdi:heart"},
	WalkingHeartRateAverage: {NativeUnit: "bpm", DeviceClass: "heart_rate", StateClass: StateMeasurement, Icon: "mdi:walk"},
	HeartRateVariability:    {NativeUnit: "ms", StateClass: StateMeasurement, Icon: "mdi:waves"},
	VO2Max:                  {NativeUnit: "mL/kg/min", StateClass: StateMeasurement, Icon: "mdi:lungs"},
	BloodPressureSystolic:   {NativeUnit: "mmHg", DeviceClass: "pressure", StateClass: StateMeasurement, Icon: "mdi:heart-pulse"},
	BloodPressureDiastolic:  {NativeUnit: "mmHg", DeviceClass: "pressure", StateClass: StateMeasurement, Icon: "mdi:heart-pulse"},
	OxygenSaturation:        {NativeUnit: "%", StateClass: StateMeasurement, Icon: "mdi:lungs"},

	// Nutrition and glucose
	DietaryCarbohydrates: {NativeUnit: "g", DeviceClass: "weight", StateClass: StateTotalIncreasing, Icon: "mdi:food-apple"},
	DietaryFat:           {NativeUnit: "g", DeviceClass: "weight", StateClass: StateTotalIncreasing, Icon: "mdi:food-drumstick"},
	DietaryProtein:       {NativeUnit: "g", DeviceClass: "weight", StateClass: StateTotalIncreasing, Icon: "mdi:food-steak"},
	DietaryWater:         {NativeUnit: "mL", DeviceClass: "volume", StateClass: StateTotalIncreasing, Icon: "mdi:cup-water"},
	BloodGlucose:         {NativeUnit: "mmol/L", StateClass: StateMeasurement, Icon: "mdi:water-percent"},
	BasalEnergyBurned:    {NativeUnit: "kcal", StateClass: StateTotalIncreasing, Icon: "mdi:fire-alert"},

	// Sleep and breathing
	SleepDuration:   {NativeUnit: "min", DeviceClass: "duration", StateClass: StateMeasurement, Icon: "mdi:sleep"},
	SleepREMHours:   {NativeUnit: "min", DeviceClass: "duration", StateClass: StateMeasurement, Icon: "mdi:sleep"},
	SleepCoreHours:  {NativeUnit: "min", DeviceClass: "duration", StateClass: StateMeasurement, Icon: "mdi:sleep"},
	SleepDeepHours:  {NativeUnit: "min", DeviceClass: "duration", StateClass: StateMeasurement, Icon: "mdi:sleep"},
	SleepAwakeHours: {NativeUnit: "min", DeviceClass: "duration", StateClass: StateMeasurement, Icon: "mdi:sleep"},
	RespiratoryRate: {NativeUnit: "breaths/min", StateClass: StateMeasurement, Icon: "mdi:lungs"},
	MindfulMinutes:  {NativeUnit: "min", DeviceClass: "duration", StateClass: StateTotalIncreasing, Icon: "mdi:meditation"},

	// Audio exposure
	HeadphoneAudioExposure:     {NativeUnit: "dB", DeviceClass: "sound_pressure", StateClass: StateMeasurement, Icon: "mdi:headphones"},
	EnvironmentalAudioExposure: {NativeUnit: "dB", DeviceClass: "sound_pressure", StateClass: StateMeasurement, Icon: "mdi:volume-high"},

	// Connectivity / internal
	TestConnection: {Icon: "mdi:check-circle"},
	LastSyncTime:   {DeviceClass: "timestamp", Icon: "mdi:update"},
}

// Known lists every canonical key with a schema, in declaration order.
// Force-creation iterates this to pre-provision entities.
var Known = []string{
	Steps, Distance, ActiveCalories, FlightsClimbed, WalkingSpeed,
	WalkingStepLength, WalkingAsymmetryPercentage, WalkingDoubleSupportPercentage,
	SwimmingDistance, SixMinuteWalkTestDistance, StairAscentSpeed, StairDescentSpeed,
	BodyMass, Height, BodyFatPercentage, LeanBodyMass, WaistCircumference,
	BodyTemperature, HeartRate, RestingHeartRate, WalkingHeartRateAverage,
	HeartRateVariability, VO2Max, BloodPressureSystolic, BloodPressureDiastolic,
	OxygenSaturation,
	DietaryCarbohydrates, DietaryFat, DietaryProtein, DietaryWater,
	BloodGlucose, BasalEnergyBurned,
	SleepDuration, SleepREMHours, SleepCoreHours, SleepDeepHours, SleepAwakeHours,
	RespiratoryRate, MindfulMinutes,
	HeadphoneAudioExposure, EnvironmentalAudioExposure,
	TestConnection,
}

// Schema returns the display schema for a canonical key. Unknown keys return
// the zero value; their readings are still recorded, just undecorated.
func Schema(key string) Attributes {
	return schema[key]
}

// IsKnown reports whether key has a defined schema.
func IsKnown(key string) bool {
	_, ok := schema[key]
	return ok
}
