package metric

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayNameOverrides replaces the generated title-case name for metrics
// whose key reads poorly when titled verbatim.
var displayNameOverrides = map[string]string{
	SleepDuration:   "Sleep Duration",
	SleepREMHours:   "REM Sleep Duration",
	SleepCoreHours:  "Light Sleep Duration",
	SleepDeepHours:  "Deep Sleep Duration",
	SleepAwakeHours: "Sleep Awake Duration",
	LastSyncTime:    "Last Sync Time",
}

// BaseName returns the user-independent display name for a metric, e.g.
// "Resting Heart Rate".
func BaseName(key string) string {
	if base, ok := displayNameOverrides[key]; ok {
		return base
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// DisplayName returns the user-facing entity name for a metric, e.g.
// "Resting Heart Rate (alice)". Overridden names keep the user suffix.
func DisplayName(key, userID string) string {
	return fmt.Sprintf("%s (%s)", BaseName(key), userID)
}

// UniqueID is the durable identity of a (metric, user) pair. It is
// deterministic, so the same logical sensor keeps its identity across
// restarts and cache loss.
func UniqueID(key, userID string) string {
	return fmt.Sprintf("%s_%s_%s", Domain, key, userID)
}

// EntityID is the addressable sensor ID derived from the same pair.
func EntityID(key, userID string) string {
	return fmt.Sprintf("sensor.%s_%s", key, userID)
}

// DeviceIdentifier groups all of a user's sensors under one device.
func DeviceIdentifier(userID string) string {
	return fmt.Sprintf("%s_%s", Domain, userID)
}

// ParseUniqueID splits a unique ID back into (metric key, user ID). The user
// ID is the segment after the last underscore, so multi-segment user IDs keep
// only their final segment; callers repairing names accept that.
func ParseUniqueID(uniqueID string) (key, userID string, ok bool) {
	rest, found := strings.CutPrefix(uniqueID, Domain+"_")
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(rest, "_")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}
