package pipeline

import "github.com/cleanshores/shorecast/internal/common"

// User-facing recommendation messages, one per rule.
const (
	RecommendationSevere  = "Severe weather expected. Postpone the cleanup and stay off the beach."
	RecommendationGear    = "Rain is likely. Bring waterproof gear if the cleanup goes ahead."
	RecommendationHeat    = "High heat expected. Start early and bring plenty of water and sun protection."
	RecommendationClear   = "Great conditions for a beach cleanup. See you on the sand!"
	RecommendationNeutral = "Conditions look OK for a cleanup."
)

// Recommend derives the cleanup recommendation from a snapshot. It is a pure
// function: same snapshot, same message. Rules are checked in a fixed
// precedence order and exactly one message is produced:
//
//  1. severe weather (thunder / storm)
//  2. any rain, shower or drizzle mention
//  3. day high above the heat threshold
//  4. clear or sunny conditions
//  5. neutral default
//
// The temperature check deliberately precedes the clear/sunny check, so a
// clear 34°C day yields the heat warning rather than the positive message.
func Recommend(snap Snapshot, heatThresholdC float64) string {
	if heatThresholdC <= 0 {
		heatThresholdC = DefaultHeatThresholdC
	}

	text := snap.ConditionText

	switch {
	case common.HasAny(text, "thunder", "storm"):
		return RecommendationSevere
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return RecommendationGear
	case dayHigh(snap) > heatThresholdC:
		return RecommendationHeat
	case common.HasAny(text, "clear", "sunny"):
		return RecommendationClear
	default:
		return RecommendationNeutral
	}
}

// dayHigh is the temperature the heat rule inspects: today's forecast high
// when a forecast is present, otherwise the current reading.
func dayHigh(snap Snapshot) float64 {
	if len(snap.Days) > 0 {
		return snap.Days[0].HighC
	}
	return snap.TemperatureC
}
