package pipeline

import (
	"time"

	"github.com/cleanshores/shorecast/internal/common"
)

// TodayLabel is the label of the first forecast entry; later entries get
// their weekday name.
const TodayLabel = "Today"

// buildSnapshot assembles the render-ready snapshot from the primary's day
// readings and, when present, the secondary's point reading. Day order is
// preserved exactly as the source returned it.
func buildSnapshot(loc *Location, days []DayReading, obs Observation, haveObs bool) Snapshot {
	snap := Snapshot{
		Location:  loc,
		FetchedAt: time.Now().UTC(),
	}

	snap.Days = make([]DayForecast, 0, len(days))
	for i, d := range days {
		label := TodayLabel
		if i > 0 {
			label = d.Date.Weekday().String()
		}
		snap.Days = append(snap.Days, DayForecast{
			Date:        d.Date,
			Label:       label,
			HighC:       d.HighC,
			LowC:        d.LowC,
			HumidityPct: d.HumidityPct,
			Condition:   d.Condition,
		})
	}

	// The forecast is canonical for condition text; the realtime reading
	// only fills the gap when the forecast entry carries none.
	snap.ConditionText = days[0].Condition
	if snap.ConditionText == "" && haveObs {
		snap.ConditionText = obs.Condition
	}
	snap.ConditionCode = MapCondition(snap.ConditionText)

	if haveObs {
		snap.TemperatureC = obs.TemperatureC
		snap.FeelsLikeC = obs.FeelsLikeC
		snap.WindSpeedMS = obs.WindSpeedMS
		snap.VisibilityM = obs.VisibilityM
		snap.HumidityPct = obs.HumidityPct
	} else {
		snap.TemperatureC = days[0].HighC
	}
	if snap.HumidityPct == nil {
		h := days[0].HumidityPct
		snap.HumidityPct = &h
	}

	return snap
}

// MapCondition folds free-form condition text into a normalized code.
// Matching is by lowercase substring; rain-like text wins over cloud cover.
func MapCondition(text string) Condition {
	switch {
	case text == "":
		return ConditionUnknown
	case common.HasAny(text, "thunder", "storm"):
		return ConditionStorm
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return ConditionRain
	case common.HasAny(text, "snow", "sleet", "blizzard"):
		return ConditionSnow
	case common.HasAny(text, "mist", "fog", "haze"):
		return ConditionMist
	case common.HasAny(text, "cloud", "overcast"):
		return ConditionCloudy
	case common.HasAny(text, "sunny", "clear"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}
