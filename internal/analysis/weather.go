package analysis

import (
	"strings"

	"buildtrack-backend/internal/projects"
)

// Adverse weather conditions. Clouds count only in the same-day delay
// heuristic, never in risk scoring.
var adverseConditions = map[string]struct{}{
	"Rain":         {},
	"Snow":         {},
	"Thunderstorm": {},
}

// WeatherSignal summarizes adverse weather frequency over a window.
type WeatherSignal struct {
	AdverseRate  float64 `json:"adverseRatePct"`
	AdverseCount int     `json:"adverseCount"`
	WindowSize   int     `json:"windowSize"`
}

// AnalyzeWeather counts reports with an adverse condition among the most
// recent `window` reports.
func AnalyzeWeather(reports []projects.DailyReport, window int) WeatherSignal {
	recent := lastReports(reports, window)

	count := 0
	for _, report := range recent {
		if report.Weather == nil {
			continue
		}
		if isAdverse(report.Weather.Condition, false) {
			count++
		}
	}

	signal := WeatherSignal{AdverseCount: count, WindowSize: len(recent)}
	if len(recent) > 0 {
		signal.AdverseRate = float64(count) / float64(len(recent)) * 100
	}
	return signal
}

func isAdverse(condition string, includeClouds bool) bool {
	trimmed := strings.TrimSpace(condition)
	if _, ok := adverseConditions[trimmed]; ok {
		return true
	}
	return includeClouds && trimmed == "Clouds"
}
