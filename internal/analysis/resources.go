package analysis

import "buildtrack-backend/internal/projects"

// Report windows used across the analyzers. Risk scoring looks at a short
// recent window; trend and utilization figures use longer ones.
const (
	shortageRiskWindow  = 5
	utilizationWindow   = 10
	weatherRiskWindow   = 10
	weatherTrendWindow  = 15
	qualityRiskWindow   = 10
	recentIssuesWindow  = 5
	velocityWindow      = 10
	progressTrendWindow = 30
)

// ResourceSignal summarizes resource coverage over a window of reports.
type ResourceSignal struct {
	ShortageRate float64 `json:"shortageRatePct"`
	Utilization  float64 `json:"utilizationPct"`
	TotalChecks  int     `json:"totalChecks"`
}

// AnalyzeResources scans the most recent `window` reports' resource rows and
// computes the shortage rate and average utilization. An empty window yields
// the zero signal.
func AnalyzeResources(reports []projects.DailyReport, window int) ResourceSignal {
	recent := lastReports(reports, window)

	checks := 0
	shortages := 0
	utilizationSum := 0.0
	for _, report := range recent {
		for _, row := range report.ResourceUsage {
			checks++
			if row.Required > row.Available {
				shortages++
			}
			utilizationSum += rowUtilization(row)
		}
	}

	signal := ResourceSignal{TotalChecks: checks}
	if checks > 0 {
		signal.ShortageRate = float64(shortages) / float64(checks) * 100
		signal.Utilization = utilizationSum / float64(checks)
	}
	return signal
}

func rowUtilization(row projects.ResourceUsage) float64 {
	if row.Available <= 0 {
		return 0
	}
	pct := row.Required / row.Available * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// lastReports returns the trailing `n` reports, preserving chronological
// order. Callers pass reports sorted by date ascending.
func lastReports(reports []projects.DailyReport, n int) []projects.DailyReport {
	if n <= 0 || len(reports) <= n {
		return reports
	}
	return reports[len(reports)-n:]
}
