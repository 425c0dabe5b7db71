package analysis

import "buildtrack-backend/internal/projects"

// QualitySignal summarizes issue-day frequency over a window. A report is an
// issue day when its extra-budget reason is non-empty after trimming.
type QualitySignal struct {
	IssueRate  float64 `json:"issueRatePct"`
	IssueCount int     `json:"issueCount"`
}

// AnalyzeQuality counts issue reports among the most recent `window` reports.
func AnalyzeQuality(reports []projects.DailyReport, window int) QualitySignal {
	recent := lastReports(reports, window)

	count := 0
	for _, report := range recent {
		if report.HasIssue() {
			count++
		}
	}

	signal := QualitySignal{IssueCount: count}
	if len(recent) > 0 {
		signal.IssueRate = float64(count) / float64(len(recent)) * 100
	}
	return signal
}
