package analysis

import (
	"time"

	"buildtrack-backend/internal/projects"
)

// AssessSnapshot is the additive risk strategy behind the per-project
// risk-assessment view. It scores from a base value with fixed increments and
// its own level breakpoints. It is deliberately separate from AssessRisk;
// callers depend on each strategy's exact numbers.
func AssessSnapshot(project projects.Project, reports []projects.DailyReport, now time.Time) (SnapshotAssessment, error) {
	window, err := ComputeWindow(project.StartDate, project.EndDate, now)
	if err != nil {
		return SnapshotAssessment{}, err
	}

	score := 20.0
	factors := []string{}

	variance := project.CurrentProgress - window.ExpectedProgress
	switch {
	case variance < -20:
		score += 40
		factors = append(factors, "Severely behind expected progress")
	case variance < -10:
		score += 25
		factors = append(factors, "Behind expected progress")
	case variance < -5:
		score += 10
		factors = append(factors, "Slightly behind expected progress")
	}

	if project.TotalBudget > 10_000_000 {
		score += 10
		factors = append(factors, "Large budget exposure")
	}

	if window.RemainingDays < 30 && project.CurrentProgress < 80 {
		score += 20
		factors = append(factors, "Timeline pressure")
	}

	if len(project.Resources) > 15 {
		score += 10
		factors = append(factors, "Complex resource plan")
	}

	recent := AnalyzeQuality(reports, recentIssuesWindow)
	if recent.IssueCount > 2 {
		score += 15
		factors = append(factors, "Multiple recent issue reports")
	}

	score = clamp(score, 0, 100)

	level := RiskCritical
	switch {
	case score < 50:
		level = RiskLow
	case score < 70:
		level = RiskMedium
	case score < 90:
		level = RiskHigh
	}

	return SnapshotAssessment{Score: score, Level: level, Factors: factors}, nil
}
