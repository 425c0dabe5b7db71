package analysis

import (
	"time"

	"buildtrack-backend/internal/projects"
)

// Category weights for the overall risk score.
const (
	weightTimeline = 0.30
	weightBudget   = 0.25
	weightResource = 0.20
	weightWeather  = 0.15
	weightQuality  = 0.10
)

// AssessRisk runs the five category scorers and combines them into the
// weighted overall assessment. Reports must be ordered by date ascending.
func AssessRisk(project projects.Project, reports []projects.DailyReport, now time.Time) (RiskAssessment, error) {
	window, err := ComputeWindow(project.StartDate, project.EndDate, now)
	if err != nil {
		return RiskAssessment{}, err
	}

	timeline := timelineRisk(project.CurrentProgress, window)
	budget := budgetRisk(project.TotalBudget, AnalyzeBudget(project.TotalBudget, project.CurrentProgress, reports))
	resource := resourceRisk(project, AnalyzeResources(reports, shortageRiskWindow))
	weather := weatherRisk(AnalyzeWeather(reports, weatherRiskWindow))
	quality := qualityRisk(AnalyzeQuality(reports, qualityRiskWindow))

	overall := timeline.Score*weightTimeline +
		budget.Score*weightBudget +
		resource.Score*weightResource +
		weather.Score*weightWeather +
		quality.Score*weightQuality
	overall = clamp(overall, 0, 100)

	probability := clamp(100-overall, 10, 95)
	level := RiskLow
	switch {
	case probability >= 70:
		level = RiskHigh
	case probability >= 40:
		level = RiskMedium
	}

	return RiskAssessment{
		OverallScore:       overall,
		OverallLevel:       level,
		SuccessProbability: probability,
		Timeline:           timeline,
		Budget:             budget,
		Resource:           resource,
		Weather:            weather,
		Quality:            quality,
	}, nil
}

func timelineRisk(actualProgress float64, window Window) RiskCategory {
	variance := actualProgress - window.ExpectedProgress

	category := RiskCategory{Level: RiskLow, Score: 20, Factors: []string{}}
	switch {
	case variance < -20 || window.RemainingDays < 0:
		category.Level, category.Score = RiskCritical, 90
	case variance < -10 || window.RemainingDays < 7:
		category.Level, category.Score = RiskHigh, 70
	case variance < -5 || window.RemainingDays < 14:
		category.Level, category.Score = RiskMedium, 50
	}

	if variance < -10 {
		category.Factors = append(category.Factors, "Behind schedule")
	}
	if window.RemainingDays < 14 {
		category.Factors = append(category.Factors, "Tight deadline")
	}
	if actualProgress < 10 && float64(window.ElapsedDays) > 0.3*float64(window.TotalDays) {
		category.Factors = append(category.Factors, "Slow start")
	}
	return category
}

func budgetRisk(totalBudget float64, signal BudgetSignal) RiskCategory {
	category := RiskCategory{Level: RiskLow, Score: 15, Factors: []string{}}
	switch {
	case signal.UtilizationPct > 90 || signal.Efficiency < 0.7 || signal.TotalExtra > 0.2*totalBudget:
		category.Level, category.Score = RiskCritical, 85
	case signal.UtilizationPct > 75 || signal.Efficiency < 0.8 || signal.TotalExtra > 0.1*totalBudget:
		category.Level, category.Score = RiskHigh, 65
	case signal.UtilizationPct > 60 || signal.Efficiency < 0.9 || signal.TotalExtra > 0.05*totalBudget:
		category.Level, category.Score = RiskMedium, 40
	}

	if signal.UtilizationPct > 75 {
		category.Factors = append(category.Factors, "High budget utilization")
	}
	if signal.TotalExtra > 0 {
		category.Factors = append(category.Factors, "Extra budget spend recorded")
	}
	return category
}

func resourceRisk(project projects.Project, signal ResourceSignal) RiskCategory {
	category := RiskCategory{Level: RiskLow, Score: 10, Factors: []string{}}
	switch {
	case signal.ShortageRate > 50:
		category.Level, category.Score = RiskCritical, 80
	case signal.ShortageRate > 30:
		category.Level, category.Score = RiskHigh, 60
	case signal.ShortageRate > 15:
		category.Level, category.Score = RiskMedium, 35
	}

	if signal.ShortageRate > 30 {
		category.Factors = append(category.Factors, "Frequent resource shortages")
	}
	if project.ResourceCount(projects.ResourceHuman) < 3 {
		category.Factors = append(category.Factors, "Limited human resources")
	}
	if project.ResourceCount(projects.ResourceMaterial) < 5 {
		category.Factors = append(category.Factors, "Limited material diversity")
	}
	return category
}

func weatherRisk(signal WeatherSignal) RiskCategory {
	// No CRITICAL tier for weather.
	category := RiskCategory{Level: RiskLow, Score: 10, Factors: []string{}}
	switch {
	case signal.AdverseRate > 40:
		category.Level, category.Score = RiskHigh, 60
	case signal.AdverseRate > 20:
		category.Level, category.Score = RiskMedium, 35
	}

	if signal.AdverseCount > 0 {
		category.Factors = append(category.Factors, "Recent adverse weather")
	}
	return category
}

func qualityRisk(signal QualitySignal) RiskCategory {
	category := RiskCategory{Level: RiskLow, Score: 15, Factors: []string{}}
	switch {
	case signal.IssueRate > 50:
		category.Level, category.Score = RiskHigh, 70
	case signal.IssueRate > 25:
		category.Level, category.Score = RiskMedium, 40
	}

	if signal.IssueCount > 0 {
		category.Factors = append(category.Factors, "Reported issue days")
	}
	return category
}
