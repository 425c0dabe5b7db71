package analysis

import (
	"time"

	"buildtrack-backend/internal/projects"
)

func testProject() projects.Project {
	return projects.Project{
		ID:          "project-1",
		Name:        "Harbor Warehouse",
		Location:    "Hamburg",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		TotalBudget: 1_000_000,
		Resources: []projects.ResourceDefinition{
			{Name: "Mason", Type: projects.ResourceHuman, CostPerUnit: 280},
			{Name: "Electrician", Type: projects.ResourceHuman, CostPerUnit: 350},
			{Name: "Foreman", Type: projects.ResourceHuman, CostPerUnit: 420},
			{Name: "Concrete", Type: projects.ResourceMaterial, CostPerUnit: 95},
			{Name: "Steel", Type: projects.ResourceMaterial, CostPerUnit: 700},
			{Name: "Timber", Type: projects.ResourceMaterial, CostPerUnit: 240},
			{Name: "Bricks", Type: projects.ResourceMaterial, CostPerUnit: 55},
			{Name: "Glass", Type: projects.ResourceMaterial, CostPerUnit: 180},
			{Name: "Crane", Type: projects.ResourceEquipment, CostPerUnit: 1500},
		},
	}
}

func reportOn(day int) projects.DailyReport {
	return projects.DailyReport{
		ID:         "report-" + time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC).Format("20060102"),
		ProjectID:  "project-1",
		ReportDate: time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC),
	}
}

func reportsWithShortage(n int, required, available float64) []projects.DailyReport {
	out := make([]projects.DailyReport, 0, n)
	for i := 0; i < n; i++ {
		report := reportOn(i + 1)
		report.ResourceUsage = []projects.ResourceUsage{
			{Name: "Mason", Type: projects.ResourceHuman, Required: required, Available: available},
		}
		out = append(out, report)
	}
	return out
}

func reportsWithWeather(conditions ...string) []projects.DailyReport {
	out := make([]projects.DailyReport, 0, len(conditions))
	for i, condition := range conditions {
		report := reportOn(i + 1)
		if condition != "" {
			report.Weather = &projects.WeatherSnapshot{Condition: condition, Temperature: 10}
		}
		out = append(out, report)
	}
	return out
}
