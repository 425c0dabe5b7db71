package main

// Run the analytics engine against a seeded in-memory project and print the
// resulting payload:
//   go run ./cmd/analyzedemo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"buildtrack-backend/internal/analysis"
	"buildtrack-backend/internal/projects"
)

func main() {
	ctx := context.Background()
	repo := projects.NewMemoryRepo()
	engine := analysis.NewService(nil, "demo")

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := analysis.NewSubmitService(repo, engine)
	svc.Clock = func() time.Time { return now }

	projectSvc := projects.NewService(repo)
	project, err := projectSvc.Create(ctx, projects.CreateProjectInput{
		Name:        "Riverside Office Complex",
		Location:    "Rotterdam",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		TotalBudget: 2_500_000,
		Resources: []projects.ResourceDefinition{
			{Name: "Carpenter", Type: projects.ResourceHuman, CostPerUnit: 320},
			{Name: "Concrete", Type: projects.ResourceMaterial, CostPerUnit: 95},
			{Name: "Crane", Type: projects.ResourceEquipment, CostPerUnit: 1500},
		},
	})
	if err != nil {
		log.Fatalf("create project: %v", err)
	}

	for day := 0; day < 6; day++ {
		input := analysis.ReportInput{
			ReportDate:         time.Date(2026, 2, 20+day, 0, 0, 0, 0, time.UTC),
			ProgressPercentage: 0.4,
			BudgetUtilized:     8_000,
			ResourceUsage: []projects.ResourceUsage{
				{Name: "Carpenter", Type: projects.ResourceHuman, Required: 8, Available: 6},
				{Name: "Concrete", Type: projects.ResourceMaterial, Required: 40, Available: 40},
			},
			Weather: &projects.WeatherSnapshot{Condition: "Rain", Temperature: 7},
		}
		if _, _, err := svc.SubmitReport(ctx, project.ID, input); err != nil {
			log.Fatalf("submit report: %v", err)
		}
		now = now.AddDate(0, 0, 1)
	}

	_, payload, err := svc.SubmitReport(ctx, project.ID, analysis.ReportInput{
		ReportDate:         time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
		ProgressPercentage: 0.2,
		BudgetUtilized:     9_500,
		ExtraBudgetUsed:    4_000,
		ExtraBudgetReason:  "Pump failure rework",
		ResourceUsage: []projects.ResourceUsage{
			{Name: "Crane", Type: projects.ResourceEquipment, Required: 2, Available: 1},
		},
		Weather: &projects.WeatherSnapshot{Condition: "Thunderstorm", Temperature: 5},
	})
	if err != nil {
		log.Fatalf("submit report: %v", err)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("marshal payload: %v", err)
	}
	fmt.Println(string(out))
}
