package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"buildtrack-backend/internal/projects"
)

func newSubmitFixture(t *testing.T) (*SubmitService, *projects.MemoryRepo, projects.Project) {
	t.Helper()

	repo := projects.NewMemoryRepo()
	project := testProject()
	if err := repo.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	svc := NewSubmitService(repo, NewService(nil, "test"))
	svc.Clock = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, project
}

func TestSubmitReportPersistsAnalysis(t *testing.T) {
	svc, repo, project := newSubmitFixture(t)

	input := ReportInput{
		ReportDate:         time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		ProgressPercentage: 3,
		BudgetUtilized:     15_000,
	}
	report, payload, err := svc.SubmitReport(context.Background(), project.ID, input)
	if err != nil {
		t.Fatalf("SubmitReport: %v", err)
	}
	if report.ID == "" {
		t.Fatalf("expected a generated report ID")
	}
	if len(report.AIAnalysis) == 0 {
		t.Fatalf("expected analysis attached to the returned report")
	}
	if !payload.Risk.OverallLevel.IsValid() {
		t.Fatalf("expected a valid overall level, got %q", payload.Risk.OverallLevel)
	}

	stored, err := repo.ListReports(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(stored) != 1 || len(stored[0].AIAnalysis) == 0 {
		t.Fatalf("expected one stored report with analysis, got %+v", stored)
	}

	var decoded Payload
	if err := json.Unmarshal(stored[0].AIAnalysis, &decoded); err != nil {
		t.Fatalf("stored analysis must be valid JSON: %v", err)
	}
	if decoded.Version != "test" {
		t.Fatalf("expected version test, got %q", decoded.Version)
	}

	updated, err := repo.GetProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if updated.CurrentProgress != 3 {
		t.Fatalf("expected progress rolled up to 3, got %v", updated.CurrentProgress)
	}
}

func TestSubmitReportDuplicateDateRejected(t *testing.T) {
	svc, repo, project := newSubmitFixture(t)

	input := ReportInput{ReportDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), ProgressPercentage: 1}
	if _, _, err := svc.SubmitReport(context.Background(), project.ID, input); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	_, _, err := svc.SubmitReport(context.Background(), project.ID, input)
	if !errors.Is(err, projects.ErrDuplicateReport) {
		t.Fatalf("expected ErrDuplicateReport, got %v", err)
	}

	stored, _ := repo.ListReports(context.Background(), project.ID)
	if len(stored) != 1 {
		t.Fatalf("duplicate must not be stored, got %d reports", len(stored))
	}
}

func TestSubmitReportUnknownProject(t *testing.T) {
	svc, _, _ := newSubmitFixture(t)

	_, _, err := svc.SubmitReport(context.Background(), "missing", ReportInput{ProgressPercentage: 1})
	if !errors.Is(err, projects.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitReportRejectsNegativeInput(t *testing.T) {
	svc, _, project := newSubmitFixture(t)

	if _, _, err := svc.SubmitReport(context.Background(), project.ID, ReportInput{ProgressPercentage: -1}); err == nil {
		t.Fatalf("expected rejection of negative progress")
	}
	if _, _, err := svc.SubmitReport(context.Background(), project.ID, ReportInput{ExtraBudgetUsed: -5}); err == nil {
		t.Fatalf("expected rejection of negative extra budget")
	}
}

func TestSubmitReportProgressCappedAtHundred(t *testing.T) {
	svc, repo, project := newSubmitFixture(t)

	if err := repo.UpdateProjectProgress(context.Background(), project.ID, 99); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	input := ReportInput{ReportDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), ProgressPercentage: 5}
	if _, _, err := svc.SubmitReport(context.Background(), project.ID, input); err != nil {
		t.Fatalf("SubmitReport: %v", err)
	}

	updated, _ := repo.GetProject(context.Background(), project.ID)
	if updated.CurrentProgress != 100 {
		t.Fatalf("expected progress capped at 100, got %v", updated.CurrentProgress)
	}
}

func TestSubmitReportDefaultsReportDate(t *testing.T) {
	svc, repo, project := newSubmitFixture(t)

	if _, _, err := svc.SubmitReport(context.Background(), project.ID, ReportInput{ProgressPercentage: 1}); err != nil {
		t.Fatalf("SubmitReport: %v", err)
	}

	stored, _ := repo.ListReports(context.Background(), project.ID)
	want := svc.Clock()
	if !stored[0].ReportDate.Equal(want) {
		t.Fatalf("expected clock-derived report date %v, got %v", want, stored[0].ReportDate)
	}
}

func TestRiskSnapshotAndOverview(t *testing.T) {
	svc, _, project := newSubmitFixture(t)

	snapshot, err := svc.RiskSnapshot(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("RiskSnapshot: %v", err)
	}
	if !snapshot.Level.IsValid() {
		t.Fatalf("expected a valid snapshot level, got %q", snapshot.Level)
	}

	overview, err := svc.RiskOverview(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("RiskOverview: %v", err)
	}
	if overview.OverallScore != 14.75 {
		t.Fatalf("expected weighted baseline 14.75 for an empty history, got %v", overview.OverallScore)
	}

	if _, err := svc.RiskSnapshot(context.Background(), "missing"); !errors.Is(err, projects.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectTrendsAndForecast(t *testing.T) {
	svc, _, project := newSubmitFixture(t)

	for day := 1; day <= 3; day++ {
		input := ReportInput{
			ReportDate:         time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC),
			ProgressPercentage: 2,
		}
		if _, _, err := svc.SubmitReport(context.Background(), project.ID, input); err != nil {
			t.Fatalf("SubmitReport day %d: %v", day, err)
		}
	}

	trends, err := svc.ProjectTrends(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("ProjectTrends: %v", err)
	}
	if len(trends.Progress.Points) != 3 {
		t.Fatalf("expected 3 progress points, got %d", len(trends.Progress.Points))
	}

	forecast, err := svc.ProjectForecast(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("ProjectForecast: %v", err)
	}
	if forecast.PredictedCompletionDate.IsZero() {
		t.Fatalf("expected a populated forecast")
	}
	if forecast.Model != heuristicModel {
		t.Fatalf("expected heuristic model without a predictor, got %q", forecast.Model)
	}
}
