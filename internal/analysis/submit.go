package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buildtrack-backend/internal/projects"
	"buildtrack-backend/internal/shared/metrics"
	"buildtrack-backend/internal/shared/telemetry"
)

// ReportInput is the submission body for a new daily report.
type ReportInput struct {
	ReportDate         time.Time                  `json:"reportDate"`
	ProgressPercentage float64                    `json:"progressPercentage"`
	BudgetUtilized     float64                    `json:"budgetUtilized"`
	ExtraBudgetUsed    float64                    `json:"extraBudgetUsed"`
	ExtraBudgetReason  string                     `json:"extraBudgetReason"`
	ResourceUsage      []projects.ResourceUsage   `json:"resourceUsage"`
	Weather            *projects.WeatherSnapshot  `json:"weather,omitempty"`
}

// SubmitService accepts daily reports, runs the analysis engine over them and
// persists the result. The engine itself stays storage-free; all persistence
// lives here.
type SubmitService struct {
	Repo   projects.Repo
	Engine *Service
	Clock  func() time.Time
}

// NewSubmitService constructs a SubmitService with a wall-clock default.
func NewSubmitService(repo projects.Repo, engine *Service) *SubmitService {
	return &SubmitService{Repo: repo, Engine: engine, Clock: func() time.Time { return time.Now().UTC() }}
}

func (s *SubmitService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// SubmitReport stores a new report, analyzes it and records the analysis on
// the report. A duplicate date is rejected before any analysis runs.
func (s *SubmitService) SubmitReport(ctx context.Context, projectID string, input ReportInput) (projects.DailyReport, Payload, error) {
	if input.ProgressPercentage < 0 {
		return projects.DailyReport{}, Payload{}, errors.New("progress percentage must be >= 0")
	}
	if input.ExtraBudgetUsed < 0 {
		return projects.DailyReport{}, Payload{}, errors.New("extra budget used must be >= 0")
	}

	project, err := s.Repo.GetProject(ctx, projectID)
	if err != nil {
		return projects.DailyReport{}, Payload{}, err
	}
	history, err := s.Repo.ListReports(ctx, projectID)
	if err != nil {
		return projects.DailyReport{}, Payload{}, err
	}

	now := s.now()
	report := projects.DailyReport{
		ID:                 uuid.NewString(),
		ProjectID:          projectID,
		ReportDate:         input.ReportDate.UTC(),
		ProgressPercentage: input.ProgressPercentage,
		BudgetUtilized:     input.BudgetUtilized,
		ExtraBudgetUsed:    input.ExtraBudgetUsed,
		ExtraBudgetReason:  input.ExtraBudgetReason,
		ResourceUsage:      input.ResourceUsage,
		Weather:            input.Weather,
		CreatedAt:          now,
	}
	if report.ReportDate.IsZero() {
		report.ReportDate = now
	}

	if err := s.Repo.CreateReport(ctx, report); err != nil {
		return projects.DailyReport{}, Payload{}, err
	}

	started := time.Now()
	payload, err := s.Engine.Analyze(ctx, project, history, report, now)
	if err != nil {
		metrics.IncAnalysisFailed()
		return projects.DailyReport{}, Payload{}, err
	}
	metrics.IncReportAnalyzed()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)

	raw, err := json.Marshal(payload)
	if err != nil {
		return projects.DailyReport{}, Payload{}, fmt.Errorf("marshal analysis: %w", err)
	}
	if err := s.Repo.SetReportAnalysis(ctx, report.ID, raw); err != nil {
		return projects.DailyReport{}, Payload{}, err
	}
	report.AIAnalysis = raw

	progress := project.CurrentProgress + report.ProgressPercentage
	if progress > 100 {
		progress = 100
	}
	if err := s.Repo.UpdateProjectProgress(ctx, projectID, progress); err != nil {
		return projects.DailyReport{}, Payload{}, err
	}

	telemetry.Info("report.analyzed", map[string]any{
		"project_id":     projectID,
		"report_id":      report.ID,
		"risk_level":     payload.Risk.OverallLevel,
		"delay_days":     payload.EstimatedDelayDays,
		"delay_forecast": payload.Forecast.DelayDays,
	})

	return report, payload, nil
}

// RiskSnapshot serves the additive per-project risk view.
func (s *SubmitService) RiskSnapshot(ctx context.Context, projectID string) (SnapshotAssessment, error) {
	project, reports, err := s.load(ctx, projectID)
	if err != nil {
		return SnapshotAssessment{}, err
	}
	metrics.IncAssessment()
	return AssessSnapshot(project, reports, s.now())
}

// ProjectTrends computes the charting trend series for a project.
func (s *SubmitService) ProjectTrends(ctx context.Context, projectID string) (Trends, error) {
	project, reports, err := s.load(ctx, projectID)
	if err != nil {
		return Trends{}, err
	}
	return ComputeTrends(project, reports), nil
}

// ProjectForecast computes the completion/budget forecast for a project.
func (s *SubmitService) ProjectForecast(ctx context.Context, projectID string) (Forecast, error) {
	project, reports, err := s.load(ctx, projectID)
	if err != nil {
		return Forecast{}, err
	}
	return s.Engine.forecaster().Forecast(ctx, project, reports, s.now())
}

// RiskOverview runs the weighted assessment over the stored history.
func (s *SubmitService) RiskOverview(ctx context.Context, projectID string) (RiskAssessment, error) {
	project, reports, err := s.load(ctx, projectID)
	if err != nil {
		return RiskAssessment{}, err
	}
	return AssessRisk(project, reports, s.now())
}

func (s *SubmitService) load(ctx context.Context, projectID string) (projects.Project, []projects.DailyReport, error) {
	project, err := s.Repo.GetProject(ctx, projectID)
	if err != nil {
		return projects.Project{}, nil, err
	}
	reports, err := s.Repo.ListReports(ctx, projectID)
	if err != nil {
		return projects.Project{}, nil, err
	}
	return project, reports, nil
}
