package analysis

import (
	"context"
	"fmt"
	"time"

	"buildtrack-backend/internal/projects"

	"buildtrack-backend/internal/analysis/recommendations"
)

// Service is the per-report analysis orchestrator. It is pure computation
// over the inputs: no storage, no clock of its own, no internal state beyond
// its collaborators. Identical inputs yield identical payloads.
type Service struct {
	Forecaster *ForecastEngine
	Version    string
}

// NewService constructs a Service with an optional external delay predictor.
func NewService(predictor DelayPredictor, version string) *Service {
	return &Service{
		Forecaster: &ForecastEngine{Predictor: predictor},
		Version:    version,
	}
}

// Analyze runs the full analysis for a just-submitted daily report. The
// history list must not yet include today's report; it is appended here. The
// caller persists the returned payload.
func (s *Service) Analyze(ctx context.Context, project projects.Project, history []projects.DailyReport, today projects.DailyReport, now time.Time) (Payload, error) {
	// Today's increment is not yet reflected in the project snapshot.
	project.CurrentProgress = clamp(project.CurrentProgress+today.ProgressPercentage, 0, 100)

	combined := append(append([]projects.DailyReport(nil), history...), today)

	delayDays, costImpact, reasons := sameDayEstimate(project, today)

	risk, err := AssessRisk(project, combined, now)
	if err != nil {
		return Payload{}, err
	}

	forecast, err := s.forecaster().Forecast(ctx, project, combined, now)
	if err != nil {
		return Payload{}, err
	}

	recs := recommendations.Generate(recommendations.Input{
		TimelineLevel: risk.Timeline.Level.String(),
		BudgetLevel:   risk.Budget.Level.String(),
		ResourceLevel: risk.Resource.Level.String(),
	})

	return Payload{
		EstimatedDelayDays: delayDays,
		CostImpact:         costImpact,
		DelayReasons:       reasons,
		Risk:               risk,
		Forecast:           forecast,
		Recommendations:    recs,
		Version:            s.Version,
		GeneratedAt:        now,
	}, nil
}

func (s *Service) forecaster() *ForecastEngine {
	if s.Forecaster != nil {
		return s.Forecaster
	}
	return &ForecastEngine{}
}

// sameDayEstimate accumulates a delay and cost estimate from today's
// shortfall rows and flags adverse weather. Clouds count as adverse here,
// unlike in risk scoring.
func sameDayEstimate(project projects.Project, today projects.DailyReport) (float64, float64, []string) {
	delayDays := 0.0
	costImpact := 0.0
	reasons := []string{}

	for _, row := range today.ResourceUsage {
		shortfall := row.Shortfall()
		if shortfall <= 0 {
			continue
		}
		// Proportional contribution: a fully unavailable resource costs a
		// full day.
		delayDays += shortfall / row.Required
		costImpact += shortfall * project.CostPerUnit(row.Name)
		reasons = append(reasons, fmt.Sprintf("Shortage of %s (%s): required %.0f, available %.0f",
			row.Name, row.Type, row.Required, row.Available))
	}

	if today.Weather != nil && isAdverse(today.Weather.Condition, true) {
		reasons = append(reasons, fmt.Sprintf("Adverse weather conditions: %s", today.Weather.Condition))
	}

	return delayDays, costImpact, reasons
}
