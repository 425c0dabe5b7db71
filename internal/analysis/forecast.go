package analysis

import (
	"context"
	"math"
	"time"

	"buildtrack-backend/internal/projects"

	"github.com/montanaflynn/stats"

	"buildtrack-backend/internal/shared/telemetry"
)

const (
	// Assumed daily progress when fewer than two reports exist.
	fallbackDailyProgress = 0.1
	// Contingency buffer applied to the projected final budget.
	budgetBuffer = 1.10

	heuristicModel = "heuristic"
)

// DelayPredictor is an optional external delay-prediction service. A nil
// predictor means the heuristic path is always used; the engine holds no
// availability state.
type DelayPredictor interface {
	PredictDelay(ctx context.Context, features PredictorFeatures) (PredictorResult, error)
}

// ForecastEngine projects completion date and final budget from report
// history. Construct with a nil Predictor for the pure heuristic engine.
type ForecastEngine struct {
	Predictor DelayPredictor
}

// Forecast computes the combined completion/budget forecast. Reports must be
// ordered by date ascending and include every report to consider.
func (e *ForecastEngine) Forecast(ctx context.Context, project projects.Project, reports []projects.DailyReport, now time.Time) (Forecast, error) {
	window, err := ComputeWindow(project.StartDate, project.EndDate, now)
	if err != nil {
		return Forecast{}, err
	}

	out := e.completionForecast(ctx, project, reports, window, now)
	budget := AnalyzeBudget(project.TotalBudget, project.CurrentProgress, reports)

	projected := budget.BurnRate * 100 * budgetBuffer
	overrun := math.Max(0, projected-project.TotalBudget)
	totalBudget := project.TotalBudget
	if totalBudget < 1 {
		totalBudget = 1
	}
	overrunPct := overrun / totalBudget * 100

	out.PredictedFinalBudget = projected
	out.OverrunAmount = overrun
	out.OverrunPct = overrunPct
	out.BudgetConfidencePct = clamp(85-overrunPct*2, 50, 90)
	return out, nil
}

func (e *ForecastEngine) completionForecast(ctx context.Context, project projects.Project, reports []projects.DailyReport, window Window, now time.Time) Forecast {
	avg := averageDailyProgress(reports)

	daysToComplete := (100 - project.CurrentProgress) / avg
	predicted := now.AddDate(0, 0, int(math.Ceil(daysToComplete)))
	delayDays := ceilDays(predicted.Sub(project.EndDate))
	if delayDays < 0 {
		delayDays = 0
	}
	model := heuristicModel

	if e.Predictor != nil {
		result, err := e.Predictor.PredictDelay(ctx, BuildPredictorFeatures(project, reports, window))
		if err != nil {
			// Unreachable service: the heuristic result stands unmodified.
			telemetry.Warn("forecast.predictor_unreachable", map[string]any{
				"project_id": project.ID,
				"error":      err.Error(),
			})
		} else {
			delayDays = int(math.Round(math.Max(0, result.DelayDays)))
			predicted = project.EndDate.AddDate(0, 0, delayDays)
			if result.Model != "" {
				model = result.Model
			}
		}
	}

	return Forecast{
		PredictedCompletionDate: predicted,
		DelayDays:               delayDays,
		CompletionConfidencePct: clamp(95-float64(delayDays)*2, 60, 95),
		Model:                   model,
	}
}

// averageDailyProgress is the mean reported daily progress over the last 10
// reports. With fewer than two reports the fixed fallback applies.
func averageDailyProgress(reports []projects.DailyReport) float64 {
	recent := lastReports(reports, velocityWindow)
	if len(recent) < 2 {
		return fallbackDailyProgress
	}

	values := make([]float64, 0, len(recent))
	for _, report := range recent {
		values = append(values, report.ProgressPercentage)
	}
	avg, err := stats.Mean(values)
	if err != nil || avg <= 0 {
		return fallbackDailyProgress
	}
	return avg
}
