package analysis

import (
	"time"

	"github.com/montanaflynn/stats"

	"buildtrack-backend/internal/projects"
)

// Trend direction labels.
const (
	TrendImproving    = "improving"
	TrendDeclining    = "declining"
	TrendStable       = "stable"
	TrendAccelerating = "accelerating"
	TrendDecelerating = "decelerating"
)

// Slope and ratio thresholds for trend labeling.
const (
	slopeThreshold    = 0.1
	velocityTolerance = 0.1
)

// TrendPoint is one charting data point.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ProgressTrend is the OLS view of reported daily progress.
type ProgressTrend struct {
	Direction string       `json:"direction"`
	Slope     float64      `json:"slope"`
	Points    []TrendPoint `json:"points"`
}

// VelocityTrend compares recent velocity against the overall average.
type VelocityTrend struct {
	Direction       string       `json:"direction"`
	RecentVelocity  float64      `json:"recentVelocity"`
	AverageVelocity float64      `json:"averageVelocity"`
	Points          []TrendPoint `json:"points"`
}

// BudgetTrend charts cumulative spend against the plan.
type BudgetTrend struct {
	Points          []TrendPoint `json:"points"`
	CumulativeSpend float64      `json:"cumulativeSpend"`
	BurnRate        float64      `json:"burnRate"`
}

// ResourceTrend charts per-report utilization.
type ResourceTrend struct {
	Points             []TrendPoint `json:"points"`
	AverageUtilization float64      `json:"averageUtilization"`
	ShortageRate       float64      `json:"shortageRatePct"`
}

// WeatherTrend charts adverse-weather days.
type WeatherTrend struct {
	Points     []TrendPoint `json:"points"`
	ImpactRate float64      `json:"impactRate"`
}

// Trends bundles every trend series for charting.
type Trends struct {
	Progress ProgressTrend `json:"progress"`
	Velocity VelocityTrend `json:"velocity"`
	Budget   BudgetTrend   `json:"budget"`
	Resource ResourceTrend `json:"resource"`
	Weather  WeatherTrend  `json:"weather"`
}

// ComputeTrends derives all trend series from a project's report history.
// Reports must be ordered by date ascending; an empty history yields stable
// trends with empty point series.
func ComputeTrends(project projects.Project, reports []projects.DailyReport) Trends {
	return Trends{
		Progress: progressTrend(reports),
		Velocity: velocityTrend(reports),
		Budget:   budgetTrend(project, reports),
		Resource: resourceTrend(reports),
		Weather:  weatherTrend(reports),
	}
}

func progressTrend(reports []projects.DailyReport) ProgressTrend {
	recent := lastReports(reports, progressTrendWindow)

	points := make([]TrendPoint, 0, len(recent))
	series := make(stats.Series, 0, len(recent))
	for i, report := range recent {
		points = append(points, TrendPoint{Date: report.ReportDate, Value: report.ProgressPercentage})
		series = append(series, stats.Coordinate{X: float64(i), Y: report.ProgressPercentage})
	}

	trend := ProgressTrend{Direction: TrendStable, Points: points}
	if len(series) < 2 {
		return trend
	}

	regression, err := stats.LinearRegression(series)
	if err != nil || len(regression) < 2 {
		return trend
	}
	first := regression[0]
	last := regression[len(regression)-1]
	if last.X == first.X {
		return trend
	}
	trend.Slope = (last.Y - first.Y) / (last.X - first.X)

	switch {
	case trend.Slope > slopeThreshold:
		trend.Direction = TrendImproving
	case trend.Slope < -slopeThreshold:
		trend.Direction = TrendDeclining
	}
	return trend
}

func velocityTrend(reports []projects.DailyReport) VelocityTrend {
	trend := VelocityTrend{Direction: TrendStable, Points: []TrendPoint{}}
	if len(reports) < 2 {
		return trend
	}

	velocities := make([]float64, 0, len(reports)-1)
	for i := 1; i < len(reports); i++ {
		delta := reports[i].ProgressPercentage - reports[i-1].ProgressPercentage
		if delta < 0 {
			delta = 0
		}
		velocities = append(velocities, delta)
		trend.Points = append(trend.Points, TrendPoint{Date: reports[i].ReportDate, Value: delta})
	}

	overall, err := stats.Mean(velocities)
	if err != nil {
		return trend
	}
	recent := velocities
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	recentAvg, err := stats.Mean(recent)
	if err != nil {
		return trend
	}

	trend.RecentVelocity = recentAvg
	trend.AverageVelocity = overall

	if overall > 0 {
		ratio := recentAvg / overall
		switch {
		case ratio > 1+velocityTolerance:
			trend.Direction = TrendAccelerating
		case ratio < 1-velocityTolerance:
			trend.Direction = TrendDecelerating
		}
	}
	return trend
}

func budgetTrend(project projects.Project, reports []projects.DailyReport) BudgetTrend {
	trend := BudgetTrend{Points: []TrendPoint{}}

	cumulative := 0.0
	for _, report := range reports {
		cumulative += report.BudgetUtilized + report.ExtraBudgetUsed
		trend.Points = append(trend.Points, TrendPoint{Date: report.ReportDate, Value: cumulative})
	}
	trend.CumulativeSpend = cumulative
	trend.BurnRate = AnalyzeBudget(project.TotalBudget, project.CurrentProgress, reports).BurnRate
	return trend
}

func resourceTrend(reports []projects.DailyReport) ResourceTrend {
	trend := ResourceTrend{Points: []TrendPoint{}}

	recent := lastReports(reports, utilizationWindow)
	for _, report := range recent {
		perReport := AnalyzeResources([]projects.DailyReport{report}, 1)
		trend.Points = append(trend.Points, TrendPoint{Date: report.ReportDate, Value: perReport.Utilization})
	}

	signal := AnalyzeResources(reports, utilizationWindow)
	trend.AverageUtilization = signal.Utilization
	trend.ShortageRate = signal.ShortageRate
	return trend
}

func weatherTrend(reports []projects.DailyReport) WeatherTrend {
	trend := WeatherTrend{Points: []TrendPoint{}}

	recent := lastReports(reports, weatherTrendWindow)
	for _, report := range recent {
		value := 0.0
		if report.Weather != nil && isAdverse(report.Weather.Condition, false) {
			value = 1.0
		}
		trend.Points = append(trend.Points, TrendPoint{Date: report.ReportDate, Value: value})
	}
	trend.ImpactRate = AnalyzeWeather(reports, weatherTrendWindow).AdverseRate
	return trend
}
