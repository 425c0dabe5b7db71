package analysis

import "buildtrack-backend/internal/projects"

// BudgetSignal aggregates budget consumption against the plan.
type BudgetSignal struct {
	TotalExtra     float64 `json:"totalExtraBudget"`
	UtilizationPct float64 `json:"budgetUtilizationPct"`
	Efficiency     float64 `json:"budgetEfficiency"`
	BurnRate       float64 `json:"burnRate"`
}

// AnalyzeBudget sums per-report budget figures and derives utilization,
// efficiency and burn rate. Denominators are clamped so a zero budget or
// zero progress never produces NaN or Inf.
func AnalyzeBudget(totalBudget, currentProgress float64, reports []projects.DailyReport) BudgetSignal {
	if totalBudget < 1 {
		totalBudget = 1
	}
	if len(reports) == 0 {
		// No spend recorded yet: neutral efficiency, everything else zero.
		return BudgetSignal{Efficiency: 1}
	}

	var utilized, extra float64
	for _, report := range reports {
		utilized += report.BudgetUtilized
		extra += report.ExtraBudgetUsed
	}

	utilizationPct := utilized / totalBudget * 100

	efficiencyDenom := utilizationPct
	if efficiencyDenom < 1 {
		efficiencyDenom = 1
	}

	burnRate := 0.0
	if currentProgress > 0 {
		burnRate = (utilized + extra) / currentProgress
	}

	return BudgetSignal{
		TotalExtra:     extra,
		UtilizationPct: utilizationPct,
		Efficiency:     currentProgress / efficiencyDenom,
		BurnRate:       burnRate,
	}
}
