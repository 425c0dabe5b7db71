package analysis

import "time"

// RiskLevel labels a risk category or an overall assessment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// String returns the string representation of the risk level.
func (l RiskLevel) String() string {
	return string(l)
}

// IsValid returns true if the risk level is a known value.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// Elevated reports whether the level calls for active mitigation.
func (l RiskLevel) Elevated() bool {
	return l == RiskHigh || l == RiskCritical
}

// RiskCategory is one independently scored risk dimension. Produced fresh on
// every assessment; never persisted on its own.
type RiskCategory struct {
	Level   RiskLevel `json:"level"`
	Score   float64   `json:"score"`
	Factors []string  `json:"factors"`
}

// RiskAssessment is the weighted five-category risk result.
type RiskAssessment struct {
	OverallScore       float64      `json:"overallRiskScore"`
	OverallLevel       RiskLevel    `json:"overallRiskLevel"`
	SuccessProbability float64      `json:"successProbability"`
	Timeline           RiskCategory `json:"timeline"`
	Budget             RiskCategory `json:"budget"`
	Resource           RiskCategory `json:"resource"`
	Weather            RiskCategory `json:"weather"`
	Quality            RiskCategory `json:"quality"`
}

// SnapshotAssessment is the additive per-project risk view. It is a separate
// scoring strategy from RiskAssessment and the two must not be unified; they
// serve different callers with different breakpoints.
type SnapshotAssessment struct {
	Score   float64   `json:"riskScore"`
	Level   RiskLevel `json:"riskLevel"`
	Factors []string  `json:"factors"`
}

// Forecast projects completion date and final budget.
type Forecast struct {
	PredictedCompletionDate time.Time `json:"predictedCompletionDate"`
	DelayDays               int       `json:"delayDays"`
	CompletionConfidencePct float64   `json:"completionConfidencePct"`
	PredictedFinalBudget    float64   `json:"predictedFinalBudget"`
	OverrunAmount           float64   `json:"overrunAmount"`
	OverrunPct              float64   `json:"overrunPct"`
	BudgetConfidencePct     float64   `json:"budgetConfidencePct"`
	Model                   string    `json:"model"`
}

// Payload is the full per-report analysis returned by the orchestrator. The
// caller persists it verbatim into the report's aiAnalysis field.
type Payload struct {
	EstimatedDelayDays float64        `json:"estimatedDelayDays"`
	CostImpact         float64        `json:"costImpact"`
	DelayReasons       []string       `json:"delayReasons"`
	Risk               RiskAssessment `json:"riskAssessment"`
	Forecast           Forecast       `json:"forecast"`
	Recommendations    []string       `json:"recommendations"`
	Version            string         `json:"version,omitempty"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}
