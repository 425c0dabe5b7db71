package recommendations

// Input carries the per-category risk levels the engine keys off. Levels are
// the assessment's label strings (LOW/MEDIUM/HIGH/CRITICAL).
type Input struct {
	TimelineLevel string
	BudgetLevel   string
	ResourceLevel string
}

// Fallback recommendation when no category is elevated.
const Fallback = "Continue monitoring project metrics and daily reports"

func elevated(level string) bool {
	return level == "HIGH" || level == "CRITICAL"
}
