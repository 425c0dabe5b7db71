package recommendations

// Fixed mitigation catalogue per risk category. Order within a category is
// part of the contract.
var (
	timelineActions = []string{
		"Consider fast-tracking construction methods",
		"Schedule extended working hours for critical activities",
		"Prioritize work on the critical path",
	}
	budgetActions = []string{
		"Apply strict budget controls to remaining work",
		"Optimize resource allocation to reduce waste",
		"Renegotiate supplier and contractor rates",
	}
	resourceActions = []string{
		"Line up backup suppliers for scarce resources",
		"Move to just-in-time delivery for materials",
		"Cross-train workers to cover shortfall roles",
	}
)

func fromTimeline(in Input) []string {
	if !elevated(in.TimelineLevel) {
		return nil
	}
	return timelineActions
}

func fromBudget(in Input) []string {
	if !elevated(in.BudgetLevel) {
		return nil
	}
	return budgetActions
}

func fromResource(in Input) []string {
	if !elevated(in.ResourceLevel) {
		return nil
	}
	return resourceActions
}
