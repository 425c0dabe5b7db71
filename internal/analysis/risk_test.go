package analysis

import (
	"math"
	"testing"

	"buildtrack-backend/internal/projects"
)

func TestAssessRiskEmptyHistoryDefaults(t *testing.T) {
	project := testProject()

	assessment, err := AssessRisk(project, nil, project.StartDate)
	if err != nil {
		t.Fatalf("AssessRisk: %v", err)
	}

	checks := []struct {
		name     string
		category RiskCategory
		level    RiskLevel
		score    float64
	}{
		{"timeline", assessment.Timeline, RiskLow, 20},
		{"budget", assessment.Budget, RiskLow, 15},
		{"resource", assessment.Resource, RiskLow, 10},
		{"weather", assessment.Weather, RiskLow, 10},
		{"quality", assessment.Quality, RiskLow, 15},
	}
	for _, check := range checks {
		if check.category.Level != check.level || check.category.Score != check.score {
			t.Fatalf("%s: expected %s/%v, got %s/%v", check.name, check.level, check.score, check.category.Level, check.category.Score)
		}
	}

	// 20*0.30 + 15*0.25 + 10*0.20 + 10*0.15 + 15*0.10
	if math.Abs(assessment.OverallScore-14.75) > 1e-9 {
		t.Fatalf("expected overall 14.75, got %v", assessment.OverallScore)
	}
	if math.Abs(assessment.SuccessProbability-85.25) > 1e-9 {
		t.Fatalf("expected success probability 85.25, got %v", assessment.SuccessProbability)
	}
	if assessment.OverallLevel != RiskHigh {
		t.Fatalf("expected HIGH success level, got %s", assessment.OverallLevel)
	}
}

func TestTimelineRiskBoundaryExactness(t *testing.T) {
	window := Window{TotalDays: 300, ElapsedDays: 150, RemainingDays: 150, ExpectedProgress: 50}

	// variance exactly -20 uses strict <, so it lands in the HIGH tier.
	atBoundary := timelineRisk(30, window)
	if atBoundary.Level != RiskHigh || atBoundary.Score != 70 {
		t.Fatalf("variance -20 must be HIGH/70, got %s/%v", atBoundary.Level, atBoundary.Score)
	}

	below := timelineRisk(29.999, window)
	if below.Level != RiskCritical || below.Score != 90 {
		t.Fatalf("variance below -20 must be CRITICAL/90, got %s/%v", below.Level, below.Score)
	}

	atMinusTen := timelineRisk(40, window)
	if atMinusTen.Level != RiskMedium || atMinusTen.Score != 50 {
		t.Fatalf("variance -10 must be MEDIUM/50, got %s/%v", atMinusTen.Level, atMinusTen.Score)
	}

	atMinusFive := timelineRisk(45, window)
	if atMinusFive.Level != RiskLow || atMinusFive.Score != 20 {
		t.Fatalf("variance -5 must be LOW/20, got %s/%v", atMinusFive.Level, atMinusFive.Score)
	}
}

func TestTimelineRiskDeadlineTiers(t *testing.T) {
	onTrack := Window{TotalDays: 300, ElapsedDays: 295, ExpectedProgress: 98}

	tight := onTrack
	tight.RemainingDays = 5
	category := timelineRisk(98, tight)
	if category.Level != RiskHigh || category.Score != 70 {
		t.Fatalf("remaining < 7 must be HIGH/70, got %s/%v", category.Level, category.Score)
	}

	near := onTrack
	near.RemainingDays = 10
	category = timelineRisk(98, near)
	if category.Level != RiskMedium || category.Score != 50 {
		t.Fatalf("remaining < 14 must be MEDIUM/50, got %s/%v", category.Level, category.Score)
	}
	if !containsString(category.Factors, "Tight deadline") {
		t.Fatalf("expected Tight deadline factor, got %v", category.Factors)
	}
}

func TestTimelineRiskFactors(t *testing.T) {
	window := Window{TotalDays: 100, ElapsedDays: 40, RemainingDays: 60, ExpectedProgress: 40}

	category := timelineRisk(5, window)
	if !containsString(category.Factors, "Behind schedule") {
		t.Fatalf("expected Behind schedule factor, got %v", category.Factors)
	}
	if !containsString(category.Factors, "Slow start") {
		t.Fatalf("expected Slow start factor, got %v", category.Factors)
	}
}

func TestTimelineRiskMonotonicInVariance(t *testing.T) {
	window := Window{TotalDays: 300, ElapsedDays: 100, RemainingDays: 200, ExpectedProgress: 33}

	prev := -1.0
	for variance := 0.0; variance >= -30; variance -= 0.5 {
		category := timelineRisk(window.ExpectedProgress+variance, window)
		if prev >= 0 && category.Score < prev {
			t.Fatalf("timeline score decreased at variance %v: %v -> %v", variance, prev, category.Score)
		}
		prev = category.Score
	}
}

func TestResourceRiskShortageTiers(t *testing.T) {
	project := testProject()

	cases := []struct {
		rate  float64
		level RiskLevel
		score float64
	}{
		{0, RiskLow, 10},
		{15, RiskLow, 10},
		{15.5, RiskMedium, 35},
		{30.5, RiskHigh, 60},
		{50.5, RiskCritical, 80},
		{100, RiskCritical, 80},
	}
	for _, tc := range cases {
		category := resourceRisk(project, ResourceSignal{ShortageRate: tc.rate, TotalChecks: 10})
		if category.Level != tc.level || category.Score != tc.score {
			t.Fatalf("rate %v: expected %s/%v, got %s/%v", tc.rate, tc.level, tc.score, category.Level, category.Score)
		}
	}
}

func TestResourceRiskMonotonicInShortageRate(t *testing.T) {
	project := testProject()

	prev := -1.0
	for rate := 0.0; rate <= 100; rate += 1 {
		category := resourceRisk(project, ResourceSignal{ShortageRate: rate, TotalChecks: 5})
		if prev >= 0 && category.Score < prev {
			t.Fatalf("resource score decreased at rate %v: %v -> %v", rate, prev, category.Score)
		}
		prev = category.Score
	}
}

func TestResourceRiskScenarioFullShortage(t *testing.T) {
	project := testProject() // 3 roles, 5 material types
	reports := reportsWithShortage(5, 10, 5)

	category := resourceRisk(project, AnalyzeResources(reports, shortageRiskWindow))
	if category.Level != RiskCritical || category.Score != 80 {
		t.Fatalf("expected CRITICAL/80, got %s/%v", category.Level, category.Score)
	}
	if containsString(category.Factors, "Limited human resources") {
		t.Fatalf("role count is not below 3, factor must be absent: %v", category.Factors)
	}
	if containsString(category.Factors, "Limited material diversity") {
		t.Fatalf("material count is not below 5, factor must be absent: %v", category.Factors)
	}
}

func TestResourceRiskComplexityFactors(t *testing.T) {
	project := testProject()
	project.Resources = []projects.ResourceDefinition{
		{Name: "Foreman", Type: projects.ResourceHuman},
		{Name: "Concrete", Type: projects.ResourceMaterial},
	}

	category := resourceRisk(project, ResourceSignal{})
	if !containsString(category.Factors, "Limited human resources") {
		t.Fatalf("expected limited human resources factor, got %v", category.Factors)
	}
	if !containsString(category.Factors, "Limited material diversity") {
		t.Fatalf("expected limited material diversity factor, got %v", category.Factors)
	}
}

func TestBudgetRiskExtraBudgetOverridesUtilization(t *testing.T) {
	// Scenario: $100k budget, $25k extra spend -> 25% > 20% -> CRITICAL
	// regardless of utilization.
	reports := budgetReports([]float64{1_000}, []float64{25_000})

	signal := AnalyzeBudget(100_000, 10, reports)
	category := budgetRisk(100_000, signal)
	if category.Level != RiskCritical || category.Score != 85 {
		t.Fatalf("expected CRITICAL/85, got %s/%v", category.Level, category.Score)
	}
}

func TestBudgetRiskUtilizationTiers(t *testing.T) {
	cases := []struct {
		utilization float64
		level       RiskLevel
		score       float64
	}{
		{50, RiskLow, 15},
		{61, RiskMedium, 40},
		{76, RiskHigh, 65},
		{91, RiskCritical, 85},
	}
	for _, tc := range cases {
		signal := BudgetSignal{UtilizationPct: tc.utilization, Efficiency: 1.5}
		category := budgetRisk(1_000_000, signal)
		if category.Level != tc.level || category.Score != tc.score {
			t.Fatalf("utilization %v: expected %s/%v, got %s/%v", tc.utilization, tc.level, tc.score, category.Level, category.Score)
		}
	}
}

func TestBudgetRiskEfficiencyTiers(t *testing.T) {
	cases := []struct {
		efficiency float64
		level      RiskLevel
	}{
		{1.0, RiskLow},
		{0.85, RiskMedium},
		{0.75, RiskHigh},
		{0.65, RiskCritical},
	}
	for _, tc := range cases {
		signal := BudgetSignal{UtilizationPct: 10, Efficiency: tc.efficiency}
		category := budgetRisk(1_000_000, signal)
		if category.Level != tc.level {
			t.Fatalf("efficiency %v: expected %s, got %s", tc.efficiency, tc.level, category.Level)
		}
	}
}

func TestWeatherRiskScenarioHalfRain(t *testing.T) {
	reports := reportsWithWeather(
		"Rain", "Rain", "Rain", "Rain", "Rain",
		"Clear", "Clear", "Clear", "Clear", "Clear",
	)

	category := weatherRisk(AnalyzeWeather(reports, weatherRiskWindow))
	if category.Level != RiskHigh || category.Score != 60 {
		t.Fatalf("expected HIGH/60 at 50%% adverse, got %s/%v", category.Level, category.Score)
	}
}

func TestWeatherRiskHasNoCriticalTier(t *testing.T) {
	category := weatherRisk(WeatherSignal{AdverseRate: 100, AdverseCount: 10, WindowSize: 10})
	if category.Level != RiskHigh || category.Score != 60 {
		t.Fatalf("weather must top out at HIGH/60, got %s/%v", category.Level, category.Score)
	}
}

func TestQualityRiskTiers(t *testing.T) {
	cases := []struct {
		rate  float64
		level RiskLevel
		score float64
	}{
		{0, RiskLow, 15},
		{25, RiskLow, 15},
		{26, RiskMedium, 40},
		{51, RiskHigh, 70},
	}
	for _, tc := range cases {
		category := qualityRisk(QualitySignal{IssueRate: tc.rate})
		if category.Level != tc.level || category.Score != tc.score {
			t.Fatalf("rate %v: expected %s/%v, got %s/%v", tc.rate, tc.level, tc.score, category.Level, category.Score)
		}
	}
}

func TestAssessRiskOverallWeights(t *testing.T) {
	project := testProject()

	// Force every category to its maximum tier.
	project.CurrentProgress = 0
	now := project.EndDate.AddDate(0, 0, -1) // expected ~100, variance ~ -100

	reports := reportsWithShortage(5, 10, 0)
	for i := range reports {
		reports[i].Weather = &projects.WeatherSnapshot{Condition: "Thunderstorm"}
		reports[i].ExtraBudgetReason = "storm damage rework"
		reports[i].ExtraBudgetUsed = 50_000
	}

	assessment, err := AssessRisk(project, reports, now)
	if err != nil {
		t.Fatalf("AssessRisk: %v", err)
	}

	want := 90*weightTimeline + 85*weightBudget + 80*weightResource + 60*weightWeather + 70*weightQuality
	if math.Abs(assessment.OverallScore-want) > 1e-9 {
		t.Fatalf("expected overall %v, got %v", want, assessment.OverallScore)
	}
	if assessment.SuccessProbability != clamp(100-want, 10, 95) {
		t.Fatalf("unexpected success probability %v", assessment.SuccessProbability)
	}
	if assessment.OverallLevel != RiskLow {
		t.Fatalf("expected LOW success level, got %s", assessment.OverallLevel)
	}
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
