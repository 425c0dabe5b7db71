package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"buildtrack-backend/internal/projects"
)

// PredictorFeatures is the feature vector sent to the external delay
// predictor. Field names follow the predictor's training schema.
type PredictorFeatures struct {
	ProjectSizeBudget      float64 `json:"project_size_budget"`
	ProjectDurationPlanned int     `json:"project_duration_planned"`
	ProgressVariance       float64 `json:"progress_variance"`
	DailyProgressVelocity  float64 `json:"daily_progress_velocity"`
	ShortageFrequency      float64 `json:"material_shortage_frequency"`
	WeatherImpactRate      float64 `json:"weather_impact_rate"`
	BudgetBurnRate         float64 `json:"budget_burn_rate"`
	CostOverrunPercentage  float64 `json:"cost_overrun_percentage"`
	ReworkFrequency        float64 `json:"rework_frequency"`
}

// PredictorResult is the external predictor's response.
type PredictorResult struct {
	DelayDays  float64 `json:"predicted_delay_days"`
	Confidence float64 `json:"confidence_percentage"`
	Model      string  `json:"model_used"`
}

// BuildPredictorFeatures derives the predictor feature vector from project
// state and report history.
func BuildPredictorFeatures(project projects.Project, reports []projects.DailyReport, window Window) PredictorFeatures {
	resource := AnalyzeResources(reports, utilizationWindow)
	weather := AnalyzeWeather(reports, weatherTrendWindow)
	quality := AnalyzeQuality(reports, qualityRiskWindow)
	budget := AnalyzeBudget(project.TotalBudget, project.CurrentProgress, reports)

	return PredictorFeatures{
		ProjectSizeBudget:      project.TotalBudget,
		ProjectDurationPlanned: window.TotalDays,
		ProgressVariance:       project.CurrentProgress - window.ExpectedProgress,
		DailyProgressVelocity:  averageDailyProgress(reports),
		ShortageFrequency:      resource.ShortageRate / 100,
		WeatherImpactRate:      weather.AdverseRate / 100,
		BudgetBurnRate:         budget.BurnRate,
		CostOverrunPercentage:  budget.TotalExtra / maxFloat(project.TotalBudget, 1) * 100,
		ReworkFrequency:        quality.IssueRate / 100,
	}
}

// PredictorClient calls the external ML delay-prediction service over HTTP.
type PredictorClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewPredictorClient constructs a client for the given base URL.
func NewPredictorClient(baseURL string) *PredictorClient {
	return &PredictorClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// PredictDelay calls POST {BaseURL}/predict-delay with the feature vector.
func (c *PredictorClient) PredictDelay(ctx context.Context, features PredictorFeatures) (PredictorResult, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return PredictorResult{}, fmt.Errorf("marshal predictor req: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/predict-delay", bytes.NewReader(body))
	if err != nil {
		return PredictorResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return PredictorResult{}, fmt.Errorf("predictor call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return PredictorResult{}, fmt.Errorf("predictor non-2xx: %s, body: %s", resp.Status, string(data))
	}

	var envelope struct {
		Success    bool            `json:"success"`
		Prediction PredictorResult `json:"prediction"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return PredictorResult{}, fmt.Errorf("decode predictor resp: %w", err)
	}
	if !envelope.Success {
		return PredictorResult{}, fmt.Errorf("predictor reported failure")
	}
	return envelope.Prediction, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
