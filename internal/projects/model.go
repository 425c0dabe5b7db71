package projects

import (
	"encoding/json"
	"strings"
	"time"
)

// ResourceType classifies a planned or consumed resource.
type ResourceType string

const (
	ResourceHuman     ResourceType = "human"
	ResourceMaterial  ResourceType = "material"
	ResourceEquipment ResourceType = "equipment"
)

// IsValid returns true if the resource type is a known value.
func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceHuman, ResourceMaterial, ResourceEquipment:
		return true
	default:
		return false
	}
}

// ResourceDefinition is one entry in a project's resource plan. CostPerUnit
// feeds the same-day cost-impact estimate when a shortfall is reported.
type ResourceDefinition struct {
	Name        string       `json:"name"`
	Type        ResourceType `json:"type"`
	CostPerUnit float64      `json:"costPerUnit"`
}

// Project is a construction project snapshot. The analytics engine consumes
// it read-only.
type Project struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Location        string               `json:"location"`
	StartDate       time.Time            `json:"startDate"`
	EndDate         time.Time            `json:"endDate"`
	TotalBudget     float64              `json:"totalBudget"`
	CurrentProgress float64              `json:"currentProgress"`
	Resources       []ResourceDefinition `json:"resources"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ResourceCount returns the number of planned resources of the given type.
func (p Project) ResourceCount(t ResourceType) int {
	n := 0
	for _, r := range p.Resources {
		if r.Type == t {
			n++
		}
	}
	return n
}

// CostPerUnit returns the planned rate for the named resource, or 0 when the
// plan carries no rate for it.
func (p Project) CostPerUnit(name string) float64 {
	for _, r := range p.Resources {
		if strings.EqualFold(r.Name, name) {
			return r.CostPerUnit
		}
	}
	return 0
}

// ResourceUsage is one resource row of a daily report. A shortage is recorded
// when Required > Available.
type ResourceUsage struct {
	Name      string       `json:"name"`
	Type      ResourceType `json:"type"`
	Required  float64      `json:"required"`
	Available float64      `json:"available"`
}

// Shortfall returns the missing quantity, or 0 when the row is fully covered.
func (u ResourceUsage) Shortfall() float64 {
	if u.Required > u.Available {
		return u.Required - u.Available
	}
	return 0
}

// WeatherSnapshot is the optional weather observation attached to a report.
type WeatherSnapshot struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
}

// DailyReport is one submitted report for a project date. Reports are
// append-only; AIAnalysis is written once after the analytics run.
type DailyReport struct {
	ID                 string           `json:"id"`
	ProjectID          string           `json:"projectId"`
	ReportDate         time.Time        `json:"reportDate"`
	ProgressPercentage float64          `json:"progressPercentage"`
	BudgetUtilized     float64          `json:"budgetUtilized"`
	ExtraBudgetUsed    float64          `json:"extraBudgetUsed"`
	ExtraBudgetReason  string           `json:"extraBudgetReason"`
	ResourceUsage      []ResourceUsage  `json:"resourceUsage"`
	Weather            *WeatherSnapshot `json:"weather,omitempty"`
	AIAnalysis         json.RawMessage  `json:"aiAnalysis,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// HasIssue reports whether the report flags an issue day, i.e. its extra
// budget reason is non-empty after trimming.
func (r DailyReport) HasIssue() bool {
	return strings.TrimSpace(r.ExtraBudgetReason) != ""
}
