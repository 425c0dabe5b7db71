package projects

import (
	"context"
	"encoding/json"
)

// Repo abstracts project and daily report storage. The analytics engine never
// touches storage directly; handlers load data through this interface and
// hand it to the engine.
type Repo interface {
	CreateProject(ctx context.Context, project Project) error
	GetProject(ctx context.Context, projectID string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	UpdateProjectProgress(ctx context.Context, projectID string, progress float64) error

	// CreateReport inserts a report. It returns ErrDuplicateReport when a
	// report already exists for the same project and date.
	CreateReport(ctx context.Context, report DailyReport) error

	// ListReports returns all reports for a project ordered by report date
	// ascending.
	ListReports(ctx context.Context, projectID string) ([]DailyReport, error)

	// SetReportAnalysis records the analysis payload for a report. The field
	// is write-once; a second write returns ErrAnalysisExists.
	SetReportAnalysis(ctx context.Context, reportID string, payload json.RawMessage) error
}
