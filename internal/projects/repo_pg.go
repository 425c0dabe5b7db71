package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateProject inserts a new project.
func (r *PGRepo) CreateProject(ctx context.Context, project Project) error {
	const query = `
INSERT INTO projects (id, name, location, start_date, end_date, total_budget, current_progress, resources, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	resources, err := marshalJSONB(project.Resources)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Location,
		project.StartDate,
		project.EndDate,
		project.TotalBudget,
		project.CurrentProgress,
		resources,
		project.CreatedAt,
		project.UpdatedAt,
	)
	return err
}

// GetProject returns a project by ID.
func (r *PGRepo) GetProject(ctx context.Context, projectID string) (Project, error) {
	const query = `
SELECT id, name, location, start_date, end_date, total_budget, current_progress, resources, created_at, updated_at
FROM projects
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, projectID)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return project, err
}

// ListProjects returns all projects ordered by creation time.
func (r *PGRepo) ListProjects(ctx context.Context) ([]Project, error) {
	const query = `
SELECT id, name, location, start_date, end_date, total_budget, current_progress, resources, created_at, updated_at
FROM projects
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, project)
	}
	return out, rows.Err()
}

// UpdateProjectProgress sets the project's cumulative progress percentage.
func (r *PGRepo) UpdateProjectProgress(ctx context.Context, projectID string, progress float64) error {
	const query = `
UPDATE projects
SET current_progress = $2, updated_at = $3
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, projectID, progress, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateReport inserts a daily report, enforcing one report per project date.
func (r *PGRepo) CreateReport(ctx context.Context, report DailyReport) error {
	const query = `
INSERT INTO daily_reports (
	id, project_id, report_date, progress_percentage, budget_utilized,
	extra_budget_used, extra_budget_reason, resource_usage, weather, ai_analysis, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	usage, err := marshalJSONB(report.ResourceUsage)
	if err != nil {
		return err
	}
	var weather any
	if report.Weather != nil {
		weather, err = marshalJSONB(report.Weather)
		if err != nil {
			return err
		}
	}
	var analysis any
	if len(report.AIAnalysis) > 0 {
		analysis = string(report.AIAnalysis)
	}
	_, err = r.DB.ExecContext(ctx, query,
		report.ID,
		report.ProjectID,
		report.ReportDate,
		report.ProgressPercentage,
		report.BudgetUtilized,
		report.ExtraBudgetUsed,
		report.ExtraBudgetReason,
		usage,
		weather,
		analysis,
		report.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateReport
	}
	return err
}

// ListReports returns a project's reports ordered by report date ascending.
func (r *PGRepo) ListReports(ctx context.Context, projectID string) ([]DailyReport, error) {
	const query = `
SELECT id, project_id, report_date, progress_percentage, budget_utilized,
       extra_budget_used, extra_budget_reason, resource_usage, weather, ai_analysis, created_at
FROM daily_reports
WHERE project_id = $1
ORDER BY report_date ASC`
	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, rows.Err()
}

// SetReportAnalysis writes the analysis payload once; later writes fail.
func (r *PGRepo) SetReportAnalysis(ctx context.Context, reportID string, payload json.RawMessage) error {
	const query = `
UPDATE daily_reports
SET ai_analysis = $2
WHERE id = $1 AND ai_analysis IS NULL`
	res, err := r.DB.ExecContext(ctx, query, reportID, string(payload))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the report is missing or the analysis was already written.
		var exists bool
		checkErr := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM daily_reports WHERE id = $1)`, reportID).Scan(&exists)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return ErrNotFound
		}
		return ErrAnalysisExists
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	var resources sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Location,
		&p.StartDate,
		&p.EndDate,
		&p.TotalBudget,
		&p.CurrentProgress,
		&resources,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Project{}, err
	}
	if resources.Valid && resources.String != "" {
		if err := json.Unmarshal([]byte(resources.String), &p.Resources); err != nil {
			return Project{}, fmt.Errorf("decode resources: %w", err)
		}
	}
	return p, nil
}

func scanReport(row rowScanner) (DailyReport, error) {
	var rep DailyReport
	var usage, weather, analysis sql.NullString
	if err := row.Scan(
		&rep.ID,
		&rep.ProjectID,
		&rep.ReportDate,
		&rep.ProgressPercentage,
		&rep.BudgetUtilized,
		&rep.ExtraBudgetUsed,
		&rep.ExtraBudgetReason,
		&usage,
		&weather,
		&analysis,
		&rep.CreatedAt,
	); err != nil {
		return DailyReport{}, err
	}
	if usage.Valid && usage.String != "" {
		if err := json.Unmarshal([]byte(usage.String), &rep.ResourceUsage); err != nil {
			return DailyReport{}, fmt.Errorf("decode resource usage: %w", err)
		}
	}
	if weather.Valid && weather.String != "" {
		var snapshot WeatherSnapshot
		if err := json.Unmarshal([]byte(weather.String), &snapshot); err != nil {
			return DailyReport{}, fmt.Errorf("decode weather: %w", err)
		}
		rep.Weather = &snapshot
	}
	if analysis.Valid && analysis.String != "" {
		rep.AIAnalysis = json.RawMessage(analysis.String)
	}
	return rep, nil
}

func marshalJSONB(value any) (string, error) {
	if value == nil {
		return "null", nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal jsonb: %w", err)
	}
	return string(data), nil
}

func isUniqueViolation(err error) bool {
	// pgx surfaces SQLSTATE 23505 in the error text for database/sql callers.
	return err != nil && strings.Contains(err.Error(), "23505")
}
