package projects

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores projects and reports in memory and is safe for concurrent
// use. It backs dev mode and tests when no database is configured.
type MemoryRepo struct {
	mu        sync.RWMutex
	projects  map[string]Project
	reports   map[string][]DailyReport
	reportIDs map[string]string // report ID -> project ID
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		projects:  make(map[string]Project),
		reports:   make(map[string][]DailyReport),
		reportIDs: make(map[string]string),
	}
}

// CreateProject stores the project.
func (r *MemoryRepo) CreateProject(ctx context.Context, project Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

// GetProject returns a project by ID.
func (r *MemoryRepo) GetProject(ctx context.Context, projectID string) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[projectID]
	if !ok {
		return Project{}, ErrNotFound
	}
	return project, nil
}

// ListProjects returns all projects ordered by creation time.
func (r *MemoryRepo) ListProjects(ctx context.Context) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateProjectProgress sets the project's cumulative progress percentage.
func (r *MemoryRepo) UpdateProjectProgress(ctx context.Context, projectID string, progress float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	project.CurrentProgress = progress
	project.UpdatedAt = time.Now().UTC()
	r.projects[projectID] = project
	return nil
}

// CreateReport stores a report, enforcing one report per project date.
func (r *MemoryRepo) CreateReport(ctx context.Context, report DailyReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reports[report.ProjectID] {
		if sameDate(existing.ReportDate, report.ReportDate) {
			return ErrDuplicateReport
		}
	}
	r.reports[report.ProjectID] = append(r.reports[report.ProjectID], report)
	r.reportIDs[report.ID] = report.ProjectID
	return nil
}

// ListReports returns a project's reports ordered by report date ascending.
func (r *MemoryRepo) ListReports(ctx context.Context, projectID string) ([]DailyReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]DailyReport(nil), r.reports[projectID]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportDate.Before(out[j].ReportDate)
	})
	return out, nil
}

// SetReportAnalysis writes the analysis payload once; later writes fail.
func (r *MemoryRepo) SetReportAnalysis(ctx context.Context, reportID string, payload json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	projectID, ok := r.reportIDs[reportID]
	if !ok {
		return ErrNotFound
	}
	reports := r.reports[projectID]
	for i := range reports {
		if reports[i].ID != reportID {
			continue
		}
		if len(reports[i].AIAnalysis) > 0 {
			return ErrAnalysisExists
		}
		reports[i].AIAnalysis = append(json.RawMessage(nil), payload...)
		return nil
	}
	return ErrNotFound
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
