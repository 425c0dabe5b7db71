package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSchedule rejects projects whose end date is not after the start.
var ErrInvalidSchedule = errors.New("end date must be after start date")

// CreateProjectInput is the creation body for a project.
type CreateProjectInput struct {
	Name        string               `json:"name"`
	Location    string               `json:"location"`
	StartDate   time.Time            `json:"startDate"`
	EndDate     time.Time            `json:"endDate"`
	TotalBudget float64              `json:"totalBudget"`
	Resources   []ResourceDefinition `json:"resources"`
}

// Service contains business logic for project management.
type Service struct {
	Repo  Repo
	Clock func() time.Time
}

// NewService constructs a Service with a wall-clock default.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Clock: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// Create validates and stores a new project.
func (s *Service) Create(ctx context.Context, input CreateProjectInput) (Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Project{}, errors.New("project name is required")
	}
	if !input.EndDate.After(input.StartDate) {
		return Project{}, ErrInvalidSchedule
	}
	if input.TotalBudget <= 0 {
		return Project{}, errors.New("total budget must be positive")
	}
	for _, r := range input.Resources {
		if !r.Type.IsValid() {
			return Project{}, errors.New("unknown resource type: " + string(r.Type))
		}
	}

	now := s.now()
	project := Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		StartDate:   input.StartDate.UTC(),
		EndDate:     input.EndDate.UTC(),
		TotalBudget: input.TotalBudget,
		Resources:   input.Resources,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateProject(ctx, project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// Get returns a project by ID.
func (s *Service) Get(ctx context.Context, projectID string) (Project, error) {
	return s.Repo.GetProject(ctx, projectID)
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.Repo.ListProjects(ctx)
}

// Reports returns a project's reports in chronological order.
func (s *Service) Reports(ctx context.Context, projectID string) ([]DailyReport, error) {
	if _, err := s.Repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Repo.ListReports(ctx, projectID)
}
