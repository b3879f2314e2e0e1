package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
	"github.com/Vamap91/ROADMAP/internal/ports"
)

// defaultOwners are the owner labels offered before any record exists.
// Labels observed in stored records are merged in, so a new label submitted
// once becomes selectable afterwards.
var defaultOwners = []string{
	"Backend Team",
	"Frontend Team",
	"Data Team",
	"Mobile Team",
	"QA Team",
	"DevOps Team",
}

// ProjectService handles project-related operations
type ProjectService struct {
	projectRepo ports.ProjectRepository
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, appLogger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		logger:      appLogger,
	}
}

// ListProjects returns every project in insertion order.
func (s *ProjectService) ListProjects(ctx context.Context) ([]entities.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id int) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, req ports.CreateProjectRequest) (*entities.Project, error) {
	project := &entities.Project{
		Name:  req.Name,
		Start: req.Start,
		End:   req.End,
		Owner: req.Owner,
	}

	created, err := s.projectRepo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project created", "project_id", created.ID, "name", created.Name, "owner", created.Owner)

	return created, nil
}

// UpdateProject applies the supplied fields to the stored record, keeping
// the others, and re-validates the merged result. The read and the write
// are separate repository calls, so overlapping partial updates of the same
// record are last-writer-wins per field.
func (s *ProjectService) UpdateProject(ctx context.Context, id int, req ports.UpdateProjectRequest) (*entities.Project, error) {
	existing, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Start != nil {
		existing.Start = *req.Start
	}
	if req.End != nil {
		existing.End = *req.End
	}
	if req.Owner != nil {
		existing.Owner = *req.Owner
	}

	updated, err := s.projectRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project updated", "project_id", updated.ID, "name", updated.Name)

	return updated, nil
}

// DeleteProject deletes a project
func (s *ProjectService) DeleteProject(ctx context.Context, id int) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Project deleted", "project_id", id)

	return nil
}

// Summary counts projects by schedule position relative to asOf, plus a
// per-owner tally for the dashboard metrics row.
func (s *ProjectService) Summary(ctx context.Context, asOf entities.Date) (*ports.ProjectSummary, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	summary := &ports.ProjectSummary{
		AsOf:    asOf,
		Total:   len(projects),
		ByOwner: make(map[string]int),
	}
	for i := range projects {
		switch entities.DeriveStatus(&projects[i], asOf) {
		case entities.StatusActive:
			summary.Active++
		case entities.StatusUpcoming:
			summary.Upcoming++
		case entities.StatusCompleted:
			summary.Completed++
		}
		summary.ByOwner[projects[i].Owner]++
	}
	return summary, nil
}

// Owners returns the selectable owner labels: the defaults merged with
// every label observed in stored records, deduplicated.
func (s *ProjectService) Owners(ctx context.Context) ([]string, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	seen := make(map[string]bool, len(defaultOwners))
	owners := make([]string, 0, len(defaultOwners))
	for _, owner := range defaultOwners {
		seen[owner] = true
		owners = append(owners, owner)
	}

	var extras []string
	for i := range projects {
		if owner := projects[i].Owner; !seen[owner] {
			seen[owner] = true
			extras = append(extras, owner)
		}
	}
	sort.Strings(extras)

	return append(owners, extras...), nil
}

// ExportCSV renders the current record set in the backing-file format.
func (s *ProjectService) ExportCSV(ctx context.Context) ([]byte, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	data, err := entities.MarshalProjectsCSV(projects)
	if err != nil {
		return nil, fmt.Errorf("failed to encode projects: %w", err)
	}
	return data, nil
}

// ExportFilename names the download after the export date, matching the
// dashboard's projetos_YYYYMMDD.csv convention.
func ExportFilename(asOf entities.Date) string {
	return fmt.Sprintf("projetos_%s.csv", asOf.Time().Format("20060102"))
}
