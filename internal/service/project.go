package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/repository"
)

// ProjectService owns project CRUD. Completion lives in RewardService.
type ProjectService struct {
	pool     *pgxpool.Pool
	projects repository.ProjectRepository
	zones    repository.ZoneRepository
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(pool *pgxpool.Pool, projects repository.ProjectRepository, zones repository.ZoneRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{pool: pool, projects: projects, zones: zones, logger: logger}
}

// CreateProjectInput is the payload for creating a project.
type CreateProjectInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Energy      int        `json:"energy"`
	Points      int        `json:"points"`
	ZoneID      *uuid.UUID `json:"zone_id"`
}

// Create inserts a new active project.
func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, in CreateProjectInput) (*domain.Project, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation("project name is required")
	}
	if in.Energy < 0 || in.Points < 0 {
		return nil, domain.ErrValidation("energy and points must be non-negative")
	}
	if in.ZoneID != nil {
		zone, err := s.zones.FindByID(ctx, s.pool, *in.ZoneID)
		if err != nil {
			return nil, err
		}
		if zone == nil || zone.UserID != userID {
			return nil, domain.ErrNotFound("zone", in.ZoneID.String())
		}
	}
	project := &domain.Project{
		ID:          uuid.New(),
		UserID:      userID,
		ZoneID:      in.ZoneID,
		Name:        in.Name,
		Description: in.Description,
		Status:      domain.StatusActive,
		Energy:      in.Energy,
		Points:      in.Points,
	}
	if err := s.projects.Create(ctx, s.pool, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the user's projects.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	return s.projects.ListByUser(ctx, s.pool, userID)
}

// Get returns one project, enforcing ownership.
func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, s.pool, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound("project", projectID.String())
	}
	if project.UserID != userID {
		return nil, domain.ErrUnauthorized("project belongs to another user")
	}
	return project, nil
}

// Delete soft-deletes a project.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, projectID); err != nil {
		return err
	}
	return s.projects.SoftDelete(ctx, s.pool, projectID)
}
