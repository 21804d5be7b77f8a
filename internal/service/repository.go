package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/repository"
)

// Repository is the storage the service needs. Lookups of a missing record
// return repository.ErrNotFound.
type Repository interface {
	HealthCheck(ctx context.Context) error

	CreateProject(ctx context.Context, p *models.Project, initial *models.StatusUpdate) error
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, status models.Status) ([]*models.Project, error)

	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	ListTasks(ctx context.Context, f repository.TaskFilter) ([]*models.Task, error)

	CreateMilestone(ctx context.Context, m *models.Milestone) error
	GetMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error)
	UpdateMilestone(ctx context.Context, m *models.Milestone) error
	ListMilestones(ctx context.Context, f repository.MilestoneFilter) ([]*models.Milestone, error)

	CreateStatusUpdate(ctx context.Context, u *models.StatusUpdate) error
	ListStatusUpdates(ctx context.Context, projectID uuid.UUID) ([]*models.StatusUpdate, error)
	LatestStatusUpdates(ctx context.Context) (map[uuid.UUID]*models.StatusUpdate, error)
}
