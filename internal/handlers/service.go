package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"github.com/nomindnick/worktracker-v1/internal/worklist"
)

// Service is what the HTTP layer needs from the service layer.
type Service interface {
	HealthCheck(ctx context.Context) error

	Dashboard(ctx context.Context) (*worklist.Dashboard, error)
	ExportCSV(ctx context.Context) (string, []byte, error)
	FormChoices(ctx context.Context) (*service.FormChoices, error)

	CreateProject(ctx context.Context, in service.ProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetProjectDetail(ctx context.Context, id uuid.UUID) (*service.ProjectDetail, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in service.ProjectInput) (*models.Project, error)
	ListProjects(ctx context.Context, q worklist.ListQuery) (*service.ProjectList, error)
	ListArchivedProjects(ctx context.Context) ([]worklist.Entry, error)
	ArchiveProject(ctx context.Context, id uuid.UUID, actualHours string) (*models.Project, error)
	UnarchiveProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	PurgeProject(ctx context.Context, id uuid.UUID) error

	CreateTask(ctx context.Context, in service.TaskInput) (*models.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*service.TaskItem, error)
	UpdateTask(ctx context.Context, id uuid.UUID, in service.TaskInput) (*models.Task, error)
	CompleteTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	SnoozeTask(ctx context.Context, id uuid.UUID, days int) (*models.Task, error)
	ListTasks(ctx context.Context, completed bool) ([]service.TaskItem, error)

	CreateMilestone(ctx context.Context, in service.MilestoneInput) (*models.Milestone, error)
	CompleteMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error)
	UncompleteMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error)
	ListMilestones(ctx context.Context, completed bool) ([]service.MilestoneItem, error)

	CreateStatusUpdate(ctx context.Context, in service.StatusUpdateInput) (*models.StatusUpdate, error)
}

var _ Service = (*service.WorklistService)(nil)
