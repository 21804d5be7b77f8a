package handlers_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/handlers"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"github.com/nomindnick/worktracker-v1/internal/worklist"
	"github.com/stretchr/testify/mock"
)

// MockService is a testify mock of the service layer.
type MockService struct {
	mock.Mock
}

var _ handlers.Service = (*MockService)(nil)

func (m *MockService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockService) Dashboard(ctx context.Context) (*worklist.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worklist.Dashboard), args.Error(1)
}

func (m *MockService) ExportCSV(ctx context.Context) (string, []byte, error) {
	args := m.Called(ctx)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func (m *MockService) FormChoices(ctx context.Context) (*service.FormChoices, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FormChoices), args.Error(1)
}

func (m *MockService) CreateProject(ctx context.Context, in service.ProjectInput) (*models.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockService) GetProjectDetail(ctx context.Context, id uuid.UUID) (*service.ProjectDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectDetail), args.Error(1)
}

func (m *MockService) UpdateProject(ctx context.Context, id uuid.UUID, in service.ProjectInput) (*models.Project, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockService) ListProjects(ctx context.Context, q worklist.ListQuery) (*service.ProjectList, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectList), args.Error(1)
}

func (m *MockService) ListArchivedProjects(ctx context.Context) ([]worklist.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]worklist.Entry), args.Error(1)
}

func (m *MockService) ArchiveProject(ctx context.Context, id uuid.UUID, actualHours string) (*models.Project, error) {
	args := m.Called(ctx, id, actualHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockService) UnarchiveProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockService) PurgeProject(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) CreateTask(ctx context.Context, in service.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) GetTask(ctx context.Context, id uuid.UUID) (*service.TaskItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskItem), args.Error(1)
}

func (m *MockService) UpdateTask(ctx context.Context, id uuid.UUID, in service.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) CompleteTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) SnoozeTask(ctx context.Context, id uuid.UUID, days int) (*models.Task, error) {
	args := m.Called(ctx, id, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) ListTasks(ctx context.Context, completed bool) ([]service.TaskItem, error) {
	args := m.Called(ctx, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TaskItem), args.Error(1)
}

func (m *MockService) CreateMilestone(ctx context.Context, in service.MilestoneInput) (*models.Milestone, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Milestone), args.Error(1)
}

func (m *MockService) CompleteMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Milestone), args.Error(1)
}

func (m *MockService) UncompleteMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Milestone), args.Error(1)
}

func (m *MockService) ListMilestones(ctx context.Context, completed bool) ([]service.MilestoneItem, error) {
	args := m.Called(ctx, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.MilestoneItem), args.Error(1)
}

func (m *MockService) CreateStatusUpdate(ctx context.Context, in service.StatusUpdateInput) (*models.StatusUpdate, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusUpdate), args.Error(1)
}
