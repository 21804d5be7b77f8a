package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/metrics"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/repository"
	"go.uber.org/zap"
)

const (
	MinSnoozeDays = 1
	MaxSnoozeDays = 365
)

// TaskInput is the raw task form.
type TaskInput struct {
	// ProjectID may be left blank on edit to keep the current project.
	ProjectID   string
	TargetType  string
	TargetName  string
	DueDate     string
	Description string
	Priority    string
}

func (in TaskInput) validate() ([]models.TaskOption, error) {
	v := &validator{}

	name := v.required("target_name", in.TargetName, "Target name is required.")
	v.maxLength("target_name", name, maxNameLength, "Target name")
	due := v.date("due_date", in.DueDate, "Due date")
	targetType := v.targetType("target_type", in.TargetType)
	priority := v.priority("priority", in.Priority)

	if err := v.err(); err != nil {
		return nil, err
	}
	return []models.TaskOption{
		models.WithTarget(targetType, name),
		models.WithDueDate(due),
		models.WithDescription(strings.TrimSpace(in.Description)),
		models.WithTaskPriority(priority),
	}, nil
}

// TaskItem is a task shown with its project.
type TaskItem struct {
	Task    *models.Task    `json:"task"`
	Project *models.Project `json:"project"`
}

// ClampSnoozeDays keeps a snooze within [1, 365]. Zero or negative
// values snooze by one day.
func ClampSnoozeDays(days int) int {
	return max(MinSnoozeDays, min(days, MaxSnoozeDays))
}

func (s *WorklistService) CreateTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	p, err := s.activeProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	options, err := in.validate()
	if err != nil {
		logger.Info("Service: task input rejected", zap.Error(err))
		return nil, err
	}

	t := &models.Task{
		ID:        uuid.New(),
		CreatedAt: s.stamp(),
	}
	t.Apply(options...)
	t.Apply(models.WithProject(p.ID))

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	metrics.IncrementLifecycle("task", "created")
	logger.Info("Service: task created",
		zap.String("task_id", t.ID.String()),
		zap.String("project_id", p.ID.String()))
	return t, nil
}

func (s *WorklistService) GetTask(ctx context.Context, id uuid.UUID) (*TaskItem, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.getProject(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	return &TaskItem{Task: t, Project: p}, nil
}

// UpdateTask edits a task and may move it to another active project.
func (s *WorklistService) UpdateTask(ctx context.Context, id uuid.UUID, in TaskInput) (*models.Task, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.writableParent(ctx, ResourceTask, t.ID, t.ProjectID); err != nil {
		return nil, err
	}

	projectID := t.ProjectID
	if strings.TrimSpace(in.ProjectID) != "" {
		target, err := s.activeProject(ctx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		projectID = target.ID
	}

	options, err := in.validate()
	if err != nil {
		logger.Info("Service: task input rejected", zap.String("task_id", id.String()), zap.Error(err))
		return nil, err
	}

	t.Apply(options...)
	t.Apply(models.WithProject(projectID))

	if err := s.saveTask(ctx, t); err != nil {
		return nil, err
	}
	metrics.IncrementLifecycle("task", "updated")
	return t, nil
}

// CompleteTask marks the task done. Completing it again moves completed_at.
func (s *WorklistService) CompleteTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.writableParent(ctx, ResourceTask, t.ID, t.ProjectID); err != nil {
		return nil, err
	}

	t.Complete(s.stamp())

	if err := s.saveTask(ctx, t); err != nil {
		return nil, err
	}
	metrics.IncrementLifecycle("task", "completed")
	logger.Info("Service: task completed", zap.String("task_id", id.String()))
	return t, nil
}

// SnoozeTask pushes the due date by the clamped number of days.
func (s *WorklistService) SnoozeTask(ctx context.Context, id uuid.UUID, days int) (*models.Task, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.writableParent(ctx, ResourceTask, t.ID, t.ProjectID); err != nil {
		return nil, err
	}

	days = ClampSnoozeDays(days)
	t.Snooze(days)

	if err := s.saveTask(ctx, t); err != nil {
		return nil, err
	}
	metrics.IncrementLifecycle("task", "snoozed")
	logger.Info("Service: task snoozed",
		zap.String("task_id", id.String()),
		zap.Int("days", days),
		zap.String("due_date", models.FormatDate(t.DueDate)))
	return t, nil
}

// ListTasks lists pending tasks of active projects by due date and priority,
// or completed tasks most recent first.
func (s *WorklistService) ListTasks(ctx context.Context, completed bool) ([]TaskItem, error) {
	tasks, err := s.repo.ListTasks(ctx, repository.TaskFilter{Completed: repository.Bool(completed)})
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	projects, err := s.projectIndex(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		p := projects[t.ProjectID]
		if !completed && (p == nil || !p.IsActive()) {
			continue
		}
		items = append(items, TaskItem{Task: t, Project: p})
	}

	if completed {
		slices.SortStableFunc(items, func(a, b TaskItem) int {
			return b.Task.CompletedAt.Compare(*a.Task.CompletedAt)
		})
	} else {
		slices.SortStableFunc(items, func(a, b TaskItem) int {
			if c := a.Task.DueDate.Compare(b.Task.DueDate); c != 0 {
				return c
			}
			return cmp.Compare(a.Task.Priority.Rank(), b.Task.Priority.Rank())
		})
	}
	return items, nil
}

func (s *WorklistService) getTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: task not found", zap.String("task_id", id.String()))
			return nil, NewNotFound(ResourceTask, id.String())
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

func (s *WorklistService) saveTask(ctx context.Context, t *models.Task) error {
	if err := s.repo.UpdateTask(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound(ResourceTask, t.ID.String())
		}
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (s *WorklistService) projectIndex(ctx context.Context) (map[uuid.UUID]*models.Project, error) {
	projects, err := s.repo.ListProjects(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	index := make(map[uuid.UUID]*models.Project, len(projects))
	for _, p := range projects {
		index[p.ID] = p
	}
	return index, nil
}
