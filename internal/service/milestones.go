package service

import (
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

type MilestoneInput struct {
	ProjectID   string
	Name        string
	Description string
	Date        string
}

type MilestoneItem struct {
	Milestone *models.Milestone `json:"milestone"`
	Project   *models.Project   `json:"project"`
}

func (s *WorklistService) CreateMilestone(ctx context.Context, in MilestoneInput) (*models.Milestone, error) {
	p, err := s.activeProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	v := &validator{}
	name := v.required("name", in.Name, "Milestone name is required.")
	v.maxLength("name", name, maxNameLength, "Milestone name")
	date := v.date("date", in.Date, "Date")
	if err := v.err(); err != nil {
		logger.Info("Service: milestone input rejected", zap.Error(err))
		return nil, err
	}

	m := &models.Milestone{
		ID:          uuid.New(),
		ProjectID:   p.ID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		CreatedAt:   s.stamp(),
	}
	if err := s.repo.CreateMilestone(ctx, m); err != nil {
		return nil, fmt.Errorf("creating milestone: %w", err)
	}
	metrics.IncrementLifecycle("milestone", "created")
	logger.Info("Service: milestone created",
		zap.String("milestone_id", m.ID.String()),
		zap.String("project_id", p.ID.String()))
	return m, nil
}

func (s *WorklistService) CompleteMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	return s.setMilestoneCompleted(ctx, id, true)
}

func (s *WorklistService) UncompleteMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	return s.setMilestoneCompleted(ctx, id, false)
}

func (s *WorklistService) setMilestoneCompleted(ctx context.Context, id uuid.UUID, completed bool) (*models.Milestone, error) {
	m, err := s.repo.GetMilestone(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound(ResourceMilestone, id.String())
		}
		return nil, fmt.Errorf("getting milestone: %w", err)
	}
	if _, err := s.writableParent(ctx, ResourceMilestone, m.ID, m.ProjectID); err != nil {
		return nil, err
	}

	m.Completed = completed
	if err := s.repo.UpdateMilestone(ctx, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound(ResourceMilestone, id.String())
		}
		return nil, fmt.Errorf("updating milestone: %w", err)
	}

	event := "completed"
	if !completed {
		event = "uncompleted"
	}
	metrics.IncrementLifecycle("milestone", event)
	logger.Info("Service: milestone "+event, zap.String("milestone_id", id.String()))
	return m, nil
}

// ListMilestones lists pending milestones of active projects soonest first,
// or completed ones latest first.
func (s *WorklistService) ListMilestones(ctx context.Context, completed bool) ([]MilestoneItem, error) {
	milestones, err := s.repo.ListMilestones(ctx, repository.MilestoneFilter{Completed: repository.Bool(completed)})
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	projects, err := s.projectIndex(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]MilestoneItem, 0, len(milestones))
	for _, m := range milestones {
		p := projects[m.ProjectID]
		if !completed && (p == nil || !p.IsActive()) {
			continue
		}
		items = append(items, MilestoneItem{Milestone: m, Project: p})
	}
	if completed {
		slices.Reverse(items)
	}
	return items, nil
}
