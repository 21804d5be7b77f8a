package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/metrics"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/repository"
	"go.uber.org/zap"
)

// ProjectInput is the raw project form. Hours stay strings so that
// non-numeric input reaches validation.
type ProjectInput struct {
	ClientName        string
	ProjectName       string
	MatterNumber      string
	ClientNumber      string
	Assigner          string
	AssignedAttorneys string
	Priority          string
	EstimatedHours    string
	ActualHours       string

	// InitialStatus seeds the first status update. Create only.
	InitialStatus string
}

func (in ProjectInput) validate() ([]models.ProjectOption, error) {
	v := &validator{}

	client := v.required("client_name", in.ClientName, "Client name is required.")
	v.maxLength("client_name", client, maxNameLength, "Client name")
	project := v.required("project_name", in.ProjectName, "Project name is required.")
	v.maxLength("project_name", project, maxNameLength, "Project name")

	matter := strings.TrimSpace(in.MatterNumber)
	v.maxLength("matter_number", matter, maxNumberLength, "Matter number")
	clientNumber := strings.TrimSpace(in.ClientNumber)
	v.maxLength("client_number", clientNumber, maxNumberLength, "Client number")

	assigner := strings.TrimSpace(in.Assigner)
	if assigner == "" {
		assigner = models.DefaultAssigner
	}
	v.maxLength("assigner", assigner, maxNameLength, "Assigner")

	priority := v.priority("priority", in.Priority)
	estimated := v.hours("estimated_hours", in.EstimatedHours, "Estimated hours")
	actual := v.hours("actual_hours", in.ActualHours, "Actual hours")

	if err := v.err(); err != nil {
		return nil, err
	}
	return []models.ProjectOption{
		models.WithNames(client, project),
		models.WithNumbers(matter, clientNumber),
		models.WithAssignment(assigner, strings.TrimSpace(in.AssignedAttorneys)),
		models.WithProjectPriority(priority),
		models.WithEstimatedHours(estimated),
		models.WithActualHours(actual),
	}, nil
}

func (s *WorklistService) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	options, err := in.validate()
	if err != nil {
		logger.Info("Service: project input rejected", zap.Error(err))
		return nil, err
	}

	now := s.stamp()
	p := &models.Project{
		ID:        uuid.New(),
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Apply(options...)

	var initial *models.StatusUpdate
	if notes := strings.TrimSpace(in.InitialStatus); notes != "" {
		initial = &models.StatusUpdate{
			ID:        uuid.New(),
			ProjectID: p.ID,
			Notes:     notes,
			CreatedAt: now,
		}
	}

	if err := s.repo.CreateProject(ctx, p, initial); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	metrics.IncrementLifecycle("project", "created")
	logger.Info("Service: project created", zap.String("project_id", p.ID.String()))
	return p, nil
}

func (s *WorklistService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.getProject(ctx, id)
}

// UpdateProject edits the project fields. Archived projects stay editable.
func (s *WorklistService) UpdateProject(ctx context.Context, id uuid.UUID, in ProjectInput) (*models.Project, error) {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	options, err := in.validate()
	if err != nil {
		logger.Info("Service: project input rejected", zap.String("project_id", id.String()), zap.Error(err))
		return nil, err
	}

	p.Apply(options...)
	p.UpdatedAt = s.stamp()

	if err := s.saveProject(ctx, p); err != nil {
		return nil, err
	}
	metrics.IncrementLifecycle("project", "updated")
	return p, nil
}

// ArchiveProject moves an active project to the archive. A non-blank
// actualHours must be a non-negative number and becomes the final tally.
func (s *WorklistService) ArchiveProject(ctx context.Context, id uuid.UUID, actualHours string) (*models.Project, error) {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, NewBusinessError(CodeAlreadyArchived,
			fmt.Sprintf("project %s is already archived", id),
			ToDetail("id", id.String()))
	}

	v := &validator{}
	hours := v.hours("actual_hours", actualHours, "Actual hours")
	if err := v.err(); err != nil {
		return nil, err
	}

	p.Status = models.StatusArchived
	if hours != nil {
		p.ActualHours = hours
	}
	p.UpdatedAt = s.stamp()

	if err := s.saveProject(ctx, p); err != nil {
		return nil, err
	}
	metrics.IncrementLifecycle("project", "archived")
	logger.Info("Service: project archived", zap.String("project_id", id.String()))
	return p, nil
}

func (s *WorklistService) UnarchiveProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsActive() {
		return nil, NewBusinessError(CodeNotArchived,
			fmt.Sprintf("project %s is not archived", id),
			ToDetail("id", id.String()))
	}

	p.Status = models.StatusActive
	p.UpdatedAt = s.stamp()

	if err := s.saveProject(ctx, p); err != nil {
		return nil, err
	}
	metrics.IncrementLifecycle("project", "unarchived")
	logger.Info("Service: project unarchived", zap.String("project_id", id.String()))
	return p, nil
}

// PurgeProject hard-deletes an archived project together with its tasks,
// milestones and status updates.
func (s *WorklistService) PurgeProject(ctx context.Context, id uuid.UUID) error {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return err
	}
	if p.IsActive() {
		return NewBusinessError(CodeNotArchived,
			fmt.Sprintf("project %s must be archived before it can be purged", id),
			ToDetail("id", id.String()))
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound(ResourceProject, id.String())
		}
		return fmt.Errorf("purging project: %w", err)
	}
	metrics.IncrementLifecycle("project", "purged")
	logger.Info("Service: project purged", zap.String("project_id", id.String()))
	return nil
}

func (s *WorklistService) saveProject(ctx context.Context, p *models.Project) error {
	if err := s.repo.UpdateProject(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound(ResourceProject, p.ID.String())
		}
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}
