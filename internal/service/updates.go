package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/metrics"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"go.uber.org/zap"
)

type StatusUpdateInput struct {
	ProjectID string
	Notes     string
}

// CreateStatusUpdate appends a note to an active project. The note is what
// resets the project's staleness clock.
func (s *WorklistService) CreateStatusUpdate(ctx context.Context, in StatusUpdateInput) (*models.StatusUpdate, error) {
	p, err := s.activeProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	v := &validator{}
	notes := v.required("notes", in.Notes, "Status notes are required.")
	if err := v.err(); err != nil {
		return nil, err
	}

	u := &models.StatusUpdate{
		ID:        uuid.New(),
		ProjectID: p.ID,
		Notes:     notes,
		CreatedAt: s.stamp(),
	}
	if err := s.repo.CreateStatusUpdate(ctx, u); err != nil {
		return nil, fmt.Errorf("creating status update: %w", err)
	}
	metrics.IncrementLifecycle("status_update", "created")
	logger.Info("Service: status update created",
		zap.String("update_id", u.ID.String()),
		zap.String("project_id", p.ID.String()))
	return u, nil
}
