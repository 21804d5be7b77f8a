package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/repository"
	"go.uber.org/zap"
)

// WorklistService applies the lifecycle rules on top of a Repository.
type WorklistService struct {
	repo  Repository
	clock func() time.Time
	loc   *time.Location
}

type Option func(*WorklistService)

func WithClock(clock func() time.Time) Option {
	return func(s *WorklistService) {
		s.clock = clock
	}
}

// WithLocation sets the zone whose calendar decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *WorklistService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewWorklistService(repo Repository, options ...Option) *WorklistService {
	s := &WorklistService{
		repo:  repo,
		clock: time.Now,
		loc:   time.Local,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// now is the current instant in the configured zone.
func (s *WorklistService) now() time.Time {
	return s.clock().In(s.loc)
}

// stamp is the current instant as stored on records.
func (s *WorklistService) stamp() time.Time {
	return s.clock().UTC()
}

func (s *WorklistService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		logger.Error("Service: health check failed", err)
		return fmt.Errorf("service health check: %w", err)
	}
	return nil
}

func (s *WorklistService) getProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: project not found", zap.String("project_id", id.String()))
			return nil, NewNotFound(ResourceProject, id.String())
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// activeProject resolves the project a new or moved child points at. A
// missing, malformed or archived project is reported as not found.
func (s *WorklistService) activeProject(ctx context.Context, rawID string) (*models.Project, error) {
	rawID = strings.TrimSpace(rawID)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, NewNotFound(ResourceProject, rawID)
	}

	p, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		logger.Info("Service: project is archived", zap.String("project_id", id.String()))
		return nil, NewNotFound(ResourceProject, rawID)
	}
	return p, nil
}

// writableParent fails with PROJECT_ARCHIVED when the child's project is
// archived.
func (s *WorklistService) writableParent(ctx context.Context, resource Resource, childID, projectID uuid.UUID) (*models.Project, error) {
	p, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, newProjectArchived(resource, childID.String())
	}
	return p, nil
}
