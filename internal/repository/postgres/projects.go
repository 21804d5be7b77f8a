package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"go.uber.org/zap"
)

const projectColumns = `id, client_name, project_name, matter_number, client_number,
	assigner, assigned_attorneys, priority, status, estimated_hours, actual_hours,
	created_at, updated_at`

// CreateProject inserts the project and, when given, its first status update
// in one transaction.
func (s *Storage) CreateProject(ctx context.Context, p *models.Project, initial *models.StatusUpdate) error {
	defer s.observe("insert", "projects", time.Now())

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO projects (`+projectColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			p.ID, p.ClientName, p.ProjectName, p.MatterNumber, p.ClientNumber,
			p.Assigner, p.AssignedAttorneys, p.Priority, p.Status,
			p.EstimatedHours, p.ActualHours, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting project: %w", err)
		}

		if initial == nil {
			return nil
		}
		_, err = tx.Exec(ctx, `INSERT INTO status_updates (id, project_id, notes, created_at)
			VALUES ($1, $2, $3, $4)`,
			initial.ID, initial.ProjectID, initial.Notes, initial.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting initial status update: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Repository: failed to create project", err, zap.String("project_id", p.ID.String()))
		return err
	}
	return nil
}

func (s *Storage) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	defer s.observe("select", "projects", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Project])
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Storage) UpdateProject(ctx context.Context, p *models.Project) error {
	defer s.observe("update", "projects", time.Now())

	err := s.execOne(ctx, `UPDATE projects
			SET client_name = $1,
				project_name = $2,
				matter_number = $3,
				client_number = $4,
				assigner = $5,
				assigned_attorneys = $6,
				priority = $7,
				status = $8,
				estimated_hours = $9,
				actual_hours = $10,
				updated_at = $11
			WHERE id = $12`,
		p.ClientName, p.ProjectName, p.MatterNumber, p.ClientNumber,
		p.Assigner, p.AssignedAttorneys, p.Priority, p.Status,
		p.EstimatedHours, p.ActualHours, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// DeleteProject removes the project; foreign keys cascade to its children.
func (s *Storage) DeleteProject(ctx context.Context, id uuid.UUID) error {
	defer s.observe("delete", "projects", time.Now())

	if err := s.execOne(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// ListProjects returns projects in creation order. An empty status lists
// every project.
func (s *Storage) ListProjects(ctx context.Context, status models.Status) ([]*models.Project, error) {
	defer s.observe("select", "projects", time.Now())

	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	projects, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Project])
	if err != nil {
		return nil, fmt.Errorf("scanning projects: %w", err)
	}
	return projects, nil
}
