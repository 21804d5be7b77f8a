package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nomindnick/worktracker-v1/internal/models"
	repo "github.com/nomindnick/worktracker-v1/internal/repository"
)

const milestoneColumns = `id, project_id, name, description, date, completed, created_at`

func (s *Storage) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	defer s.observe("insert", "milestones", time.Now())

	_, err := s.pool.Exec(ctx, `INSERT INTO milestones (`+milestoneColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProjectID, m.Name, m.Description, m.Date, m.Completed, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (s *Storage) GetMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	defer s.observe("select", "milestones", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting milestone: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Milestone])
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (s *Storage) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	defer s.observe("update", "milestones", time.Now())

	err := s.execOne(ctx, `UPDATE milestones
			SET project_id = $1,
				name = $2,
				description = $3,
				date = $4,
				completed = $5
			WHERE id = $6`,
		m.ProjectID, m.Name, m.Description, m.Date, m.Completed, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return nil
}

// ListMilestones orders by date, then creation time.
func (s *Storage) ListMilestones(ctx context.Context, f repo.MilestoneFilter) ([]*models.Milestone, error) {
	defer s.observe("select", "milestones", time.Now())

	where := &whereClause{}
	if f.ProjectID != nil {
		where.add("project_id", *f.ProjectID)
	}
	if f.Completed != nil {
		where.add("completed", *f.Completed)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+milestoneColumns+` FROM milestones`+where.String()+` ORDER BY date, created_at, id`,
		where.args...)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	milestones, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Milestone])
	if err != nil {
		return nil, fmt.Errorf("scanning milestones: %w", err)
	}
	return milestones, nil
}
