package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nomindnick/worktracker-v1/internal/models"
)

const updateColumns = `id, project_id, notes, created_at`

func (s *Storage) CreateStatusUpdate(ctx context.Context, u *models.StatusUpdate) error {
	defer s.observe("insert", "status_updates", time.Now())

	_, err := s.pool.Exec(ctx, `INSERT INTO status_updates (`+updateColumns+`)
		VALUES ($1, $2, $3, $4)`,
		u.ID, u.ProjectID, u.Notes, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting status update: %w", err)
	}
	return nil
}

// ListStatusUpdates returns a project's updates newest first.
func (s *Storage) ListStatusUpdates(ctx context.Context, projectID uuid.UUID) ([]*models.StatusUpdate, error) {
	defer s.observe("select", "status_updates", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+updateColumns+` FROM status_updates
		WHERE project_id = $1
		ORDER BY created_at DESC, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing status updates: %w", err)
	}
	updates, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.StatusUpdate])
	if err != nil {
		return nil, fmt.Errorf("scanning status updates: %w", err)
	}
	return updates, nil
}

// LatestStatusUpdates maps every project that has updates to its newest one.
func (s *Storage) LatestStatusUpdates(ctx context.Context) (map[uuid.UUID]*models.StatusUpdate, error) {
	defer s.observe("select_latest", "status_updates", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT DISTINCT ON (project_id) `+updateColumns+`
		FROM status_updates
		ORDER BY project_id, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing latest status updates: %w", err)
	}
	updates, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.StatusUpdate])
	if err != nil {
		return nil, fmt.Errorf("scanning status updates: %w", err)
	}

	latest := make(map[uuid.UUID]*models.StatusUpdate, len(updates))
	for _, u := range updates {
		latest[u.ProjectID] = u
	}
	return latest, nil
}
