package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nomindnick/worktracker-v1/internal/models"
	repo "github.com/nomindnick/worktracker-v1/internal/repository"
)

const taskColumns = `id, project_id, target_type, target_name, due_date, description,
	priority, completed, completed_at, created_at`

func (s *Storage) CreateTask(ctx context.Context, t *models.Task) error {
	defer s.observe("insert", "tasks", time.Now())

	_, err := s.pool.Exec(ctx, `INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.ProjectID, t.TargetType, t.TargetName, t.DueDate, t.Description,
		t.Priority, t.Completed, t.CompletedAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (s *Storage) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	defer s.observe("select", "tasks", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Task])
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *Storage) UpdateTask(ctx context.Context, t *models.Task) error {
	defer s.observe("update", "tasks", time.Now())

	err := s.execOne(ctx, `UPDATE tasks
			SET project_id = $1,
				target_type = $2,
				target_name = $3,
				due_date = $4,
				description = $5,
				priority = $6,
				completed = $7,
				completed_at = $8
			WHERE id = $9`,
		t.ProjectID, t.TargetType, t.TargetName, t.DueDate, t.Description,
		t.Priority, t.Completed, t.CompletedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// ListTasks orders by due date, then creation time.
func (s *Storage) ListTasks(ctx context.Context, f repo.TaskFilter) ([]*models.Task, error) {
	defer s.observe("select", "tasks", time.Now())

	where := &whereClause{}
	if f.ProjectID != nil {
		where.add("project_id", *f.ProjectID)
	}
	if f.Completed != nil {
		where.add("completed", *f.Completed)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks`+where.String()+` ORDER BY due_date, created_at, id`,
		where.args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Task])
	if err != nil {
		return nil, fmt.Errorf("scanning tasks: %w", err)
	}
	return tasks, nil
}

// whereClause joins equality conditions with AND and numbers the arguments.
type whereClause struct {
	conditions []string
	args       []any
}

func (w *whereClause) add(column string, value any) {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}
