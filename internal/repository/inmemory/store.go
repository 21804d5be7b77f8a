package inmemory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/models"
	repo "github.com/nomindnick/worktracker-v1/internal/repository"
)

// Storage keeps every record in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type Storage struct {
	mtx *sync.RWMutex

	projects   map[uuid.UUID]*models.Project
	projectIDs []uuid.UUID

	tasks      map[uuid.UUID]*models.Task
	milestones map[uuid.UUID]*models.Milestone
	updates    map[uuid.UUID]*models.StatusUpdate
}

func New() *Storage {
	return &Storage{
		mtx:        &sync.RWMutex{},
		projects:   make(map[uuid.UUID]*models.Project),
		projectIDs: []uuid.UUID{},
		tasks:      make(map[uuid.UUID]*models.Task),
		milestones: make(map[uuid.UUID]*models.Milestone),
		updates:    make(map[uuid.UUID]*models.StatusUpdate),
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: in-memory storage is available")
	return nil
}

func (s *Storage) Close() {}

func (s *Storage) CreateProject(ctx context.Context, p *models.Project, initial *models.StatusUpdate) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.projects[p.ID] = cloneProject(p)
	s.projectIDs = append(s.projectIDs, p.ID)
	if initial != nil {
		u := *initial
		s.updates[u.ID] = &u
	}
	return nil
}

func (s *Storage) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneProject(p), nil
}

func (s *Storage) UpdateProject(ctx context.Context, p *models.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.projects[p.ID]; !ok {
		return repo.ErrNotFound
	}
	s.projects[p.ID] = cloneProject(p)
	return nil
}

// DeleteProject removes the project with all of its children.
func (s *Storage) DeleteProject(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.projects[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.projects, id)
	s.projectIDs = slices.DeleteFunc(s.projectIDs, func(v uuid.UUID) bool { return v == id })

	for tid, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, tid)
		}
	}
	for mid, m := range s.milestones {
		if m.ProjectID == id {
			delete(s.milestones, mid)
		}
	}
	for uid, u := range s.updates {
		if u.ProjectID == id {
			delete(s.updates, uid)
		}
	}
	return nil
}

// ListProjects returns projects in creation order. An empty status lists
// every project.
func (s *Storage) ListProjects(ctx context.Context, status models.Status) ([]*models.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Project{}
	for _, id := range s.projectIDs {
		p := s.projects[id]
		if status != "" && p.Status != status {
			continue
		}
		res = append(res, cloneProject(p))
	}
	return res, nil
}

func (s *Storage) CreateTask(ctx context.Context, t *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (s *Storage) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *Storage) UpdateTask(ctx context.Context, t *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return repo.ErrNotFound
	}
	s.tasks[t.ID] = cloneTask(t)
	return nil
}

// ListTasks orders by due date, then creation time.
func (s *Storage) ListTasks(ctx context.Context, f repo.TaskFilter) ([]*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Task{}
	for _, t := range s.tasks {
		if f.ProjectID != nil && t.ProjectID != *f.ProjectID {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		res = append(res, cloneTask(t))
	}

	slices.SortFunc(res, func(a, b *models.Task) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return res, nil
}

func (s *Storage) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	copied := *m
	s.milestones[m.ID] = &copied
	return nil
}

func (s *Storage) GetMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	m, ok := s.milestones[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *Storage) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.milestones[m.ID]; !ok {
		return repo.ErrNotFound
	}
	copied := *m
	s.milestones[m.ID] = &copied
	return nil
}

// ListMilestones orders by date, then creation time.
func (s *Storage) ListMilestones(ctx context.Context, f repo.MilestoneFilter) ([]*models.Milestone, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Milestone{}
	for _, m := range s.milestones {
		if f.ProjectID != nil && m.ProjectID != *f.ProjectID {
			continue
		}
		if f.Completed != nil && m.Completed != *f.Completed {
			continue
		}
		copied := *m
		res = append(res, &copied)
	}

	slices.SortFunc(res, func(a, b *models.Milestone) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return res, nil
}

func (s *Storage) CreateStatusUpdate(ctx context.Context, u *models.StatusUpdate) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	copied := *u
	s.updates[u.ID] = &copied
	return nil
}

// ListStatusUpdates returns a project's updates newest first.
func (s *Storage) ListStatusUpdates(ctx context.Context, projectID uuid.UUID) ([]*models.StatusUpdate, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.StatusUpdate{}
	for _, u := range s.updates {
		if u.ProjectID != projectID {
			continue
		}
		copied := *u
		res = append(res, &copied)
	}

	slices.SortFunc(res, func(a, b *models.StatusUpdate) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return res, nil
}

// LatestStatusUpdates maps every project that has updates to its newest one.
func (s *Storage) LatestStatusUpdates(ctx context.Context) (map[uuid.UUID]*models.StatusUpdate, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	latest := make(map[uuid.UUID]*models.StatusUpdate)
	for _, u := range s.updates {
		if cur, ok := latest[u.ProjectID]; ok && !u.CreatedAt.After(cur.CreatedAt) {
			continue
		}
		copied := *u
		latest[u.ProjectID] = &copied
	}
	return latest, nil
}

func cloneProject(p *models.Project) *models.Project {
	copied := *p
	copied.EstimatedHours = cloneFloat(p.EstimatedHours)
	copied.ActualHours = cloneFloat(p.ActualHours)
	return &copied
}

func cloneTask(t *models.Task) *models.Task {
	copied := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		copied.CompletedAt = &at
	}
	return &copied
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
