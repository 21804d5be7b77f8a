package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/repository"
	"github.com/nomindnick/worktracker-v1/internal/worklist"
)

type ProjectList struct {
	Projects   []worklist.Entry   `json:"projects"`
	Query      worklist.ListQuery `json:"query"`
	Choices    worklist.Choices   `json:"choices"`
	Priorities []models.Priority  `json:"priorities"`
	SortKeys   []worklist.SortKey `json:"sort_keys"`
}

type ProjectDetail struct {
	Project             *models.Project        `json:"project"`
	NextTask            *models.Task           `json:"next_task,omitempty"`
	NextMilestone       *models.Milestone      `json:"next_milestone,omitempty"`
	PendingTasks        []*models.Task         `json:"pending_tasks"`
	CompletedTasks      []*models.Task         `json:"completed_tasks"`
	PendingMilestones   []*models.Milestone    `json:"pending_milestones"`
	CompletedMilestones []*models.Milestone    `json:"completed_milestones"`
	StatusUpdates       []*models.StatusUpdate `json:"status_updates"`
	DaysSinceUpdate     int                    `json:"days_since_update"`
	Staleness           worklist.Level         `json:"staleness"`
	StatusPreview       *worklist.Preview      `json:"status_preview,omitempty"`
}

// FormChoices are the values the create and edit forms offer.
type FormChoices struct {
	Projects    []*models.Project   `json:"projects"`
	Priorities  []models.Priority   `json:"priorities"`
	TargetTypes []models.TargetType `json:"target_types"`
	Attorneys   []string            `json:"attorneys"`
	Assigners   []string            `json:"assigners"`
}

// activeRecords loads every active project with its pending children.
func (s *WorklistService) activeRecords(ctx context.Context) ([]worklist.Record, error) {
	projects, err := s.repo.ListProjects(ctx, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return s.assemble(ctx, projects)
}

func (s *WorklistService) assemble(ctx context.Context, projects []*models.Project) ([]worklist.Record, error) {
	tasks, err := s.repo.ListTasks(ctx, repository.TaskFilter{Completed: repository.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	milestones, err := s.repo.ListMilestones(ctx, repository.MilestoneFilter{Completed: repository.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	latest, err := s.repo.LatestStatusUpdates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing status updates: %w", err)
	}
	return worklist.Assemble(projects, tasks, milestones, latest), nil
}

func (s *WorklistService) Dashboard(ctx context.Context) (*worklist.Dashboard, error) {
	records, err := s.activeRecords(ctx)
	if err != nil {
		return nil, err
	}
	d := worklist.Categorize(records, s.now())
	return &d, nil
}

// ListProjects filters and sorts the active projects. Filter choices always
// cover every active project.
func (s *WorklistService) ListProjects(ctx context.Context, q worklist.ListQuery) (*ProjectList, error) {
	records, err := s.activeRecords(ctx)
	if err != nil {
		return nil, err
	}

	q = q.Normalize()
	return &ProjectList{
		Projects:   worklist.FilterAndSort(records, q, s.now()),
		Query:      q,
		Choices:    worklist.FilterChoices(records),
		Priorities: models.Priorities,
		SortKeys:   worklist.SortKeys,
	}, nil
}

// ListArchivedProjects returns archived projects, most recently changed first.
func (s *WorklistService) ListArchivedProjects(ctx context.Context) ([]worklist.Entry, error) {
	projects, err := s.repo.ListProjects(ctx, models.StatusArchived)
	if err != nil {
		return nil, fmt.Errorf("listing archived projects: %w", err)
	}
	slices.SortStableFunc(projects, func(a, b *models.Project) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	records, err := s.assemble(ctx, projects)
	if err != nil {
		return nil, err
	}
	return worklist.NewEntries(records, s.now()), nil
}

func (s *WorklistService) GetProjectDetail(ctx context.Context, id uuid.UUID) (*ProjectDetail, error) {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListTasks(ctx, repository.TaskFilter{ProjectID: repository.ID(id)})
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	milestones, err := s.repo.ListMilestones(ctx, repository.MilestoneFilter{ProjectID: repository.ID(id)})
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	updates, err := s.repo.ListStatusUpdates(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing status updates: %w", err)
	}

	d := &ProjectDetail{
		Project:             p,
		PendingTasks:        []*models.Task{},
		CompletedTasks:      []*models.Task{},
		PendingMilestones:   []*models.Milestone{},
		CompletedMilestones: []*models.Milestone{},
		StatusUpdates:       updates,
	}
	for _, t := range tasks {
		if t.Completed {
			d.CompletedTasks = append(d.CompletedTasks, t)
		} else {
			d.PendingTasks = append(d.PendingTasks, t)
		}
	}
	slices.SortStableFunc(d.CompletedTasks, func(a, b *models.Task) int {
		return b.CompletedAt.Compare(*a.CompletedAt)
	})
	for _, m := range milestones {
		if m.Completed {
			d.CompletedMilestones = append(d.CompletedMilestones, m)
		} else {
			d.PendingMilestones = append(d.PendingMilestones, m)
		}
	}
	slices.Reverse(d.CompletedMilestones)

	var latest map[uuid.UUID]*models.StatusUpdate
	if len(updates) > 0 {
		latest = map[uuid.UUID]*models.StatusUpdate{id: updates[0]}
	}
	record := worklist.Assemble([]*models.Project{p}, d.PendingTasks, d.PendingMilestones, latest)[0]

	now := s.now()
	d.NextTask = record.NextTask()
	d.NextMilestone = record.NextMilestone
	d.DaysSinceUpdate = record.DaysSinceUpdate(now)
	d.Staleness = record.Staleness(now)
	d.StatusPreview = worklist.StatusPreview(record.LatestUpdate, worklist.PreviewLines)
	return d, nil
}

func (s *WorklistService) FormChoices(ctx context.Context) (*FormChoices, error) {
	records, err := s.activeRecords(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]*models.Project, len(records))
	for i, r := range records {
		projects[i] = r.Project
	}
	slices.SortStableFunc(projects, func(a, b *models.Project) int {
		if c := strings.Compare(strings.ToLower(a.ClientName), strings.ToLower(b.ClientName)); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.ProjectName), strings.ToLower(b.ProjectName))
	})

	choices := worklist.FilterChoices(records)
	return &FormChoices{
		Projects:    projects,
		Priorities:  models.Priorities,
		TargetTypes: models.TargetTypes,
		Attorneys:   choices.Attorneys,
		Assigners:   choices.Assigners,
	}, nil
}

// ExportCSV renders the active worklist and the attachment name for it.
func (s *WorklistService) ExportCSV(ctx context.Context) (string, []byte, error) {
	records, err := s.activeRecords(ctx)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	var buf bytes.Buffer
	if err := worklist.WriteCSV(&buf, records, now); err != nil {
		return "", nil, fmt.Errorf("exporting worklist: %w", err)
	}
	return worklist.ExportFilename(now), buf.Bytes(), nil
}
