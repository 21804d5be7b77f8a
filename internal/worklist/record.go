// Package worklist holds the aggregation rules behind the dashboard, the
// project list and the CSV export. Everything here is a pure function of the
// records handed in and the current time.
package worklist

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/models"
)

// Record is a project together with the child data the views need.
type Record struct {
	Project       *models.Project
	PendingTasks  []*models.Task
	NextMilestone *models.Milestone
	LatestUpdate  *models.StatusUpdate
}

// Assemble groups child rows under their projects. Children whose project is
// not in projects are ignored. Project order is preserved.
func Assemble(projects []*models.Project, tasks []*models.Task, milestones []*models.Milestone, latest map[uuid.UUID]*models.StatusUpdate) []Record {
	tasksByProject := make(map[uuid.UUID][]*models.Task)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		tasksByProject[t.ProjectID] = append(tasksByProject[t.ProjectID], t)
	}

	nextMilestone := make(map[uuid.UUID]*models.Milestone)
	for _, m := range milestones {
		if m.Completed {
			continue
		}
		if cur, ok := nextMilestone[m.ProjectID]; !ok || m.Date.Before(cur.Date) {
			nextMilestone[m.ProjectID] = m
		}
	}

	records := make([]Record, 0, len(projects))
	for _, p := range projects {
		pending := tasksByProject[p.ID]
		slices.SortStableFunc(pending, func(a, b *models.Task) int {
			return a.DueDate.Compare(b.DueDate)
		})
		records = append(records, Record{
			Project:       p,
			PendingTasks:  pending,
			NextMilestone: nextMilestone[p.ID],
			LatestUpdate:  latest[p.ID],
		})
	}
	return records
}

// NextTask is the earliest-due pending task, or nil.
func (r Record) NextTask() *models.Task {
	var next *models.Task
	for _, t := range r.PendingTasks {
		if t.Completed {
			continue
		}
		if next == nil || t.DueDate.Before(next.DueDate) {
			next = t
		}
	}
	return next
}

func (r Record) PendingTaskCount() int {
	count := 0
	for _, t := range r.PendingTasks {
		if !t.Completed {
			count++
		}
	}
	return count
}

// Entry is the presentation shape of a record at a given moment.
type Entry struct {
	Project          *models.Project   `json:"project"`
	NextTask         *models.Task      `json:"next_task,omitempty"`
	NextMilestone    *models.Milestone `json:"next_milestone,omitempty"`
	PendingTaskCount int               `json:"pending_task_count"`
	DaysSinceUpdate  int               `json:"days_since_update"`
	Staleness        Level             `json:"staleness"`
	StatusPreview    *Preview          `json:"status_preview,omitempty"`
}

func NewEntry(r Record, now time.Time) Entry {
	days := r.DaysSinceUpdate(now)
	return Entry{
		Project:          r.Project,
		NextTask:         r.NextTask(),
		NextMilestone:    r.NextMilestone,
		PendingTaskCount: r.PendingTaskCount(),
		DaysSinceUpdate:  days,
		Staleness:        LevelFor(days),
		StatusPreview:    StatusPreview(r.LatestUpdate, PreviewLines),
	}
}

func NewEntries(records []Record, now time.Time) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = NewEntry(r, now)
	}
	return entries
}
