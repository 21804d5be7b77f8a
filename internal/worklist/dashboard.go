package worklist

import (
	"cmp"
	"slices"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/models"
)

type Bucket string

const (
	BucketDueToday    Bucket = "due_today"
	BucketDueTomorrow Bucket = "due_tomorrow"
	BucketDueThisWeek Bucket = "due_this_week"
	BucketDueLater    Bucket = "due_later"
	BucketNoTasks     Bucket = "no_tasks"
)

const (
	weekHorizon  = 7
	laterHorizon = 14
)

// Dashboard partitions active projects by the due date of their next task.
type Dashboard struct {
	Today       string  `json:"today"`
	DueToday    []Entry `json:"due_today"`
	DueTomorrow []Entry `json:"due_tomorrow"`
	DueThisWeek []Entry `json:"due_this_week"`
	DueLater    []Entry `json:"due_later"`
	NoTasks     []Entry `json:"no_tasks"`
}

// BucketFor places a next task relative to today. The second result is
// false when the task is due beyond the dashboard horizon.
func BucketFor(next *models.Task, today time.Time) (Bucket, bool) {
	if next == nil {
		return BucketNoTasks, true
	}

	offset := models.DaysBetween(today, next.DueDate)
	switch {
	case offset <= 0:
		return BucketDueToday, true
	case offset == 1:
		return BucketDueTomorrow, true
	case offset <= weekHorizon:
		return BucketDueThisWeek, true
	case offset <= laterHorizon:
		return BucketDueLater, true
	}
	return "", false
}

// Categorize builds the dashboard. Only active projects are considered.
func Categorize(records []Record, now time.Time) Dashboard {
	today := models.DateOf(now)
	d := Dashboard{
		Today:       models.FormatDate(today),
		DueToday:    []Entry{},
		DueTomorrow: []Entry{},
		DueThisWeek: []Entry{},
		DueLater:    []Entry{},
		NoTasks:     []Entry{},
	}

	for _, r := range records {
		if !r.Project.IsActive() {
			continue
		}
		entry := NewEntry(r, now)
		bucket, ok := BucketFor(entry.NextTask, today)
		if !ok {
			continue
		}
		switch bucket {
		case BucketDueToday:
			d.DueToday = append(d.DueToday, entry)
		case BucketDueTomorrow:
			d.DueTomorrow = append(d.DueTomorrow, entry)
		case BucketDueThisWeek:
			d.DueThisWeek = append(d.DueThisWeek, entry)
		case BucketDueLater:
			d.DueLater = append(d.DueLater, entry)
		case BucketNoTasks:
			d.NoTasks = append(d.NoTasks, entry)
		}
	}

	for _, bucket := range [][]Entry{d.DueToday, d.DueTomorrow, d.DueThisWeek, d.DueLater} {
		slices.SortStableFunc(bucket, compareByNextTask)
	}
	slices.SortStableFunc(d.NoTasks, func(a, b Entry) int {
		return cmp.Compare(b.DaysSinceUpdate, a.DaysSinceUpdate)
	})

	return d
}

// compareByNextTask orders by due date, then task priority rank.
func compareByNextTask(a, b Entry) int {
	if c := a.NextTask.DueDate.Compare(b.NextTask.DueDate); c != 0 {
		return c
	}
	return cmp.Compare(a.NextTask.Priority.Rank(), b.NextTask.Priority.Rank())
}
