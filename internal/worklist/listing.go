package worklist

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/models"
)

type SortKey string
type SortOrder string

const (
	SortNextTask    SortKey = "next_task"
	SortClientName  SortKey = "client_name"
	SortProjectName SortKey = "project_name"
	SortPriority    SortKey = "priority"
	SortStaleness   SortKey = "staleness"
	SortUpdatedAt   SortKey = "updated_at"
)

const DefaultSortKey = SortNextTask

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

var SortKeys = []SortKey{SortNextTask, SortClientName, SortProjectName, SortPriority, SortStaleness, SortUpdatedAt}

// ListQuery carries the optional filters and the sort of the project list.
// Empty filter fields match everything.
type ListQuery struct {
	Priority  string    `json:"priority,omitempty"`
	Attorney  string    `json:"attorney,omitempty"`
	Assigner  string    `json:"assigner,omitempty"`
	SortBy    SortKey   `json:"sort_by"`
	SortOrder SortOrder `json:"sort_order"`
}

// Normalize replaces unknown sort keys and orders with the defaults.
func (q ListQuery) Normalize() ListQuery {
	if !slices.Contains(SortKeys, q.SortBy) {
		q.SortBy = DefaultSortKey
	}
	if q.SortOrder != OrderDesc {
		q.SortOrder = OrderAsc
	}
	return q
}

func (q ListQuery) Matches(p *models.Project) bool {
	if q.Priority != "" && string(p.Priority) != q.Priority {
		return false
	}
	if q.Attorney != "" && !strings.Contains(p.AssignedAttorneys, q.Attorney) {
		return false
	}
	if q.Assigner != "" && p.Assigner != q.Assigner {
		return false
	}
	return true
}

// FilterAndSort applies q to the records and returns the ordered entries.
func FilterAndSort(records []Record, q ListQuery, now time.Time) []Entry {
	q = q.Normalize()

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if q.Matches(r.Project) {
			entries = append(entries, NewEntry(r, now))
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		c := compareValues(resolveKey(q.SortBy, a), resolveKey(q.SortBy, b))
		if q.SortOrder == OrderDesc {
			return -c
		}
		return c
	})
	return entries
}

// sortValue is the comparable form of any sort key. Missing values sort
// after present ones in ascending order.
type sortValue struct {
	missing bool
	num     int64
	text    string
}

func resolveKey(key SortKey, e Entry) sortValue {
	switch key {
	case SortClientName:
		return sortValue{text: strings.ToLower(e.Project.ClientName)}
	case SortProjectName:
		return sortValue{text: strings.ToLower(e.Project.ProjectName)}
	case SortPriority:
		return sortValue{num: int64(e.Project.Priority.Rank())}
	case SortStaleness:
		return sortValue{num: int64(e.DaysSinceUpdate)}
	case SortUpdatedAt:
		return sortValue{num: e.Project.UpdatedAt.UnixNano()}
	default:
		if e.NextTask == nil {
			return sortValue{missing: true}
		}
		return sortValue{num: e.NextTask.DueDate.Unix()}
	}
}

func compareValues(a, b sortValue) int {
	if a.missing != b.missing {
		if a.missing {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.num, b.num); c != 0 {
		return c
	}
	return cmp.Compare(a.text, b.text)
}

// Choices are the distinct filter values across a set of projects.
type Choices struct {
	Attorneys []string `json:"attorneys"`
	Assigners []string `json:"assigners"`
}

// FilterChoices must be given every active project, not a filtered subset.
func FilterChoices(records []Record) Choices {
	attorneys := map[string]struct{}{}
	assigners := map[string]struct{}{}
	for _, r := range records {
		for _, name := range r.Project.Attorneys() {
			attorneys[name] = struct{}{}
		}
		if a := strings.TrimSpace(r.Project.Assigner); a != "" {
			assigners[a] = struct{}{}
		}
	}
	return Choices{
		Attorneys: sortedKeys(attorneys),
		Assigners: sortedKeys(assigners),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
