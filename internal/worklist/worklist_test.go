package worklist_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/worklist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 11, 15, 30, 0, 0, time.UTC)

func today() time.Time { return models.DateOf(now) }

func newProject(client, name string) *models.Project {
	return &models.Project{
		ID:                uuid.New(),
		ClientName:        client,
		ProjectName:       name,
		Assigner:          models.DefaultAssigner,
		AssignedAttorneys: "Smith",
		Priority:          models.PriorityMedium,
		Status:            models.StatusActive,
		CreatedAt:         now.Add(-time.Hour),
		UpdatedAt:         now.Add(-time.Hour),
	}
}

func taskDueIn(p *models.Project, days int, priority models.Priority) *models.Task {
	return &models.Task{
		ID:         uuid.New(),
		ProjectID:  p.ID,
		TargetType: models.TargetSelf,
		TargetName: "Draft",
		DueDate:    models.AddDays(today(), days),
		Priority:   priority,
		CreatedAt:  now,
	}
}

func projectIDs(entries []worklist.Entry) []uuid.UUID {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.Project.ID
	}
	return ids
}

func TestStaleness_Boundaries(t *testing.T) {
	tests := []struct {
		days     int
		expected worklist.Level
	}{
		{0, worklist.LevelOK},
		{6, worklist.LevelOK},
		{7, worklist.LevelWarning},
		{13, worklist.LevelWarning},
		{14, worklist.LevelCritical},
		{40, worklist.LevelCritical},
	}

	for _, tt := range tests {
		p := newProject("Acme", "Lease")
		p.CreatedAt = now.Add(-time.Duration(tt.days) * 24 * time.Hour)
		r := worklist.Record{Project: p}

		assert.Equal(t, tt.days, r.DaysSinceUpdate(now))
		assert.Equal(t, tt.expected, r.Staleness(now), "days=%d", tt.days)
	}
}

func TestStaleness_UsesLatestUpdate(t *testing.T) {
	p := newProject("Acme", "Lease")
	p.CreatedAt = now.Add(-30 * 24 * time.Hour)
	r := worklist.Record{
		Project:      p,
		LatestUpdate: &models.StatusUpdate{Notes: "called", CreatedAt: now.Add(-2 * 24 * time.Hour)},
	}
	assert.Equal(t, 2, r.DaysSinceUpdate(now))
	assert.Equal(t, worklist.LevelOK, r.Staleness(now))

	assert.Equal(t, 6, worklist.DaysSince(now.Add(-(7*24*time.Hour - time.Minute)), now))
	assert.Equal(t, 0, worklist.DaysSince(now.Add(time.Hour), now))
}

func TestAssemble(t *testing.T) {
	p := newProject("Acme", "Lease")
	other := newProject("Beta", "Merger")

	late := taskDueIn(p, 5, models.PriorityLow)
	early := taskDueIn(p, 2, models.PriorityLow)
	done := taskDueIn(p, -3, models.PriorityHigh)
	done.Completed = true

	m1 := &models.Milestone{ID: uuid.New(), ProjectID: p.ID, Name: "Hearing", Date: models.AddDays(today(), 20)}
	m2 := &models.Milestone{ID: uuid.New(), ProjectID: p.ID, Name: "Filing", Date: models.AddDays(today(), 10)}
	m0 := &models.Milestone{ID: uuid.New(), ProjectID: p.ID, Name: "Intake", Date: models.AddDays(today(), -10), Completed: true}
	orphan := &models.Milestone{ID: uuid.New(), ProjectID: uuid.New(), Name: "Lost"}

	records := worklist.Assemble(
		[]*models.Project{p, other},
		[]*models.Task{late, early, done},
		[]*models.Milestone{m1, m2, m0, orphan},
		nil,
	)

	require.Len(t, records, 2)
	assert.Equal(t, p.ID, records[0].Project.ID)
	assert.Equal(t, []*models.Task{early, late}, records[0].PendingTasks)
	assert.Equal(t, early, records[0].NextTask())
	assert.Equal(t, 2, records[0].PendingTaskCount())
	assert.Equal(t, m2, records[0].NextMilestone)

	assert.Nil(t, records[1].NextTask())
	assert.Nil(t, records[1].NextMilestone)
	assert.Zero(t, records[1].PendingTaskCount())
}

func TestBucketFor_Boundaries(t *testing.T) {
	p := newProject("Acme", "Lease")

	tests := []struct {
		offset   int
		expected worklist.Bucket
		shown    bool
	}{
		{-4, worklist.BucketDueToday, true},
		{0, worklist.BucketDueToday, true},
		{1, worklist.BucketDueTomorrow, true},
		{2, worklist.BucketDueThisWeek, true},
		{6, worklist.BucketDueThisWeek, true},
		{7, worklist.BucketDueThisWeek, true},
		{8, worklist.BucketDueLater, true},
		{14, worklist.BucketDueLater, true},
		{15, "", false},
	}

	for _, tt := range tests {
		bucket, shown := worklist.BucketFor(taskDueIn(p, tt.offset, models.PriorityMedium), today())
		assert.Equal(t, tt.shown, shown, "offset=%d", tt.offset)
		assert.Equal(t, tt.expected, bucket, "offset=%d", tt.offset)
	}

	bucket, shown := worklist.BucketFor(nil, today())
	assert.True(t, shown)
	assert.Equal(t, worklist.BucketNoTasks, bucket)
}

func TestCategorize(t *testing.T) {
	overdue := newProject("A", "Overdue")
	todayLow := newProject("B", "Today low")
	todayHigh := newProject("C", "Today high")
	tomorrow := newProject("D", "Tomorrow")
	far := newProject("E", "Far")
	idleOld := newProject("F", "Idle old")
	idleOld.CreatedAt = now.Add(-20 * 24 * time.Hour)
	idleNew := newProject("G", "Idle new")
	archived := newProject("H", "Archived")
	archived.Status = models.StatusArchived
	weekEarly := newProject("I", "Week early")
	weekLow := newProject("J", "Week low")
	weekHigh := newProject("K", "Week high")
	laterLow := newProject("L", "Later low")
	laterHigh := newProject("M", "Later high")

	tasks := []*models.Task{
		taskDueIn(overdue, -2, models.PriorityLow),
		taskDueIn(todayLow, 0, models.PriorityLow),
		taskDueIn(todayHigh, 0, models.PriorityHigh),
		taskDueIn(tomorrow, 1, models.PriorityMedium),
		taskDueIn(far, 30, models.PriorityHigh),
		taskDueIn(archived, 0, models.PriorityHigh),
		taskDueIn(weekLow, 5, models.PriorityLow),
		taskDueIn(weekEarly, 3, models.PriorityLow),
		taskDueIn(weekHigh, 5, models.PriorityHigh),
		taskDueIn(laterLow, 10, models.PriorityLow),
		taskDueIn(laterHigh, 10, models.PriorityHigh),
	}

	records := worklist.Assemble(
		[]*models.Project{todayLow, idleNew, weekLow, laterLow, overdue, far, weekHigh, todayHigh, laterHigh, tomorrow, weekEarly, idleOld, archived},
		tasks, nil, nil,
	)
	d := worklist.Categorize(records, now)

	assert.Equal(t, "2026-05-11", d.Today)
	assert.Equal(t, []uuid.UUID{overdue.ID, todayHigh.ID, todayLow.ID}, projectIDs(d.DueToday))
	assert.Equal(t, []uuid.UUID{tomorrow.ID}, projectIDs(d.DueTomorrow))
	assert.Equal(t, []uuid.UUID{weekEarly.ID, weekHigh.ID, weekLow.ID}, projectIDs(d.DueThisWeek))
	assert.Equal(t, []uuid.UUID{laterHigh.ID, laterLow.ID}, projectIDs(d.DueLater))
	assert.Equal(t, []uuid.UUID{idleOld.ID, idleNew.ID}, projectIDs(d.NoTasks))
	assert.Equal(t, worklist.LevelCritical, d.NoTasks[0].Staleness)

	empty := worklist.Categorize(nil, now)
	assert.NotNil(t, empty.DueThisWeek)
	assert.Empty(t, empty.DueLater)
}

func TestFilterAndSort_Filters(t *testing.T) {
	a := newProject("Acme", "Lease")
	a.Priority = models.PriorityHigh
	a.AssignedAttorneys = "Smith, Jones"
	a.Assigner = "Partner Lee"

	b := newProject("Beta", "Merger")
	b.Priority = models.PriorityHigh
	b.AssignedAttorneys = "Jones"

	c := newProject("Gamma", "Appeal")
	c.Priority = models.PriorityLow
	c.AssignedAttorneys = "Smith"
	c.Assigner = "Partner Lee"

	records := worklist.Assemble([]*models.Project{a, b, c}, nil, nil, nil)

	got := worklist.FilterAndSort(records, worklist.ListQuery{Priority: "high", Attorney: "Smith", SortBy: worklist.SortClientName}, now)
	assert.Equal(t, []uuid.UUID{a.ID}, projectIDs(got))

	got = worklist.FilterAndSort(records, worklist.ListQuery{Assigner: "Partner Lee", SortBy: worklist.SortClientName}, now)
	assert.Equal(t, []uuid.UUID{a.ID, c.ID}, projectIDs(got))

	got = worklist.FilterAndSort(records, worklist.ListQuery{Attorney: "Nobody"}, now)
	assert.Empty(t, got)

	choices := worklist.FilterChoices(records)
	assert.Equal(t, []string{"Jones", "Smith"}, choices.Attorneys)
	assert.Equal(t, []string{"Partner Lee", "Self"}, choices.Assigners)
}

func TestFilterAndSort_Sorting(t *testing.T) {
	fresh := newProject("beta", "Fresh")
	fresh.Priority = models.PriorityLow
	stale := newProject("Alpha", "Stale")
	stale.CreatedAt = now.Add(-10 * 24 * time.Hour)
	stale.Priority = models.PriorityHigh
	noTask := newProject("Gamma", "No task")

	tasks := []*models.Task{
		taskDueIn(fresh, 1, models.PriorityMedium),
		taskDueIn(stale, 3, models.PriorityMedium),
	}
	records := worklist.Assemble([]*models.Project{noTask, stale, fresh}, tasks, nil, nil)

	tests := []struct {
		name     string
		query    worklist.ListQuery
		expected []uuid.UUID
	}{
		{"default next task", worklist.ListQuery{}, []uuid.UUID{fresh.ID, stale.ID, noTask.ID}},
		{"unknown key falls back", worklist.ListQuery{SortBy: "bogus", SortOrder: "sideways"}, []uuid.UUID{fresh.ID, stale.ID, noTask.ID}},
		{"next task desc", worklist.ListQuery{SortBy: worklist.SortNextTask, SortOrder: worklist.OrderDesc}, []uuid.UUID{noTask.ID, stale.ID, fresh.ID}},
		{"client name is case-insensitive", worklist.ListQuery{SortBy: worklist.SortClientName}, []uuid.UUID{stale.ID, fresh.ID, noTask.ID}},
		{"priority", worklist.ListQuery{SortBy: worklist.SortPriority}, []uuid.UUID{stale.ID, noTask.ID, fresh.ID}},
		{"staleness desc", worklist.ListQuery{SortBy: worklist.SortStaleness, SortOrder: worklist.OrderDesc}, []uuid.UUID{stale.ID, noTask.ID, fresh.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, projectIDs(worklist.FilterAndSort(records, tt.query, now)))
		})
	}
}

func TestStatusPreview(t *testing.T) {
	assert.Nil(t, worklist.StatusPreview(nil, worklist.PreviewLines))
	assert.Nil(t, worklist.StatusPreview(&models.StatusUpdate{Notes: "  \n "}, worklist.PreviewLines))

	short := worklist.StatusPreview(&models.StatusUpdate{Notes: "one\ntwo"}, worklist.PreviewLines)
	require.NotNil(t, short)
	assert.Equal(t, "one\ntwo", short.Text)
	assert.False(t, short.HasMore)

	long := worklist.StatusPreview(&models.StatusUpdate{Notes: "1\n2\n3\n4"}, worklist.PreviewLines)
	require.NotNil(t, long)
	assert.Equal(t, "1\n2\n3", long.Text)
	assert.True(t, long.HasMore)
	assert.Equal(t, "1\n2\n3\n4", long.FullText)
}

func TestWriteCSV(t *testing.T) {
	p := newProject("Acme, Inc.", `The "Big" Lease`)
	p.MatterNumber = "M-1"
	p.AssignedAttorneys = "Smith, Jones"
	task := taskDueIn(p, 2, models.PriorityHigh)
	task.Description = "review"
	m := &models.Milestone{ID: uuid.New(), ProjectID: p.ID, Name: "Closing", Date: models.AddDays(today(), 9)}
	update := &models.StatusUpdate{ID: uuid.New(), ProjectID: p.ID, Notes: "line one\nline two", CreatedAt: now.Add(-3 * 24 * time.Hour)}

	archived := newProject("Old", "Done")
	archived.Status = models.StatusArchived

	records := worklist.Assemble(
		[]*models.Project{p, archived},
		[]*models.Task{task},
		[]*models.Milestone{m},
		map[uuid.UUID]*models.StatusUpdate{p.ID: update},
	)

	var buf bytes.Buffer
	require.NoError(t, worklist.WriteCSV(&buf, records, now))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, worklist.ExportHeader, rows[0])
	assert.Equal(t, []string{
		"Acme, Inc.", `The "Big" Lease`, "M-1", "",
		"Draft: review", "2026-05-13", "high",
		"Closing", "2026-05-20",
		"Smith, Jones", "medium", "line one\nline two", "3",
	}, rows[1])

	assert.Equal(t, "worklist_2026-05-11.csv", worklist.ExportFilename(now))
}
