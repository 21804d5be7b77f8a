package worklist

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/models"
)

var ExportHeader = []string{
	"Client",
	"Project",
	"Matter #",
	"Client #",
	"Next Task",
	"Next Task Due",
	"Next Task Priority",
	"Next Milestone",
	"Next Milestone Date",
	"Attorneys",
	"Priority",
	"Current Status",
	"Days Since Update",
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("worklist_%s.csv", models.FormatDate(now))
}

func ExportRow(r Record, now time.Time) []string {
	var nextTask, nextTaskDue, nextTaskPriority string
	if t := r.NextTask(); t != nil {
		nextTask = t.TargetName
		if t.Description != "" {
			nextTask = t.TargetName + ": " + t.Description
		}
		nextTaskDue = models.FormatDate(t.DueDate)
		nextTaskPriority = string(t.Priority)
	}

	var milestone, milestoneDate string
	if m := r.NextMilestone; m != nil {
		milestone = m.Name
		milestoneDate = models.FormatDate(m.Date)
	}

	var status string
	if r.LatestUpdate != nil {
		status = r.LatestUpdate.Notes
	}

	return []string{
		r.Project.ClientName,
		r.Project.ProjectName,
		r.Project.MatterNumber,
		r.Project.ClientNumber,
		nextTask,
		nextTaskDue,
		nextTaskPriority,
		milestone,
		milestoneDate,
		r.Project.AssignedAttorneys,
		string(r.Project.Priority),
		status,
		strconv.Itoa(r.DaysSinceUpdate(now)),
	}
}

// WriteCSV writes the header and one row per active record.
func WriteCSV(w io.Writer, records []Record, now time.Time) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		if !r.Project.IsActive() {
			continue
		}
		if err := writer.Write(ExportRow(r, now)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
