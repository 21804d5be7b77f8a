// Package dto holds the JSON request bodies of the HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nomindnick/worktracker-v1/internal/service"
)

// Number is a numeric form field that may arrive as a JSON number, a string
// or null. The raw text is kept so that bad input is reported by validation.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", b)
	}
	*n = Number(num.String())
	return nil
}

func (n Number) String() string {
	return string(n)
}

// Int parses the value as a whole number. Values out of range saturate at
// the int bounds; anything else yields zero.
func (n Number) Int() int {
	v, err := strconv.Atoi(strings.TrimSpace(string(n)))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return 0
	}
	return v
}

type ProjectRequest struct {
	ClientName        string `json:"client_name"`
	ProjectName       string `json:"project_name"`
	MatterNumber      string `json:"matter_number"`
	ClientNumber      string `json:"client_number"`
	Assigner          string `json:"assigner"`
	AssignedAttorneys string `json:"assigned_attorneys"`
	Priority          string `json:"priority"`
	EstimatedHours    Number `json:"estimated_hours"`
	ActualHours       Number `json:"actual_hours"`
	InitialStatus     string `json:"initial_status"`
}

func (r ProjectRequest) Input() service.ProjectInput {
	return service.ProjectInput{
		ClientName:        r.ClientName,
		ProjectName:       r.ProjectName,
		MatterNumber:      r.MatterNumber,
		ClientNumber:      r.ClientNumber,
		Assigner:          r.Assigner,
		AssignedAttorneys: r.AssignedAttorneys,
		Priority:          r.Priority,
		EstimatedHours:    r.EstimatedHours.String(),
		ActualHours:       r.ActualHours.String(),
		InitialStatus:     r.InitialStatus,
	}
}

type ArchiveRequest struct {
	ActualHours Number `json:"actual_hours"`
}

type TaskRequest struct {
	ProjectID   string `json:"project_id"`
	TargetType  string `json:"target_type"`
	TargetName  string `json:"target_name"`
	DueDate     string `json:"due_date"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (r TaskRequest) Input() service.TaskInput {
	return service.TaskInput{
		ProjectID:   r.ProjectID,
		TargetType:  r.TargetType,
		TargetName:  r.TargetName,
		DueDate:     r.DueDate,
		Description: r.Description,
		Priority:    r.Priority,
	}
}

type SnoozeRequest struct {
	Days Number `json:"days"`
}

type MilestoneRequest struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (r MilestoneRequest) Input() service.MilestoneInput {
	return service.MilestoneInput{
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
	}
}

type StatusUpdateRequest struct {
	ProjectID string `json:"project_id"`
	Notes     string `json:"notes"`
}

func (r StatusUpdateRequest) Input() service.StatusUpdateInput {
	return service.StatusUpdateInput{ProjectID: r.ProjectID, Notes: r.Notes}
}
