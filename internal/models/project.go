package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is a client matter.
type Project struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ClientName        string    `json:"client_name" db:"client_name"`
	ProjectName       string    `json:"project_name" db:"project_name"`
	MatterNumber      string    `json:"matter_number,omitempty" db:"matter_number"`
	ClientNumber      string    `json:"client_number,omitempty" db:"client_number"`
	Assigner          string    `json:"assigner" db:"assigner"`
	AssignedAttorneys string    `json:"assigned_attorneys" db:"assigned_attorneys"`
	Priority          Priority  `json:"priority" db:"priority"`
	Status            Status    `json:"status" db:"status"`
	EstimatedHours    *float64  `json:"estimated_hours,omitempty" db:"estimated_hours"`
	ActualHours       *float64  `json:"actual_hours,omitempty" db:"actual_hours"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type Priority string
type Status string

const PriorityHigh Priority = "high"
const PriorityMedium Priority = "medium"
const PriorityLow Priority = "low"

const StatusActive Status = "active"
const StatusArchived Status = "archived"

// DefaultAssigner is used when a project is created without an assigner.
const DefaultAssigner = "Self"

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities high=0, medium=1, low=2. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusArchived
}

func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

// Attorneys splits the comma-joined attorneys field into trimmed names.
func (p *Project) Attorneys() []string {
	parts := strings.Split(p.AssignedAttorneys, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
