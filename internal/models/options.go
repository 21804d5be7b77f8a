package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectOption changes one group of project fields.
type ProjectOption func(*Project)

// TaskOption changes one group of task fields.
type TaskOption func(*Task)

func (p *Project) Apply(options ...ProjectOption) {
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
}

func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}

func WithNames(clientName, projectName string) ProjectOption {
	return func(p *Project) {
		p.ClientName = clientName
		p.ProjectName = projectName
	}
}

// WithNumbers sets matter/client numbers; empty strings clear them.
func WithNumbers(matterNumber, clientNumber string) ProjectOption {
	return func(p *Project) {
		p.MatterNumber = matterNumber
		p.ClientNumber = clientNumber
	}
}

func WithAssignment(assigner, attorneys string) ProjectOption {
	return func(p *Project) {
		p.Assigner = assigner
		p.AssignedAttorneys = attorneys
	}
}

func WithProjectPriority(priority Priority) ProjectOption {
	return func(p *Project) {
		p.Priority = priority
	}
}

func WithEstimatedHours(hours *float64) ProjectOption {
	return func(p *Project) {
		p.EstimatedHours = hours
	}
}

func WithActualHours(hours *float64) ProjectOption {
	return func(p *Project) {
		p.ActualHours = hours
	}
}

func WithProject(projectID uuid.UUID) TaskOption {
	return func(t *Task) {
		t.ProjectID = projectID
	}
}

func WithTarget(targetType TargetType, targetName string) TaskOption {
	return func(t *Task) {
		t.TargetType = targetType
		t.TargetName = targetName
	}
}

func WithDueDate(dueDate time.Time) TaskOption {
	return func(t *Task) {
		t.DueDate = DateOf(dueDate)
	}
}

func WithDescription(description string) TaskOption {
	return func(t *Task) {
		t.Description = description
	}
}

func WithTaskPriority(priority Priority) TaskOption {
	return func(t *Task) {
		t.Priority = priority
	}
}
