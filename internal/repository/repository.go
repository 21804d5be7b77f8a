// Package repository holds what the storage implementations share.
package repository

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// TaskFilter narrows ListTasks. Nil fields match everything.
type TaskFilter struct {
	ProjectID *uuid.UUID
	Completed *bool
}

// MilestoneFilter narrows ListMilestones. Nil fields match everything.
type MilestoneFilter struct {
	ProjectID *uuid.UUID
	Completed *bool
}

func Bool(v bool) *bool { return &v }

func ID(id uuid.UUID) *uuid.UUID { return &id }
