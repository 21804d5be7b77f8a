package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is an actionable item on a project, owed to or by a target person.
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ProjectID   uuid.UUID  `json:"project_id" db:"project_id"`
	TargetType  TargetType `json:"target_type" db:"target_type"`
	TargetName  string     `json:"target_name" db:"target_name"`
	DueDate     time.Time  `json:"due_date" db:"due_date"`
	Description string     `json:"description,omitempty" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type TargetType string

const TargetSelf TargetType = "self"
const TargetAssociate TargetType = "associate"
const TargetClient TargetType = "client"
const TargetOpposingCounsel TargetType = "opposing_counsel"
const TargetAssigningAttorney TargetType = "assigning_attorney"

var TargetTypes = []TargetType{
	TargetSelf,
	TargetAssociate,
	TargetClient,
	TargetOpposingCounsel,
	TargetAssigningAttorney,
}

func (t TargetType) Valid() bool {
	for _, known := range TargetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Complete marks the task done. Calling it again moves CompletedAt forward.
func (t *Task) Complete(now time.Time) {
	t.Completed = true
	t.CompletedAt = &now
}

// Snooze pushes the due date forward without touching completion state.
func (t *Task) Snooze(days int) {
	t.DueDate = AddDays(t.DueDate, days)
}
