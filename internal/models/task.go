package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority of an extracted task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for display and merging: high > medium > low.
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task is a single actionable item extracted from meeting minutes.
//
// Assignee is empty when unassigned and DueDate is the zero time when no
// deadline was mentioned; neither is ever an empty-string placeholder.
type Task struct {
	ID          string
	Title       string
	Description string
	Assignee    string
	DueDate     time.Time
	Priority    Priority
	SourceQuote string
	CreatedAt   time.Time
}

// NewTask assigns a fresh ID and creation timestamp.
func NewTask(title, description string, priority Priority) Task {
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now(),
	}
}

// HasDueDate reports whether a deadline was set.
func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// TaskBatch is an ordered collection of tasks sharing one approval lifecycle.
// Status uses the approval status vocabulary (pending, approved,
// revision_requested, cancelled).
// Task order is not semantically meaningful; display order is priority-derived.
type TaskBatch struct {
	SessionID      string
	SourceRecordID string
	Tasks          []Task
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a deep copy so callers can hand out batches without
// sharing the task slice.
func (b TaskBatch) Clone() TaskBatch {
	out := b
	out.Tasks = make([]Task, len(b.Tasks))
	copy(out.Tasks, b.Tasks)
	return out
}
