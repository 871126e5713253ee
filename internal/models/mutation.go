package models

import "time"

// Mutation types recorded when a reviewer edits a pending task.
type MutationType string

const (
	MutationTitleChange       MutationType = "title_change"
	MutationDescriptionChange MutationType = "description_change"
	MutationAssigneeChange    MutationType = "assignee_change"
	MutationDueDateChange     MutationType = "due_date_change"
	MutationPriorityChange    MutationType = "priority_change"
)

// MutationRecord is one accepted edit, appended to the mutation log.
// The log is append-only and keyed by session; recurring correction
// patterns are later aggregated per actor to steer generation.
type MutationRecord struct {
	ID        string
	SessionID string
	TaskID    string
	ActorID   string
	Type      MutationType
	Original  string
	Modified  string
	CreatedAt time.Time
}
