// Package mutation derives typed mutation records from reviewer edits.
// Every accepted edit is appended to the mutation log so that recurring
// correction patterns (a reviewer who always reassigns a certain task, or
// always bumps a priority) can be aggregated and fed back to generation.
package mutation

import (
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// Diff compares an original task against its edited form and returns one
// mutation record per changed field, in a fixed field order. Identical
// tasks yield no records.
func Diff(sessionID, actorID string, original, modified models.Task, now time.Time) []models.MutationRecord {
	record := func(typ models.MutationType, before, after string) models.MutationRecord {
		return models.MutationRecord{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			TaskID:    original.ID,
			ActorID:   actorID,
			Type:      typ,
			Original:  before,
			Modified:  after,
			CreatedAt: now,
		}
	}

	var out []models.MutationRecord

	if original.Title != modified.Title {
		out = append(out, record(models.MutationTitleChange, original.Title, modified.Title))
	}
	if original.Description != modified.Description {
		out = append(out, record(models.MutationDescriptionChange, original.Description, modified.Description))
	}
	if original.Assignee != modified.Assignee {
		out = append(out, record(models.MutationAssigneeChange, original.Assignee, modified.Assignee))
	}
	if !original.DueDate.Equal(modified.DueDate) {
		out = append(out, record(models.MutationDueDateChange, formatDue(original.DueDate), formatDue(modified.DueDate)))
	}
	if original.Priority != modified.Priority {
		out = append(out, record(models.MutationPriorityChange, string(original.Priority), string(modified.Priority)))
	}

	return out
}

func formatDue(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}
