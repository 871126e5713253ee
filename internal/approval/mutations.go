package approval

import (
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// mutable reports whether item-level edits are legal for the status.
// Once a batch reaches a terminal status it is immutable.
func mutable(status string) bool {
	return status == models.StatusPending || status == models.StatusRevisionRequested
}

// DeleteItem removes the task with the given ID from the batch. The caller's
// batch is untouched; a fresh value with a refreshed UpdatedAt is returned.
// Deleting from a terminal batch fails with *LifecycleError and deleting an
// unknown ID fails with ErrTaskNotFound.
func DeleteItem(batch models.TaskBatch, taskID string, now time.Time) (models.TaskBatch, error) {
	if !mutable(batch.Status) {
		return models.TaskBatch{}, &LifecycleError{
			Kind:     models.KindTasks,
			ActionID: "delete_item",
			Status:   batch.Status,
		}
	}

	found := false
	out := batch
	out.Tasks = make([]models.Task, 0, len(batch.Tasks))
	for _, task := range batch.Tasks {
		if task.ID == taskID {
			found = true
			continue
		}
		out.Tasks = append(out.Tasks, task)
	}
	if !found {
		return models.TaskBatch{}, ErrTaskNotFound
	}

	out.UpdatedAt = now
	return out, nil
}

// AddItem appends a task to the batch, returning a fresh value with a
// refreshed UpdatedAt. Adding to a terminal batch fails with *LifecycleError.
func AddItem(batch models.TaskBatch, task models.Task, now time.Time) (models.TaskBatch, error) {
	if !mutable(batch.Status) {
		return models.TaskBatch{}, &LifecycleError{
			Kind:     models.KindTasks,
			ActionID: "add_item",
			Status:   batch.Status,
		}
	}

	out := batch.Clone()
	out.Tasks = append(out.Tasks, task)
	out.UpdatedAt = now
	return out, nil
}

// ReplaceItem swaps the task with the matching ID for the edited one,
// returning a fresh batch value. It backs the reviewer's inline edits.
func ReplaceItem(batch models.TaskBatch, task models.Task, now time.Time) (models.TaskBatch, error) {
	if !mutable(batch.Status) {
		return models.TaskBatch{}, &LifecycleError{
			Kind:     models.KindTasks,
			ActionID: "replace_item",
			Status:   batch.Status,
		}
	}

	out := batch.Clone()
	for i := range out.Tasks {
		if out.Tasks[i].ID == task.ID {
			out.Tasks[i] = task
			out.UpdatedAt = now
			return out, nil
		}
	}
	return models.TaskBatch{}, ErrTaskNotFound
}
