// Package validate holds the structural checks applied to extracted tasks
// right before a batch becomes visible to an approver. It is the last gate
// before human review: invalid tasks are dropped silently, never repaired.
package validate

import (
	"fmt"
	"strings"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// MaxTitleLength is the longest title an approver is shown.
const MaxTitleLength = 100

// Error reports which structural rule a task failed.
type Error struct {
	TaskID string
	Rule   string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("task %s failed %s: %s", e.TaskID, e.Rule, e.Detail)
}

// Check validates a single task against the structural rules. It returns nil
// for a valid task or an *Error naming the first failed rule.
func Check(task models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return &Error{
			TaskID: task.ID,
			Rule:   "title_non_blank",
			Detail: "title is empty after trimming",
		}
	}

	if len([]rune(task.Title)) > MaxTitleLength {
		return &Error{
			TaskID: task.ID,
			Rule:   "title_length",
			Detail: fmt.Sprintf("title is %d characters, limit is %d", len([]rune(task.Title)), MaxTitleLength),
		}
	}

	if !task.Priority.Valid() {
		return &Error{
			TaskID: task.ID,
			Rule:   "priority",
			Detail: fmt.Sprintf("unknown priority %q", task.Priority),
		}
	}

	// Due dates are carried as time.Time, so a present date is structurally
	// valid by construction; string placeholders are rejected at the codec
	// and generation boundaries before a task reaches this gate.
	return nil
}

// Filter returns a copy of the batch containing only tasks that pass Check,
// preserving original relative order. Dropped tasks are logged by the caller,
// not retried.
func Filter(batch models.TaskBatch) models.TaskBatch {
	out := batch
	out.Tasks = make([]models.Task, 0, len(batch.Tasks))
	for _, task := range batch.Tasks {
		if Check(task) == nil {
			out.Tasks = append(out.Tasks, task)
		}
	}
	return out
}
