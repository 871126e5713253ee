package approval

import (
	"errors"
	"fmt"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// ErrTaskNotFound is returned by DeleteItem when no task carries the
// requested ID.
var ErrTaskNotFound = errors.New("task not found in batch")

// UnknownActionError is returned when an action ID is not in the transition
// table for the record kind. No state change occurs.
type UnknownActionError struct {
	Kind     models.RecordKind
	ActionID string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q for %s records", e.ActionID, e.Kind)
}

// LifecycleError is returned when a known action is attempted from a state
// it cannot legally leave, including every terminal state. No state change
// occurs.
type LifecycleError struct {
	Kind     models.RecordKind
	ActionID string
	Status   string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("action %q is not legal for a %s record in status %q", e.ActionID, e.Kind, e.Status)
}
