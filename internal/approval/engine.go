// Package approval is the lifecycle controller shared by meeting records
// and task batches. Transitions are a fixed, exhaustively enumerable table;
// each accepted action is a pure function of (current status, action).
// Expiry is evaluated lazily on read, never by a background timer.
package approval

import (
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// Action IDs accepted from the review surface.
const (
	ActionApproveMinutes      = "approve_minutes"
	ActionRequestRevision     = "request_revision"
	ActionSubmitRevision      = "submit_revision"
	ActionApproveTasks        = "approve_tasks"
	ActionRequestTaskRevision = "request_task_revision"
	ActionSubmitTaskRevision  = "submit_task_revision"
	ActionCancelTasks         = "cancel_tasks"
)

// Result of an accepted transition.
type Result struct {
	Status    string
	Message   string
	Timestamp time.Time
}

type transition struct {
	from    string
	to      string
	message string
}

// transitions is the whole lifecycle. Meeting records expire instead of
// cancelling; task batches cancel instead of expiring. Both kinds share the
// pending -> approved and pending -> revision_requested -> pending shape.
var transitions = map[models.RecordKind]map[string]transition{
	models.KindMinutes: {
		ActionApproveMinutes: {
			from:    models.StatusPending,
			to:      models.StatusApproved,
			message: "Minutes approved. Saving the final record.",
		},
		ActionRequestRevision: {
			from:    models.StatusPending,
			to:      models.StatusRevisionRequested,
			message: "Revision requested. Please submit the corrected minutes.",
		},
		ActionSubmitRevision: {
			from:    models.StatusRevisionRequested,
			to:      models.StatusPending,
			message: "Revision applied. Minutes are awaiting approval again.",
		},
	},
	models.KindTasks: {
		ActionApproveTasks: {
			from:    models.StatusPending,
			to:      models.StatusApproved,
			message: "Task list approved. Preparing downstream issue creation.",
		},
		ActionRequestTaskRevision: {
			from:    models.StatusPending,
			to:      models.StatusRevisionRequested,
			message: "Revision requested. Please submit the corrected task list.",
		},
		ActionSubmitTaskRevision: {
			from:    models.StatusRevisionRequested,
			to:      models.StatusPending,
			message: "Revision applied. Task list is awaiting approval again.",
		},
		ActionCancelTasks: {
			from:    models.StatusPending,
			to:      models.StatusCancelled,
			message: "Task list cancelled.",
		},
	},
}

// Engine validates lifecycle actions against the transition table. It holds
// no state of its own; construct one per call site as needed.
type Engine struct{}

func NewEngine() Engine {
	return Engine{}
}

// HandleAction resolves an action against the current status. Unknown action
// IDs fail with *UnknownActionError and illegal transitions (including any
// action from a terminal state) fail with *LifecycleError; in both cases the
// caller's status is untouched.
func (Engine) HandleAction(kind models.RecordKind, actionID, status string, now time.Time) (Result, error) {
	kindTable, ok := transitions[kind]
	if !ok {
		return Result{}, &UnknownActionError{Kind: kind, ActionID: actionID}
	}
	tr, ok := kindTable[actionID]
	if !ok {
		return Result{}, &UnknownActionError{Kind: kind, ActionID: actionID}
	}
	if status != tr.from {
		return Result{}, &LifecycleError{Kind: kind, ActionID: actionID, Status: status}
	}
	return Result{
		Status:    tr.to,
		Message:   tr.message,
		Timestamp: now,
	}, nil
}

// StatusAt reports the record's effective status at the given instant.
// A pending meeting record past its expiry horizon reads as expired even
// though no action ever ran; task batches do not expire.
func (Engine) StatusAt(rec models.ApprovalRecord, now time.Time) string {
	if rec.Kind == models.KindMinutes &&
		rec.Status == models.StatusPending &&
		now.After(rec.ExpiresAt) {
		return models.StatusExpired
	}
	return rec.Status
}

// Actions lists the action IDs a record kind accepts, for surfaces that
// render buttons.
func (Engine) Actions(kind models.RecordKind) []string {
	switch kind {
	case models.KindMinutes:
		return []string{ActionApproveMinutes, ActionRequestRevision, ActionSubmitRevision}
	case models.KindTasks:
		return []string{ActionApproveTasks, ActionRequestTaskRevision, ActionSubmitTaskRevision, ActionCancelTasks}
	default:
		return nil
	}
}
