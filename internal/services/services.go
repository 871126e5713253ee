package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyActive = errors.New("session already has an active record")
	ErrNoApprovedMinutes    = errors.New("session has no approved minutes")
	ErrEmptyMinutes         = errors.New("generated minutes are empty")
)

// MinutesService drives the meeting-record half of the lifecycle.
type MinutesService interface {
	// Generate invokes the generation boundary on a raw transcript and
	// persists the result as a pending record with a 24-hour expiry.
	//
	// It returns ErrSessionAlreadyActive if the session already has a
	// minutes record.
	Generate(ctx context.Context, sessionID, transcript string) (*MinutesReview, error)

	// Get renders the current record for review. A pending record read
	// after its expiry horizon reports expired, never stale pending data.
	//
	// It returns ErrSessionNotFound if no record exists.
	Get(ctx context.Context, sessionID string) (*MinutesReview, error)

	// HandleAction runs one lifecycle action. Unknown actions fail with
	// *approval.UnknownActionError and illegal transitions with
	// *approval.LifecycleError; neither changes state. An accepted
	// approval hands the record to the materializer.
	HandleAction(ctx context.Context, params ActionParams) (*ActionResult, error)

	// SubmitRevision parses the reviewer's edited Markdown, replaces the
	// record body, bumps the revision count and returns the record to
	// pending. A *codec.FormatError is surfaced untouched.
	SubmitRevision(ctx context.Context, params RevisionParams) (*MinutesReview, error)
}

// TaskService drives the task-batch half of the lifecycle.
type TaskService interface {
	// Extract runs the extraction boundary on the session's approved
	// minutes, merges duplicates, filters invalid tasks and persists the
	// surviving batch as pending. A failed extraction degrades to an
	// empty, valid batch rather than an error.
	//
	// It returns ErrNoApprovedMinutes if the minutes are not approved yet
	// and ErrSessionAlreadyActive if a batch already exists.
	Extract(ctx context.Context, sessionID string) (*BatchReview, error)

	// Get renders the current batch for review.
	Get(ctx context.Context, sessionID string) (*BatchReview, error)

	// HandleAction runs one lifecycle action on the batch. An accepted
	// approval hands the batch to the materializer.
	HandleAction(ctx context.Context, params ActionParams) (*ActionResult, error)

	// AddTask appends a reviewer-authored task to the pending batch.
	AddTask(ctx context.Context, params AddTaskParams) (*BatchReview, error)

	// DeleteTask removes one task from the pending batch. It returns
	// approval.ErrTaskNotFound if the ID is unknown.
	DeleteTask(ctx context.Context, params DeleteTaskParams) (*BatchReview, error)

	// UpdateTask applies a reviewer edit to one task, appending the
	// resulting field mutations to the mutation log.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*BatchReview, error)
}

// MutationService is the append-only log of accepted edits.
type MutationService interface {
	Append(ctx context.Context, records []models.MutationRecord) error
	ListBySession(ctx context.Context, sessionID string) ([]models.MutationRecord, error)

	// CountByType aggregates an actor's accepted edits per mutation type,
	// the signal used to learn recurring correction patterns.
	CountByType(ctx context.Context, actorID string) (map[models.MutationType]int, error)
}

// MinutesReview is what the review surface renders for a meeting record.
type MinutesReview struct {
	SessionID     string
	RecordID      string
	Status        string
	RevisionCount int
	ExpiresAt     time.Time
	Markdown      string
}

// BatchReview is what the review surface renders for a task batch.
type BatchReview struct {
	SessionID      string
	SourceRecordID string
	Status         string
	RevisionCount  int
	TaskCount      int
	Markdown       string
}

type ActionParams struct {
	SessionID string
	ActionID  string
	ActorID   string
}

type ActionResult struct {
	SessionID string
	Status    string
	Message   string
	Timestamp time.Time
}

type RevisionParams struct {
	SessionID string
	Markdown  string
	ActorID   string
}

type AddTaskParams struct {
	SessionID string
	Task      models.Task
	ActorID   string
}

type DeleteTaskParams struct {
	SessionID string
	TaskID    string
	ActorID   string
}

// UpdateTaskParams carries a partial edit: nil fields keep their current
// value. Clearing the assignee or due date is expressed with a pointer to
// the zero value.
type UpdateTaskParams struct {
	SessionID   string
	TaskID      string
	ActorID     string
	Title       *string
	Description *string
	Assignee    *string
	DueDate     *time.Time
	Priority    *models.Priority
}
