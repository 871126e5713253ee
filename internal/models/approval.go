package models

import "time"

// RecordKind distinguishes the two record kinds that share the approval
// lifecycle.
type RecordKind string

const (
	KindMinutes RecordKind = "minutes"
	KindTasks   RecordKind = "tasks"
)

// Approval statuses. Minutes expire while task batches cancel; the two kinds
// use distinct terminal vocabularies over an identical transition shape.
const (
	StatusPending           = "pending"
	StatusApproved          = "approved"
	StatusRevisionRequested = "revision_requested"
	StatusCancelled         = "cancelled"
	StatusExpired           = "expired"
)

// ApprovalTTL is the fixed horizon after which a pending record expires.
const ApprovalTTL = 24 * time.Hour

// ApprovalRecord is the lifecycle metadata paired with one record body under
// the same session key. The pairing is never split across two identifiers.
type ApprovalRecord struct {
	SessionID     string
	Kind          RecordKind
	Status        string
	RevisionCount int
	ActorID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ExpiresAt     time.Time
}

// Terminal reports whether the status has no legal outgoing transition.
func Terminal(status string) bool {
	switch status {
	case StatusApproved, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}
