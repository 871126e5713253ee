// Package materialize hands approved records to the downstream system that
// turns them into durable artifacts (issue tracker tickets, archived
// documents). The core invokes it after approval and does not track the
// side effect's success.
package materialize

import (
	"context"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// Materializer receives the final, approved record.
type Materializer interface {
	MaterializeMinutes(ctx context.Context, sessionID string, rec models.MeetingRecord) error
	MaterializeTasks(ctx context.Context, batch models.TaskBatch) error
}
