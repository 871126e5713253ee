// Package generation names the contracts of the external model boundary.
// The core never retries or inspects model failures: a failed extraction
// degrades to an empty, still-valid batch at the call site.
package generation

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// ErrEmptyTranscript is returned before the boundary is ever invoked.
var ErrEmptyTranscript = errors.New("transcript is empty")

// MinutesGenerator turns a raw transcript into a candidate meeting record.
type MinutesGenerator interface {
	Generate(ctx context.Context, transcript string) (models.MeetingRecord, error)
}

// TaskExtractor turns rendered minutes text into candidate tasks.
type TaskExtractor interface {
	Extract(ctx context.Context, minutesText string) ([]models.Task, error)
}
