package services

import (
	"strings"
	"testing"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

func TestReviewStatusFollowsApprovalRecord(t *testing.T) {
	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	// The stored body still says pending; the approval record has since
	// moved on. The rendered review must follow the record.
	batch := models.TaskBatch{
		SessionID:      "s1",
		SourceRecordID: "r1",
		Status:         models.StatusPending,
		CreatedAt:      created,
		UpdatedAt:      created,
		Tasks: []models.Task{
			{ID: "t1", Title: "Ship API", Description: "d", Priority: models.PriorityHigh, SourceQuote: "q"},
		},
	}
	rec := models.ApprovalRecord{
		SessionID:     "s1",
		Kind:          models.KindTasks,
		Status:        models.StatusApproved,
		RevisionCount: 2,
	}

	s := &taskServiceImpl{}
	review := s.review(batch, rec)

	if review.Status != models.StatusApproved {
		t.Errorf("status = %q, want %q", review.Status, models.StatusApproved)
	}
	if review.RevisionCount != 2 {
		t.Errorf("revision count = %d, want 2", review.RevisionCount)
	}
	if !strings.Contains(review.Markdown, "**Status**: "+models.StatusApproved) {
		t.Errorf("rendered markdown keeps a stale status line:\n%s", review.Markdown)
	}
	if strings.Contains(review.Markdown, "**Status**: "+models.StatusPending) {
		t.Errorf("rendered markdown shows the stored pending status:\n%s", review.Markdown)
	}
}
