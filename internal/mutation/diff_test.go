package mutation

import (
	"testing"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

func TestDiffNoChanges(t *testing.T) {
	task := models.Task{ID: "t1", Title: "same", Description: "d", Priority: models.PriorityLow}
	if got := Diff("s1", "u1", task, task, time.Now()); len(got) != 0 {
		t.Errorf("Diff of identical tasks = %v, want none", got)
	}
}

func TestDiffEveryField(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	original := models.Task{
		ID:          "t1",
		Title:       "old title",
		Description: "old description",
		Assignee:    "Alice",
		Priority:    models.PriorityLow,
	}
	modified := original
	modified.Title = "new title"
	modified.Description = "new description"
	modified.Assignee = "Bob"
	modified.DueDate = time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	modified.Priority = models.PriorityHigh

	records := Diff("s1", "u1", original, modified, now)
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d: %v", len(records), records)
	}

	wantTypes := []models.MutationType{
		models.MutationTitleChange,
		models.MutationDescriptionChange,
		models.MutationAssigneeChange,
		models.MutationDueDateChange,
		models.MutationPriorityChange,
	}
	for i, rec := range records {
		if rec.Type != wantTypes[i] {
			t.Errorf("record %d type = %q, want %q", i, rec.Type, wantTypes[i])
		}
		if rec.SessionID != "s1" || rec.TaskID != "t1" || rec.ActorID != "u1" {
			t.Errorf("record %d keys = %+v", i, rec)
		}
		if !rec.CreatedAt.Equal(now) {
			t.Errorf("record %d created_at = %v, want %v", i, rec.CreatedAt, now)
		}
		if rec.ID == "" {
			t.Errorf("record %d has no id", i)
		}
	}

	due := records[3]
	if due.Original != "" || due.Modified != "2025-09-15" {
		t.Errorf("due date snapshots = %q -> %q", due.Original, due.Modified)
	}
}

func TestDiffSingleFieldSnapshot(t *testing.T) {
	original := models.Task{ID: "t1", Title: "x", Priority: models.PriorityMedium}
	modified := original
	modified.Priority = models.PriorityHigh

	records := Diff("s1", "", original, modified, time.Now())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Original != "medium" || records[0].Modified != "high" {
		t.Errorf("snapshots = %q -> %q", records[0].Original, records[0].Modified)
	}
}
