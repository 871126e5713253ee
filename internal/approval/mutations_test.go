package approval

import (
	"errors"
	"testing"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

func pendingBatch() models.TaskBatch {
	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	return models.TaskBatch{
		SessionID:      "s1",
		SourceRecordID: "r1",
		Status:         models.StatusPending,
		CreatedAt:      created,
		UpdatedAt:      created,
		Tasks: []models.Task{
			{ID: "t1", Title: "first", Description: "d", Priority: models.PriorityHigh, SourceQuote: "q"},
			{ID: "t2", Title: "second", Description: "d", Priority: models.PriorityLow, SourceQuote: "q"},
		},
	}
}

func TestDeleteItem(t *testing.T) {
	batch := pendingBatch()
	later := batch.UpdatedAt.Add(time.Hour)

	out, err := DeleteItem(batch, "t1", later)
	if err != nil {
		t.Fatalf("DeleteItem() error: %v", err)
	}
	if len(out.Tasks) != 1 || out.Tasks[0].ID != "t2" {
		t.Errorf("tasks = %v, want only t2", out.Tasks)
	}
	if !out.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want refreshed to %v", out.UpdatedAt, later)
	}
	if len(batch.Tasks) != 2 {
		t.Errorf("caller's batch mutated: %v", batch.Tasks)
	}
}

func TestDeleteItemUnknownID(t *testing.T) {
	_, err := DeleteItem(pendingBatch(), "missing", time.Now())
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestAddItem(t *testing.T) {
	batch := pendingBatch()
	later := batch.UpdatedAt.Add(time.Hour)
	task := models.Task{ID: "t3", Title: "third", Description: "d", Priority: models.PriorityMedium, SourceQuote: "q"}

	out, err := AddItem(batch, task, later)
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	if len(out.Tasks) != 3 || out.Tasks[2].ID != "t3" {
		t.Errorf("tasks = %v, want t3 appended", out.Tasks)
	}
	if len(batch.Tasks) != 2 {
		t.Errorf("caller's batch mutated: %v", batch.Tasks)
	}
}

func TestReplaceItem(t *testing.T) {
	batch := pendingBatch()
	edited := batch.Tasks[0]
	edited.Title = "renamed"

	out, err := ReplaceItem(batch, edited, time.Now())
	if err != nil {
		t.Fatalf("ReplaceItem() error: %v", err)
	}
	if out.Tasks[0].Title != "renamed" {
		t.Errorf("title = %q, want renamed", out.Tasks[0].Title)
	}
	if batch.Tasks[0].Title != "first" {
		t.Errorf("caller's batch mutated: %q", batch.Tasks[0].Title)
	}
}

func TestItemMutationsRequireMutableStatus(t *testing.T) {
	for _, status := range []string{models.StatusApproved, models.StatusCancelled} {
		batch := pendingBatch()
		batch.Status = status

		var lerr *LifecycleError
		if _, err := DeleteItem(batch, "t1", time.Now()); !errors.As(err, &lerr) {
			t.Errorf("DeleteItem from %s: error = %v, want *LifecycleError", status, err)
		}
		if _, err := AddItem(batch, models.Task{ID: "t9"}, time.Now()); !errors.As(err, &lerr) {
			t.Errorf("AddItem from %s: error = %v, want *LifecycleError", status, err)
		}
		if _, err := ReplaceItem(batch, batch.Tasks[0], time.Now()); !errors.As(err, &lerr) {
			t.Errorf("ReplaceItem from %s: error = %v, want *LifecycleError", status, err)
		}
	}
}

func TestItemMutationsAllowedDuringRevision(t *testing.T) {
	batch := pendingBatch()
	batch.Status = models.StatusRevisionRequested

	if _, err := DeleteItem(batch, "t1", time.Now()); err != nil {
		t.Errorf("DeleteItem during revision: %v", err)
	}
	if _, err := AddItem(batch, models.Task{ID: "t9"}, time.Now()); err != nil {
		t.Errorf("AddItem during revision: %v", err)
	}
}
