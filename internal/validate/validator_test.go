package validate

import (
	"strings"
	"testing"

	"github.com/adanyl0v/go-minutes/internal/models"
)

func validTask(id, title string) models.Task {
	return models.Task{
		ID:          id,
		Title:       title,
		Description: "do the thing",
		Priority:    models.PriorityMedium,
		SourceQuote: "someone said to do the thing",
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.Task)
		wantRule string
	}{
		{name: "valid", mutate: func(*models.Task) {}, wantRule: ""},
		{
			name:     "blank title",
			mutate:   func(task *models.Task) { task.Title = "   " },
			wantRule: "title_non_blank",
		},
		{
			name:     "title too long",
			mutate:   func(task *models.Task) { task.Title = strings.Repeat("a", 101) },
			wantRule: "title_length",
		},
		{
			name:     "title at the limit",
			mutate:   func(task *models.Task) { task.Title = strings.Repeat("a", 100) },
			wantRule: "",
		},
		{
			name:     "invalid priority",
			mutate:   func(task *models.Task) { task.Priority = "urgent" },
			wantRule: "priority",
		},
		{
			name:     "empty priority",
			mutate:   func(task *models.Task) { task.Priority = "" },
			wantRule: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask("t1", "write report")
			tt.mutate(&task)

			err := Check(task)
			if tt.wantRule == "" {
				if err != nil {
					t.Fatalf("Check() = %v, want nil", err)
				}
				return
			}

			verr, ok := err.(*Error)
			if !ok {
				t.Fatalf("Check() = %T, want *Error", err)
			}
			if verr.Rule != tt.wantRule {
				t.Errorf("rule = %q, want %q", verr.Rule, tt.wantRule)
			}
		})
	}
}

func TestFilterDropsInvalidPreservingOrder(t *testing.T) {
	batch := models.TaskBatch{
		SessionID: "s1",
		Status:    models.StatusPending,
		Tasks: []models.Task{
			validTask("t1", "first"),
			validTask("t2", strings.Repeat("x", 101)),
			validTask("t3", "third"),
		},
	}

	filtered := Filter(batch)
	if len(filtered.Tasks) != 2 {
		t.Fatalf("expected 2 surviving tasks, got %d", len(filtered.Tasks))
	}
	if filtered.Tasks[0].ID != "t1" || filtered.Tasks[1].ID != "t3" {
		t.Errorf("order not preserved: %v", filtered.Tasks)
	}
	if len(batch.Tasks) != 3 {
		t.Errorf("input batch mutated: %d tasks", len(batch.Tasks))
	}
}

func TestFilterEmptyBatch(t *testing.T) {
	filtered := Filter(models.TaskBatch{SessionID: "s1"})
	if len(filtered.Tasks) != 0 {
		t.Errorf("expected empty result, got %v", filtered.Tasks)
	}
}
