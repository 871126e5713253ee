package dedup

import (
	"testing"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

func task(title string, opts ...func(*models.Task)) models.Task {
	t := models.Task{
		ID:          "id-" + title,
		Title:       title,
		Description: "desc",
		Priority:    models.PriorityMedium,
		SourceQuote: "quote for " + title,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func TestDetectDuplicatesMultibyteTitles(t *testing.T) {
	// One substituted character out of three: 0.667 per rune, but a
	// byte-level measure reads 8 of 9 bytes shared and would fold the
	// distinct titles together.
	tasks := []models.Task{
		task("日本語"),
		task("日本誤"),
	}
	if pairs := DetectDuplicates(tasks); len(pairs) != 0 {
		t.Errorf("DetectDuplicates() = %v, want none", pairs)
	}

	out := Merge(tasks)
	if len(out) != 2 {
		t.Errorf("Merge() folded distinct multibyte titles: %v", out)
	}
}

func TestDetectDuplicates(t *testing.T) {
	tasks := []models.Task{
		task("Ship API"),
		task("Update docs"),
		task("ship api"),
	}

	pairs := DetectDuplicates(tasks)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d: %v", len(pairs), pairs)
	}
	if pairs[0].Keep != 0 || pairs[0].Merge != 2 {
		t.Errorf("expected (0,2), got (%d,%d)", pairs[0].Keep, pairs[0].Merge)
	}
}

func TestDetectDuplicatesFirstMatchWins(t *testing.T) {
	// Index 1 folds into index 0; it must never be folded again into index 2.
	tasks := []models.Task{
		task("deploy service"),
		task("deploy service "),
		task("deploy services"),
	}

	pairs := DetectDuplicates(tasks)
	for _, p := range pairs {
		if p.Merge == 1 && p.Keep != 0 {
			t.Errorf("index 1 folded into %d, want 0", p.Keep)
		}
		if p.Keep == 1 {
			t.Errorf("folded index 1 used as keep target: %v", p)
		}
	}
}

func TestDetectDuplicatesBelowThreshold(t *testing.T) {
	tasks := []models.Task{
		task("Write the quarterly report"),
		task("Fix the login page"),
	}
	if pairs := DetectDuplicates(tasks); len(pairs) != 0 {
		t.Errorf("expected no pairs, got %v", pairs)
	}
}

func TestMergeTieBreaks(t *testing.T) {
	due := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{
			ID:          "t1",
			Title:       "Ship API",
			Description: "short",
			Priority:    models.PriorityMedium,
			SourceQuote: "we should ship the API",
		},
		{
			ID:          "t2",
			Title:       "ship api",
			Description: "much longer description text here",
			Priority:    models.PriorityHigh,
			Assignee:    "Dana",
			DueDate:     due,
			SourceQuote: "Dana will ship the API by the 10th",
		},
	}

	merged := Merge(tasks)
	if len(merged) != 1 {
		t.Fatalf("expected 1 task, got %d", len(merged))
	}

	got := merged[0]
	if got.ID != "t1" {
		t.Errorf("merged ID = %q, want primary t1", got.ID)
	}
	if got.Description != "much longer description text here" {
		t.Errorf("description = %q, want the longer one", got.Description)
	}
	if got.Assignee != "Dana" {
		t.Errorf("assignee = %q, want Dana", got.Assignee)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}
	if !got.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", got.DueDate, due)
	}
	want := "we should ship the API" + QuoteDelimiter + "Dana will ship the API by the 10th"
	if got.SourceQuote != want {
		t.Errorf("source quote = %q, want %q", got.SourceQuote, want)
	}
}

func TestMergeEarliestDueDateWins(t *testing.T) {
	early := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		task("review budget", func(t *models.Task) { t.DueDate = late }),
		task("review budget", func(t *models.Task) { t.DueDate = early }),
	}

	merged := Merge(tasks)
	if len(merged) != 1 {
		t.Fatalf("expected 1 task, got %d", len(merged))
	}
	if !merged[0].DueDate.Equal(early) {
		t.Errorf("due date = %v, want %v", merged[0].DueDate, early)
	}
}

func TestMergeDeduplicatesQuotesByExactText(t *testing.T) {
	tasks := []models.Task{
		task("update roadmap", func(t *models.Task) { t.SourceQuote = "  the roadmap needs updating " }),
		task("update roadmap", func(t *models.Task) { t.SourceQuote = "the roadmap needs updating" }),
	}

	merged := Merge(tasks)
	if len(merged) != 1 {
		t.Fatalf("expected 1 task, got %d", len(merged))
	}
	if merged[0].SourceQuote != "the roadmap needs updating" {
		t.Errorf("source quote = %q, want single deduplicated quote", merged[0].SourceQuote)
	}
}

func TestMergePreservesFirstOccurrenceOrder(t *testing.T) {
	tasks := []models.Task{
		task("Ship API"),
		task("Update docs"),
		task("ship api"),
		task("Plan offsite"),
	}

	merged := Merge(tasks)
	titles := make([]string, len(merged))
	for i, m := range merged {
		titles[i] = m.Title
	}
	want := []string{"Ship API", "Update docs", "Plan offsite"}
	if len(titles) != len(want) {
		t.Fatalf("got %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("got %v, want %v", titles, want)
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	tasks := []models.Task{
		task("Ship API", func(t *models.Task) { t.Description = "short" }),
		task("ship api", func(t *models.Task) { t.Description = "a much longer description" }),
		task("Update docs"),
	}

	once := Merge(tasks)
	twice := Merge(once)
	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %d then %d tasks", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("task %d changed on second merge:\n first: %+v\nsecond: %+v", i, once[i], twice[i])
		}
	}
}

func TestMergeEmptyInput(t *testing.T) {
	if got := Merge(nil); len(got) != 0 {
		t.Errorf("Merge(nil) = %v, want empty", got)
	}
	if got := Merge([]models.Task{}); len(got) != 0 {
		t.Errorf("Merge(empty) = %v, want empty", got)
	}
}
