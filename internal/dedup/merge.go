package dedup

import (
	"strings"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// SimilarityThreshold is the title similarity at or above which two tasks
// are considered duplicates.
const SimilarityThreshold = 0.8

// QuoteDelimiter separates distinct source quotes in a merged task.
const QuoteDelimiter = "\n---\n"

// Pair marks a duplicate: the task at Merge is folded into the task at Keep.
type Pair struct {
	Keep  int
	Merge int
}

// DetectDuplicates scans the tasks in input order and returns duplicate
// pairs. For each unprocessed index i every later unprocessed index j is
// compared once; a j folded into some i is never re-compared or folded into
// a third task (first match wins).
func DetectDuplicates(tasks []models.Task) []Pair {
	var pairs []Pair
	merged := make(map[int]bool, len(tasks))

	for i := 0; i < len(tasks); i++ {
		if merged[i] {
			continue
		}
		for j := i + 1; j < len(tasks); j++ {
			if merged[j] {
				continue
			}
			if Similarity(tasks[i].Title, tasks[j].Title) >= SimilarityThreshold {
				pairs = append(pairs, Pair{Keep: i, Merge: j})
				merged[j] = true
			}
		}
	}

	return pairs
}

// Merge deduplicates the tasks, folding each duplicate group into a single
// task. Output keeps one task per surviving group in original
// first-occurrence order. Merge never fails; empty input yields empty output.
// Merging an already-deduplicated slice returns it unchanged.
func Merge(tasks []models.Task) []models.Task {
	if len(tasks) == 0 {
		return []models.Task{}
	}

	pairs := DetectDuplicates(tasks)
	if len(pairs) == 0 {
		out := make([]models.Task, len(tasks))
		copy(out, tasks)
		return out
	}

	folded := make(map[int]bool, len(pairs))
	groups := make(map[int][]int, len(pairs))
	for _, p := range pairs {
		folded[p.Merge] = true
		groups[p.Keep] = append(groups[p.Keep], p.Merge)
	}

	result := make([]models.Task, 0, len(tasks)-len(pairs))
	for i, task := range tasks {
		if folded[i] {
			continue
		}
		if members, ok := groups[i]; ok {
			group := make([]models.Task, 0, len(members)+1)
			group = append(group, task)
			for _, j := range members {
				group = append(group, tasks[j])
			}
			result = append(result, mergeGroup(group))
			continue
		}
		result = append(result, task)
	}

	return result
}

// mergeGroup folds a duplicate group (primary first, then the tasks merged
// into it in input order) into one task. Tie-breaks apply in fixed order:
// longest description, first non-empty assignee, earliest due date, highest
// priority, then all distinct source quotes concatenated in input order.
func mergeGroup(group []models.Task) models.Task {
	merged := group[0]
	for _, t := range group[1:] {
		if len(t.Description) > len(merged.Description) {
			merged.Description = t.Description
		}
	}

	merged.Assignee = ""
	for _, t := range group {
		if t.Assignee != "" {
			merged.Assignee = t.Assignee
			break
		}
	}

	for _, t := range group[1:] {
		if !t.HasDueDate() {
			continue
		}
		if !merged.HasDueDate() || t.DueDate.Before(merged.DueDate) {
			merged.DueDate = t.DueDate
		}
	}

	for _, t := range group[1:] {
		if t.Priority.Rank() > merged.Priority.Rank() {
			merged.Priority = t.Priority
		}
	}

	// Deduplication of quotes is by exact trimmed text.
	var quotes []string
	seen := make(map[string]bool, len(group))
	for _, t := range group {
		quote := strings.TrimSpace(t.SourceQuote)
		if quote == "" || seen[quote] {
			continue
		}
		quotes = append(quotes, quote)
		seen[quote] = true
	}
	merged.SourceQuote = strings.Join(quotes, QuoteDelimiter)

	return merged
}
