package dedup

import (
	"strings"
	"unicode/utf8"
)

// Similarity computes a normalized Levenshtein similarity between two titles.
//
// Both inputs are trimmed and case-folded first. Two empty titles are fully
// similar (1.0); one empty and one non-empty are fully dissimilar (0.0).
// Otherwise the edit distance is converted to 1 - d/max(len), clamped at 0.
// Distance and length are measured in runes, so multibyte titles are not
// penalized per byte.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	distance := levenshtein(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	similarity := 1.0 - float64(distance)/float64(maxLen)
	if similarity < 0 {
		return 0.0
	}
	return similarity
}

// levenshtein computes the rune-level edit distance with unit-cost
// insertions, deletions and substitutions using the two-row dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	previous := make([]int, len(rb)+1)
	current := make([]int, len(rb)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 0; i < len(ra); i++ {
		current[0] = i + 1
		for j := 0; j < len(rb); j++ {
			insertion := previous[j+1] + 1
			deletion := current[j] + 1
			substitution := previous[j]
			if ra[i] != rb[j] {
				substitution++
			}
			current[j+1] = min3(insertion, deletion, substitution)
		}
		previous, current = current, previous
	}

	return previous[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
