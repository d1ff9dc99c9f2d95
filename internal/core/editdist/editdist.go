// Package editdist computes Levenshtein edit distance over Unicode code points
package editdist

import "slices"

// Distance returns the minimum number of single-rune insertions, deletions or
// substitutions turning a into b. It runs the Wagner-Fischer recurrence with two
// alternating rows as wide as the shorter input, so memory is O(min(|a|,|b|)).
// Inputs are compared as given; normalization is the caller's choice
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	return Runes([]rune(a), []rune(b))
}

// Runes is Distance over pre-split rune slices. Callers comparing one needle
// against many windows split once and call this directly
func Runes(a, b []rune) int {
	if slices.Equal(a, b) {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// b is the shorter input and sets the row width
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
