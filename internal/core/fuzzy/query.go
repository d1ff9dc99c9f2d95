package fuzzy

import "shelfsearch/internal/core/normalize"

// Terms returns the normalized, whitespace-delimited words of query.
// A blank query yields no terms
func Terms(query string) []string {
	return normalize.Words(normalize.Key(query))
}

// MatchAll reports whether every term of query fuzzily occurs somewhere in
// combined. Terms match independently, in any order. A query with no terms is
// vacuously satisfied, so callers must reject blank queries themselves
func (m *Matcher) MatchAll(combined, query string) bool {
	terms := Terms(query)
	if len(terms) == 0 {
		return true
	}
	hay := newText(normalize.Key(combined))
	for _, t := range terms {
		// terms are already normalized and Key is idempotent
		if _, ok := m.explain(newPair(hay, t)); !ok {
			return false
		}
	}
	return true
}

// MatchAll runs the default matcher's MatchAll
func MatchAll(combined, query string) bool { return Default().MatchAll(combined, query) }
