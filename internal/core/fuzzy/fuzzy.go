// Package fuzzy decides whether a query term fuzzily occurs in a text, tolerating
// accents, case, typos and partial prefixes.
// Both inputs are normalized once per call, then the stages run in order and the
// first one that matches wins
// 1 exact   needle is a substring of the haystack
// 2 prefix  the leading PrefixRatio of the needle is a substring (needles >= MinPrefixTermLen)
// 3 word    a haystack word of similar length is within Threshold edits
// 4 window  a needle-sized window of a haystack word is within WindowMaxEdits,
// checking at most MaxWindowChecks windows per word
package fuzzy

import (
	"strings"
	"sync"

	"shelfsearch/internal/core/editdist"
	"shelfsearch/internal/core/normalize"
)

// Stage names a matcher stage
type Stage string

const (
	// StageNone is reported when nothing matched
	StageNone Stage = ""
	// StageExact is the substring stage
	StageExact Stage = "exact"
	// StagePrefix is the partial prefix stage
	StagePrefix Stage = "prefix"
	// StageWord is the per-word edit distance stage
	StageWord Stage = "word"
	// StageWindow is the bounded sliding window stage
	StageWindow Stage = "window"
)

// distance is the edit distance seam used by the word and window stages
var distance = editdist.Runes

// stage is one predicate over an already-normalized pair
type stage struct {
	name  Stage
	match func(m *Matcher, in *pair) bool
}

// stages run in this order
var stages = []stage{
	{StageExact, (*Matcher).exact},
	{StagePrefix, (*Matcher).prefix},
	{StageWord, (*Matcher).word},
	{StageWindow, (*Matcher).window},
}

// Stages returns the stage names in evaluation order
func Stages() []Stage {
	out := make([]Stage, len(stages))
	for i, s := range stages {
		out[i] = s.name
	}
	return out
}

// Matcher runs the staged fuzzy match. It is immutable and safe for concurrent use
type Matcher struct {
	opts Options
}

// New returns a Matcher for opts or a validation error
func New(opts Options) (*Matcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{opts: opts}, nil
}

// MustNew is New that panics on invalid options
func MustNew(opts Options) *Matcher {
	m, err := New(opts)
	if err != nil {
		panic(err)
	}
	return m
}

// Options returns a copy of the matcher options
func (m *Matcher) Options() Options { return m.opts }

// Threshold returns the word-stage edit budget for a needle of n runes
func (m *Matcher) Threshold(n int) int {
	if n <= m.opts.ShortTermLen {
		return m.opts.ShortTermMaxEdits
	}
	return m.opts.LongTermMaxEdits
}

// Match reports whether needle fuzzily occurs in haystack. An empty needle
// always matches; an empty haystack matches only an empty needle
func (m *Matcher) Match(haystack, needle string) bool {
	_, ok := m.Explain(haystack, needle)
	return ok
}

// Explain is Match that also reports which stage matched
func (m *Matcher) Explain(haystack, needle string) (Stage, bool) {
	return m.explain(newPair(newText(normalize.Key(haystack)), normalize.Key(needle)))
}

func (m *Matcher) explain(in *pair) (Stage, bool) {
	for _, s := range stages {
		if s.match(m, in) {
			return s.name, true
		}
	}
	return StageNone, false
}

func (m *Matcher) exact(in *pair) bool {
	return strings.Contains(in.hay.s, in.needle)
}

func (m *Matcher) prefix(in *pair) bool {
	n := len(in.needleRunes)
	if n < m.opts.MinPrefixTermLen {
		return false
	}
	pl := int(float64(n) * m.opts.PrefixRatio)
	if pl == 0 {
		return false
	}
	return strings.Contains(in.hay.s, string(in.needleRunes[:pl]))
}

func (m *Matcher) word(in *pair) bool {
	n := len(in.needleRunes)
	limit := m.Threshold(n)
	for _, w := range in.hay.words() {
		if abs(len(w)-n) > m.opts.WordLenSlack {
			continue
		}
		if distance(w, in.needleRunes) <= limit {
			return true
		}
	}
	return false
}

func (m *Matcher) window(in *pair) bool {
	n := len(in.needleRunes)
	if n == 0 {
		return false
	}
	for _, w := range in.hay.words() {
		if len(w) < n {
			continue
		}
		for i := 0; i+n <= len(w) && i < m.opts.MaxWindowChecks; i++ {
			if distance(w[i:i+n], in.needleRunes) <= m.opts.WindowMaxEdits {
				return true
			}
		}
	}
	return false
}

// text is a normalized haystack with lazily split words, shareable across needles
type text struct {
	s string

	once  sync.Once
	split [][]rune
}

func newText(s string) *text { return &text{s: s} }

func (t *text) words() [][]rune {
	t.once.Do(func() {
		fields := normalize.Words(t.s)
		t.split = make([][]rune, len(fields))
		for i, f := range fields {
			t.split[i] = []rune(f)
		}
	})
	return t.split
}

// pair is one normalized haystack/needle comparison
type pair struct {
	hay         *text
	needle      string
	needleRunes []rune
}

func newPair(hay *text, needle string) *pair {
	return &pair{hay: hay, needle: needle, needleRunes: []rune(needle)}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var defaultMatcher = sync.OnceValue(func() *Matcher { return MustNew(DefaultOptions()) })

// Default returns the shared Matcher built from DefaultOptions
func Default() *Matcher { return defaultMatcher() }

// Match reports whether needle fuzzily occurs in haystack using the default matcher
func Match(haystack, needle string) bool { return Default().Match(haystack, needle) }

// Explain reports the matching stage using the default matcher
func Explain(haystack, needle string) (Stage, bool) { return Default().Explain(haystack, needle) }
