package fuzzy

import (
	perr "shelfsearch/internal/platform/errors"
	"shelfsearch/internal/platform/validate"
)

// Defaults used by DefaultOptions
const (
	DefaultPrefixRatio       = 0.75
	DefaultMinPrefixTermLen  = 3
	DefaultShortTermLen      = 4
	DefaultShortTermMaxEdits = 1
	DefaultLongTermMaxEdits  = 2
	DefaultWordLenSlack      = 2
	DefaultWindowMaxEdits    = 1

	// DefaultMaxWindowChecks caps sliding windows per haystack word. The value is a
	// cost policy, not a correctness bound: matches past the cap are missed
	DefaultMaxWindowChecks = 10
)

// Options tunes the matcher stages. Lengths count Unicode code points of the
// normalized needle
type Options struct {
	// PrefixRatio is the share of the needle that must occur as a prefix (stage prefix)
	PrefixRatio float64 `json:"prefix_ratio" validate:"gt=0,lte=1"`
	// MinPrefixTermLen is the shortest needle the prefix stage applies to
	MinPrefixTermLen int `json:"min_prefix_term_len" validate:"min=1"`
	// ShortTermLen is the longest needle that uses ShortTermMaxEdits
	ShortTermLen int `json:"short_term_len" validate:"min=0"`
	// ShortTermMaxEdits is the word-stage threshold for short needles
	ShortTermMaxEdits int `json:"short_term_max_edits" validate:"min=0"`
	// LongTermMaxEdits is the word-stage threshold for longer needles
	LongTermMaxEdits int `json:"long_term_max_edits" validate:"min=0"`
	// WordLenSlack is the largest word/needle length difference the word stage compares
	WordLenSlack int `json:"word_len_slack" validate:"min=0"`
	// WindowMaxEdits is the distance a sliding window may be from the needle
	WindowMaxEdits int `json:"window_max_edits" validate:"min=0"`
	// MaxWindowChecks caps windows examined per haystack word
	MaxWindowChecks int `json:"max_window_checks" validate:"min=1"`
}

// DefaultOptions returns the stock thresholds
func DefaultOptions() Options {
	return Options{
		PrefixRatio:       DefaultPrefixRatio,
		MinPrefixTermLen:  DefaultMinPrefixTermLen,
		ShortTermLen:      DefaultShortTermLen,
		ShortTermMaxEdits: DefaultShortTermMaxEdits,
		LongTermMaxEdits:  DefaultLongTermMaxEdits,
		WordLenSlack:      DefaultWordLenSlack,
		WindowMaxEdits:    DefaultWindowMaxEdits,
		MaxWindowChecks:   DefaultMaxWindowChecks,
	}
}

// Validate reports the first invalid option as a validation error
func (o Options) Validate() error {
	return perr.WithOp(validate.Struct(o), "fuzzy.options")
}
