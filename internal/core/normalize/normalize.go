// Package normalize folds text into the form the fuzzy matcher compares on
// Pipeline order
// 1 Unicode NFD decomposition (base rune + combining marks)
// 2 Remove nonspacing combining marks (category Mn)
// 3 Lowercase (Key only)
// 4 Remove any marks the lowercase mapping reintroduced (Key only)
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer is concurrency safe; transformer chains are pooled per call
type Normalizer struct{}

// pools of fresh transformer chains, a chain carries state and must not be shared
var (
	foldPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFD,
				runes.Remove(runes.In(unicode.Mn)),
			)
		},
	}
	keyPool = sync.Pool{
		New: func() any {
			// order matters and mirrors the documented pipeline
			return transform.Chain(
				norm.NFD,
				runes.Remove(runes.In(unicode.Mn)),
				cases.Lower(language.Und),
				norm.NFD,                           // lowercase forms like "i̇" decompose again
				runes.Remove(runes.In(unicode.Mn)), // and lose their marks
			)
		},
	}
)

var std = New()

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Fold strips diacritics from s: "éàçñ" -> "eacn". Case is preserved
func (n *Normalizer) Fold(s string) string {
	if s == "" {
		return ""
	}
	return run(&foldPool, s, strip)
}

// Key returns the comparison form of s: diacritics stripped and lowercased.
// Invalid UTF-8 bytes are dropped first
func (n *Normalizer) Key(s string) string {
	if s == "" {
		return ""
	}
	return run(&keyPool, strings.ToValidUTF8(s, ""), lowerStrip)
}

// Words returns the whitespace-delimited, non-empty words of s. No normalization is applied
func (n *Normalizer) Words(s string) []string { return strings.Fields(s) }

// Fold strips diacritics using the package normalizer
func Fold(s string) string { return std.Fold(s) }

// Key returns the comparison form of s using the package normalizer
func Key(s string) string { return std.Key(s) }

// Words splits s on whitespace using the package normalizer
func Words(s string) []string { return std.Words(s) }

// run applies a pooled chain to s; if the chain fails, fallback computes the
// same form rune by rune
func run(p *sync.Pool, s string, fallback func(string) string) string {
	tr := p.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)
	if err != nil {
		return fallback(s)
	}
	return out
}

func strip(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, norm.NFD.String(s))
}

func lowerStrip(s string) string { return strip(strings.ToLower(strip(s))) }
