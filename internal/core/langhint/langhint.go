// Package langhint guesses the writing script and, where the script is
// decisive, the language of short catalog text such as titles and author names.
package langhint

import "unicode"

// MinLetters is the letter count Detect needs before it suggests a language
const MinLetters = 8

// Hint is the outcome of a detection. Script is "" when s has no letters;
// Lang is a BCP-47 code or "" when the script is ambiguous
type Hint struct {
	Script string
	Lang   string
}

type script struct {
	name  string
	table *unicode.RangeTable
	lang  string // decisive language, "" when ambiguous
}

// order is the tie-break: specific scripts before Han, Han before Latin
var scripts = []script{
	{"Hiragana", unicode.Hiragana, "ja"},
	{"Katakana", unicode.Katakana, "ja"},
	{"Hangul", unicode.Hangul, "ko"},
	{"Han", unicode.Han, ""}, // zh or ja
	{"Arabic", unicode.Arabic, "ar"},
	{"Hebrew", unicode.Hebrew, "he"},
	{"Thai", unicode.Thai, "th"},
	{"Greek", unicode.Greek, "el"},
	{"Cyrillic", unicode.Cyrillic, ""}, // ru, uk, bg, sr...
	{"Georgian", unicode.Georgian, "ka"},
	{"Armenian", unicode.Armenian, "hy"},
	{"Devanagari", unicode.Devanagari, ""}, // hi, mr, ne...
	{"Latin", unicode.Latin, ""},
}

// Detect reports the predominant script of s and a language when one is decisive
func Detect(s string) Hint { return DetectMin(s, MinLetters) }

// DetectMin is Detect with a custom letter threshold for the language guess
func DetectMin(s string, minLetters int) Hint {
	counts := make([]int, len(scripts))
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}

	best := -1
	for i, n := range counts {
		if n > 0 && (best < 0 || n > counts[best]) {
			best = i
		}
	}
	if best < 0 {
		return Hint{}
	}
	h := Hint{Script: scripts[best].name}
	if letters < minLetters {
		return h
	}

	// kana anywhere means Japanese even when Han dominates
	if counts[0] > 0 || counts[1] > 0 {
		h.Lang = "ja"
		return h
	}
	h.Lang = scripts[best].lang
	return h
}
