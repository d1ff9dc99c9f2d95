package fuzzy

import (
	"slices"
	"strings"
	"sync"
	"testing"

	perr "shelfsearch/internal/platform/errors"
	kit "shelfsearch/internal/platform/testkit"
)

func TestMatch_Table(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		// exact
		{"exact word", "Hello World", "Hello", true},
		{"exact phrase", "Hello World", "Hello World", true},
		{"case insensitive", "Hello World", "HeLLo", true},
		{"case insensitive upper", "Hello World", "WORLD", true},
		{"diacritics in haystack", "Café français", "francais", true},
		{"diacritics in needle", "Cafe", "café", true},
		{"inner substring", "catastrophe", "astrophe", true},
		{"short substring", "Hi all", "al", true},

		// prefix
		{"prefix of longer word", "programmation python", "program", true},
		{"prefix partial", "programmation python", "pyth", true},

		// word distance
		{"short term one edit", "chat chien", "char", true},
		{"short term one edit first rune", "chat chien", "xhat", true},
		{"short term two edits", "chat chien", "xxat", false},
		{"long term one edit", "python programming", "pithon", true},
		{"long term insertion", "python programming", "programing", true},
		{"long term two edits", "python programming", "progaming", true},
		{"sentence one edit", "le chat mange du poisson", "poissan", true},

		// window
		{"window inside long word", "anticonstitutionnellement", "constitx", true},

		// misses
		{"no match short", "Hi all", "xy", false},
		{"no match short 2", "Hi all", "zz", false},
		{"no match", "Hello World", "xyz", false},
		{"no match longer", "Hello World", "bonjour", false},
		{"no match four", "Hello World", "test", false},
		{"different word", "le chat mange du poisson", "chien", false},

		// empties
		{"empty needle", "Hello", "", true},
		{"empty both", "", "", true},
		{"empty haystack", "", "Hello", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Match(tc.haystack, tc.needle); got != tc.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tc.haystack, tc.needle, got, tc.want)
			}
		})
	}
}

func TestExplain_StageOrder(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             Stage
	}{
		{"Hello World", "hello", StageExact},
		{"programmation", "programmes", StagePrefix},
		{"chat chien", "xhat", StageWord},
		{"python programming", "progaming", StageWord},
		{"anticonstitutionnellement", "xonst", StageWindow},
		{"chat chien", "xxat", StageNone},
	}
	for _, tc := range tests {
		got, ok := Explain(tc.haystack, tc.needle)
		if got != tc.want || ok != (tc.want != StageNone) {
			t.Fatalf("Explain(%q, %q) = (%q, %v), want %q", tc.haystack, tc.needle, got, ok, tc.want)
		}
	}
}

func TestStages_Order(t *testing.T) {
	want := []Stage{StageExact, StagePrefix, StageWord, StageWindow}
	if got := Stages(); !slices.Equal(got, want) {
		t.Fatalf("Stages() = %v, want %v", got, want)
	}
}

func TestThreshold(t *testing.T) {
	m := Default()
	for n, want := range map[int]int{0: 1, 1: 1, 4: 1, 5: 2, 12: 2} {
		if got := m.Threshold(n); got != want {
			t.Fatalf("Threshold(%d) = %d, want %d", n, got, want)
		}
	}
}

var samples = []string{
	"Hello", "le chat mange du poisson", "São Paulo", "a", "anticonstitutionnellement", "x y z",
}

func TestMatch_EmptyNeedleAlwaysMatches(t *testing.T) {
	for _, s := range append(samples, "") {
		if !Match(s, "") {
			t.Fatalf("Match(%q, \"\") = false", s)
		}
	}
}

func TestMatch_EmptyHaystackOnlyMatchesEmpty(t *testing.T) {
	for _, s := range samples {
		if Match("", s) {
			t.Fatalf("Match(\"\", %q) = true", s)
		}
	}
}

func TestMatch_WindowChecksAreCapped(t *testing.T) {
	kit.Serial(t)
	calls := kit.CountCalls(t, &distance)

	// no substring, no prefix and the single word is far too long for the word stage,
	// so every distance call comes from the window stage
	hay := strings.Repeat("a", 100)
	if Match(hay, "bbb") {
		t.Fatalf("unexpected match")
	}
	if calls.Count() != DefaultMaxWindowChecks {
		t.Fatalf("distance called %d times, want %d", calls.Count(), DefaultMaxWindowChecks)
	}

	calls.Reset()
	if !Match(hay, "aa") {
		t.Fatalf("exact substring should match")
	}
	if calls.Count() != 0 {
		t.Fatalf("exact stage should not compute distances, got %d calls", calls.Count())
	}
}

func TestMatch_CapPerWord(t *testing.T) {
	kit.Serial(t)
	calls := kit.CountCalls(t, &distance)

	hay := strings.Repeat("a", 40) + " " + strings.Repeat("c", 40)
	if Match(hay, "bbb") {
		t.Fatalf("unexpected match")
	}
	if want := 2 * DefaultMaxWindowChecks; calls.Count() != want {
		t.Fatalf("distance called %d times, want %d", calls.Count(), want)
	}
}

func TestMatch_CapTradesRecall(t *testing.T) {
	hay := strings.Repeat("x", 50) + "abcde"

	if Match(hay, "zbcde") {
		t.Fatalf("window past the cap should be missed with default options")
	}

	opts := DefaultOptions()
	opts.MaxWindowChecks = 100
	m := MustNew(opts)
	stage, ok := m.Explain(hay, "zbcde")
	if !ok || stage != StageWindow {
		t.Fatalf("raised cap should find the window, got (%q, %v)", stage, ok)
	}
}

func TestNew_CustomOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.ShortTermMaxEdits = 2
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !m.Match("chat chien", "xxat") {
		t.Fatalf("two edits should be allowed for short terms")
	}
	if m.Options() != opts {
		t.Fatalf("Options() = %+v, want %+v", m.Options(), opts)
	}

	opts = DefaultOptions()
	opts.PrefixRatio = 1
	m = MustNew(opts)
	if stage, _ := m.Explain("programmation", "programmes"); stage == StagePrefix {
		t.Fatalf("full-length prefix should not match a different word")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	cases := []struct {
		mut   func(*Options)
		field string
	}{
		{func(o *Options) { o.PrefixRatio = 0 }, "prefix_ratio"},
		{func(o *Options) { o.PrefixRatio = 1.5 }, "prefix_ratio"},
		{func(o *Options) { o.MinPrefixTermLen = 0 }, "min_prefix_term_len"},
		{func(o *Options) { o.ShortTermMaxEdits = -1 }, "short_term_max_edits"},
		{func(o *Options) { o.MaxWindowChecks = 0 }, "max_window_checks"},
	}
	for _, c := range cases {
		opts := DefaultOptions()
		c.mut(&opts)
		_, err := New(opts)
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("%s: code = %v (%v), want validation", c.field, perr.CodeOf(err), err)
		}
		e, _ := perr.As(err)
		if e.Field() != c.field || e.Op() != "fuzzy.options" {
			t.Fatalf("field/op = %q/%q, want %q/fuzzy.options", e.Field(), e.Op(), c.field)
		}
	}
	kit.MustPanic(t, func() { MustNew(Options{}) })
}

func TestMatch_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !Match("le chat mange du poisson", "poissan") || Match("chat chien", "xxat") {
				errs <- "inconsistent result under concurrency"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func BenchmarkMatch_LongWord(b *testing.B) {
	hay := strings.Repeat("a", 10000)
	for i := 0; i < b.N; i++ {
		_ = Match(hay, "bbbbbb")
	}
}
