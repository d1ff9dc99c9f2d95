// Package service implements catalog search on top of the fuzzy matcher
package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"shelfsearch/internal/core/fuzzy"
	"shelfsearch/internal/core/normalize"
	perr "shelfsearch/internal/platform/errors"
	"shelfsearch/internal/platform/logger"
	str "shelfsearch/internal/platform/strings"
	"shelfsearch/internal/services/catalog/domain"
)

// Config for the catalog service
type Config struct {
	Workers int // concurrent candidate evaluations, <= 0 means 1
}

// Service implements domain.SearchPort
type Service struct {
	Reader  domain.ReaderPort
	Matcher *fuzzy.Matcher
	Cfg     Config
}

var _ domain.SearchPort = (*Service)(nil)

// New constructs a catalog service. A nil matcher uses fuzzy.Default()
func New(reader domain.ReaderPort, m *fuzzy.Matcher, cfg Config) *Service {
	if m == nil {
		m = fuzzy.Default()
	}
	w := cfg.Workers
	if w <= 0 {
		w = 1
	}
	return &Service{Reader: reader, Matcher: m, Cfg: Config{Workers: w}}
}

// SearchWorks returns the works whose title, authors and series fuzzily contain
// every word of query, in catalog order. A blank query returns no results
func (s *Service) SearchWorks(ctx context.Context, query string) ([]domain.Work, error) {
	if len(fuzzy.Terms(query)) == 0 {
		return nil, nil
	}
	works, err := s.Reader.Works(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	keep := make([]bool, len(works))
	err = s.each(ctx, len(works), func(i int) {
		keep[i] = s.Matcher.MatchAll(works[i].SearchText(), query)
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Work, 0, len(works))
	for i, ok := range keep {
		if ok {
			out = append(out, works[i])
		}
	}
	logger.C(ctx).Debug().
		Str("query", query).
		Int("candidates", len(works)).
		Int("hits", len(out)).
		Dur("took", time.Since(start)).
		Msg("work search")
	return out, nil
}

// SearchEditions returns editions whose ISBN or publisher contains the
// normalized query. An ISBN-shaped query also matches ignoring separators.
// A blank query returns no results
func (s *Service) SearchEditions(ctx context.Context, query string) ([]domain.Edition, error) {
	if str.IsBlank(query) {
		return nil, nil
	}
	eds, err := s.Reader.Editions(ctx)
	if err != nil {
		return nil, err
	}
	q := normalize.Key(strings.TrimSpace(query))
	digits := isbnDigits(q)

	out := make([]domain.Edition, 0)
	for _, e := range eds {
		switch {
		case strings.Contains(strings.ToLower(e.ISBN), q),
			digits != "" && strings.Contains(isbnDigits(strings.ToLower(e.ISBN)), digits),
			e.Publisher != "" && strings.Contains(normalize.Key(e.Publisher), q):
			out = append(out, e)
		}
	}
	logger.C(ctx).Debug().Str("query", query).Int("hits", len(out)).Msg("edition search")
	return out, nil
}

// WorksByAuthor returns works whose main author equals author after normalization
func (s *Service) WorksByAuthor(ctx context.Context, author string) ([]domain.Work, error) {
	want := normalize.Key(strings.TrimSpace(author))
	return s.filterWorks(ctx, func(w domain.Work) bool {
		return normalize.Key(w.Author) == want
	})
}

// WorksBySeries returns the works of a series ordered by series number
func (s *Service) WorksBySeries(ctx context.Context, series string) ([]domain.Work, error) {
	want := normalize.Key(strings.TrimSpace(series))
	out, err := s.filterWorks(ctx, func(w domain.Work) bool {
		return w.Series != "" && normalize.Key(w.Series) == want
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b domain.Work) int { return cmp.Compare(a.SeriesNumber, b.SeriesNumber) })
	return out, nil
}

// EditionsOfWork returns the editions of the work with workID
func (s *Service) EditionsOfWork(ctx context.Context, workID string) ([]domain.Edition, error) {
	w, err := s.Reader.Work(ctx, workID)
	if err != nil {
		return nil, err
	}
	eds, err := s.Reader.Editions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Edition, 0)
	for _, e := range eds {
		if e.WorkID == w.ID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Stats counts works, editions, distinct authors and series, and digital editions
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	works, err := s.Reader.Works(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	eds, err := s.Reader.Editions(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	authors := map[string]struct{}{}
	series := map[string]struct{}{}
	for _, w := range works {
		authors[normalize.Key(w.Author)] = struct{}{}
		if w.Series != "" {
			series[normalize.Key(w.Series)] = struct{}{}
		}
	}
	st := domain.Stats{Works: len(works), Editions: len(eds), Authors: len(authors), Series: len(series)}
	for _, e := range eds {
		if e.Digital() {
			st.Digital++
		}
	}
	return st, nil
}

func (s *Service) filterWorks(ctx context.Context, keep func(domain.Work) bool) ([]domain.Work, error) {
	works, err := s.Reader.Works(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Work, 0)
	for _, w := range works {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// each runs fn for 0..n-1 on at most Cfg.Workers goroutines and stops
// scheduling once ctx is done
func (s *Service) each(ctx context.Context, n int, fn func(i int)) error {
	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			fn(i)
		}(i)
	}
	wg.Wait()
	return perr.Canceled(ctx.Err(), "catalog.search")
}

// isbnDigits strips separators from a lowercased ISBN fragment. Fragments
// without a digit, or with anything besides digits, x, '-' and spaces, yield ""
func isbnDigits(s string) string {
	var b strings.Builder
	digit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
			b.WriteRune(r)
		case r == 'x':
			b.WriteRune(r)
		case r == '-' || r == ' ':
		default:
			return ""
		}
	}
	if !digit {
		return ""
	}
	return b.String()
}
