// Package repo provides the in-memory catalog store and its JSON loader
package repo

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"shelfsearch/internal/core/langhint"
	perr "shelfsearch/internal/platform/errors"
	"shelfsearch/internal/platform/validate"
	"shelfsearch/internal/services/catalog/domain"

	"github.com/google/uuid"
)

// newID mints IDs for works loaded without one (seam)
var newID = uuid.NewString

// Memory is a read-mostly catalog held in memory. Records keep insertion order
type Memory struct {
	mu       sync.RWMutex
	works    []domain.Work
	editions []domain.Edition
	byWork   map[string]int
	byISBN   map[string]int
}

var _ domain.ReaderPort = (*Memory)(nil)

// NewMemory returns an empty store
func NewMemory() *Memory {
	return &Memory{byWork: map[string]int{}, byISBN: map[string]int{}}
}

// Load decodes a catalog document from r and indexes it
func Load(r io.Reader) (*Memory, error) {
	doc, err := validate.DecodeJSON[domain.Catalog](r)
	if err != nil {
		return nil, perr.WithOp(err, "catalog.load")
	}
	m := NewMemory()
	for i, w := range doc.Works {
		if _, err := m.AddWork(w); err != nil {
			return nil, at(err, "work", i)
		}
	}
	for i, e := range doc.Editions {
		if err := m.AddEdition(e); err != nil {
			return nil, at(err, "edition", i)
		}
	}
	return m, nil
}

// LoadFile opens path and Loads it
func LoadFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "catalog %s", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open catalog %s", path)
	}
	defer f.Close()
	return Load(f)
}

// AddWork validates w, assigns an ID when missing and stores it. A missing
// language is filled in when the title and author use a decisive script
func (m *Memory) AddWork(w domain.Work) (domain.Work, error) {
	if err := validate.Struct(w); err != nil {
		return domain.Work{}, err
	}
	w.ID = strings.TrimSpace(w.ID)
	if w.ID == "" {
		w.ID = newID()
	}
	if w.Language == "" {
		w.Language = langhint.Detect(w.Title + " " + w.Author).Lang
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.byWork[w.ID]; dup {
		return domain.Work{}, perr.WithField(perr.DuplicateKeyf("work %q already exists", w.ID), "id")
	}
	m.byWork[w.ID] = len(m.works)
	m.works = append(m.works, w)
	return w, nil
}

// AddEdition validates e and stores it. A WorkID, when set, must name a stored work
func (m *Memory) AddEdition(e domain.Edition) error {
	if err := validate.Struct(e); err != nil {
		return err
	}
	key := isbnKey(e.ISBN)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.byISBN[key]; dup {
		return perr.WithField(perr.DuplicateKeyf("edition %q already exists", e.ISBN), "isbn")
	}
	if e.WorkID != "" {
		if _, ok := m.byWork[e.WorkID]; !ok {
			return perr.WithField(perr.InvalidArgf("edition %q references unknown work %q", e.ISBN, e.WorkID), "work_id")
		}
	}
	m.byISBN[key] = len(m.editions)
	m.editions = append(m.editions, e)
	return nil
}

// Works returns a copy of all works in catalog order
func (m *Memory) Works(_ context.Context) ([]domain.Work, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Work(nil), m.works...), nil
}

// Editions returns a copy of all editions in catalog order
func (m *Memory) Editions(_ context.Context) ([]domain.Edition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Edition(nil), m.editions...), nil
}

// Work returns the work with id or a not found error
func (m *Memory) Work(_ context.Context, id string) (domain.Work, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byWork[strings.TrimSpace(id)]
	if !ok {
		return domain.Work{}, perr.NotFoundf("work %q not found", id)
	}
	return m.works[i], nil
}

// Edition returns the edition with isbn (hyphens and spaces ignored) or a not found error
func (m *Memory) Edition(_ context.Context, isbn string) (domain.Edition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byISBN[isbnKey(isbn)]
	if !ok {
		return domain.Edition{}, perr.NotFoundf("edition %q not found", isbn)
	}
	return m.editions[i], nil
}

// at labels a record error with its position in the document, keeping code and field
func at(err error, what string, i int) error {
	wrapped := perr.Wrapf(err, perr.CodeOf(err), "%s #%d", what, i)
	if e, ok := perr.As(err); ok && e.Field() != "" {
		wrapped = perr.WithField(wrapped, e.Field())
	}
	return perr.WithOp(wrapped, "catalog.load")
}

func isbnKey(s string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(s))
}
