package module

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"shelfsearch/internal/modkit"
	mmodule "shelfsearch/internal/modkit/module"
	"shelfsearch/internal/platform/config"
	perr "shelfsearch/internal/platform/errors"
	"shelfsearch/internal/platform/logger"
	"shelfsearch/internal/services/catalog/domain"
	"shelfsearch/internal/services/catalog/repo"
)

var fixturePath = filepath.Join("..", "repo", "testdata", "catalog.json")

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Format: "json", Writer: io.Discard})
	os.Exit(m.Run())
}

func deps() modkit.Deps {
	return modkit.Deps{Log: *logger.Get(), Cfg: config.New()}
}

func TestNew_FromFile(t *testing.T) {
	m, err := New(deps(), Options{Catalog: fixturePath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Name() != "catalog" {
		t.Fatalf("Name() = %q", m.Name())
	}

	search := mmodule.MustPortsOf[domain.SearchPort](m)
	got, err := search.SearchWorks(context.Background(), "dune")
	if err != nil || len(got) != 2 {
		t.Fatalf("SearchWorks = %d results, %v", len(got), err)
	}

	reader := mmodule.MustPortsOf[domain.ReaderPort](m)
	if ws, _ := reader.Works(context.Background()); len(ws) != 6 {
		t.Fatalf("reader works = %d, want 6", len(ws))
	}
}

func TestNew_InjectedReader(t *testing.T) {
	mem := repo.NewMemory()
	if _, err := mem.AddWork(domain.Work{ID: "w", Title: "Le Petit Prince", Author: "Antoine de Saint-Exupéry"}); err != nil {
		t.Fatalf("AddWork: %v", err)
	}
	m := MustNew(deps(), Options{}, modkit.WithPorts[domain.ReaderPort](mem), modkit.WithName("books"))
	if m.Name() != "books" {
		t.Fatalf("Name() = %q, want books", m.Name())
	}

	ports := m.Ports().(Ports)
	got, err := ports.Search.SearchWorks(context.Background(), "petit exupery")
	if err != nil || len(got) != 1 {
		t.Fatalf("SearchWorks = %+v, %v", got, err)
	}
}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name      string
		overrides Options
		opts      []modkit.Option
		code      perr.ErrorCode
	}{
		{"no catalog", Options{}, nil, perr.ErrorCodeInvalidArgument},
		{"missing file", Options{Catalog: filepath.Join(t.TempDir(), "none.json")}, nil, perr.ErrorCodeNotFound},
		{"bad ratio", Options{Catalog: fixturePath, PrefixRatio: 1.5}, nil, perr.ErrorCodeValidation},
		{"wrong ports", Options{}, []modkit.Option{modkit.WithPorts(42)}, perr.ErrorCodeInvalidArgument},
	}
	for _, c := range cases {
		_, err := New(deps(), c.overrides, c.opts...)
		if !perr.IsCode(err, c.code) {
			t.Fatalf("%s: code = %v (%v), want %v", c.name, perr.CodeOf(err), err, c.code)
		}
	}

	_, err := New(deps(), Options{})
	if e, ok := perr.As(err); !ok || e.Field() != "catalog" {
		t.Fatalf("missing catalog should name the field, got %v", err)
	}
}

func TestFromConfig_EnvAndOverrides(t *testing.T) {
	t.Setenv("SHELFSEARCH_CATALOG", fixturePath)
	t.Setenv("SHELFSEARCH_WORKERS", "8")
	t.Setenv("SHELFSEARCH_MAX_WINDOW_CHECKS", "25")
	t.Setenv("SHELFSEARCH_PREFIX_RATIO", "2") // out of range, falls back

	m, err := New(deps(), Options{Workers: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := m.Options()
	want := Options{Catalog: fixturePath, Workers: 3, PrefixRatio: 0.75, MaxWindowChecks: 25}
	if got != want {
		t.Fatalf("Options() = %+v, want %+v", got, want)
	}
}
