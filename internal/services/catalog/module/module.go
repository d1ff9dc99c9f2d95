// Package module implements the catalog module
package module

import (
	"shelfsearch/internal/core/fuzzy"
	"shelfsearch/internal/modkit"
	perr "shelfsearch/internal/platform/errors"
	"shelfsearch/internal/services/catalog/domain"
	"shelfsearch/internal/services/catalog/repo"
	"shelfsearch/internal/services/catalog/service"
)

// Ports exposed by the catalog module
type Ports struct {
	Reader domain.ReaderPort
	Search domain.SearchPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	name  string
	opts  Options
	ports Ports
}

var _ modkit.Module = (*Module)(nil)

// New constructs the catalog module. The reader comes from WithPorts(domain.ReaderPort)
// when given, otherwise the catalog file named by the merged options is loaded
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("catalog"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg).merge(overrides)

	m, err := fuzzy.New(cfg.matcher())
	if err != nil {
		return nil, err
	}

	var reader domain.ReaderPort
	switch p := b.Ports.(type) {
	case domain.ReaderPort:
		reader = p
	case nil:
		if cfg.Catalog == "" {
			return nil, perr.WithField(perr.InvalidArgf("no catalog configured"), "catalog")
		}
		mem, err := repo.LoadFile(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		reader = mem
		deps.Log.Debug().Str("catalog", cfg.Catalog).Msg("catalog loaded")
	default:
		return nil, perr.InvalidArgf("catalog module: expected WithPorts(domain.ReaderPort), got %T", b.Ports)
	}

	return &Module{
		deps: deps,
		name: b.Name,
		opts: cfg,
		ports: Ports{
			Reader: reader,
			Search: service.New(reader, m, service.Config{Workers: cfg.Workers}),
		},
	}, nil
}

// MustNew is New that panics on error
func MustNew(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	m, err := New(deps, overrides, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Options returns the settings the module was built with
func (m *Module) Options() Options { return m.opts }
