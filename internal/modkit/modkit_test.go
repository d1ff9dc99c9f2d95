package modkit

import (
	"errors"
	"testing"
)

type stub struct {
	name  string
	ports any
}

func (s *stub) Ports() any   { return s.ports }
func (s *stub) Name() string { return s.name }

var _ Module = (*stub)(nil)

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, opts ...Option) (Module, error) {
		built := Build(opts...)
		if built.Name == "" {
			return nil, errors.New("name required")
		}
		return &stub{name: built.Name, ports: built.Ports}, nil
	}

	m, err := b(Deps{}, WithName("catalog"), WithPorts("ok"))
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	if m.Name() != "catalog" || m.Ports() != "ok" {
		t.Fatalf("unexpected module: name=%q ports=%v", m.Name(), m.Ports())
	}

	if _, err := b(Deps{}); err == nil {
		t.Fatal("expected builder error without a name")
	}
}
