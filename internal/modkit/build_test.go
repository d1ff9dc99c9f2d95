package modkit

import "testing"

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()
	b := Build()
	if b.Name != "" || b.Ports != nil {
		t.Fatalf("zero Build should be empty, got %+v", b)
	}
}

func TestBuild_LastOptionWins(t *testing.T) {
	t.Parallel()

	type ports struct{ N int }
	b := Build(
		WithName("first"),
		WithPorts(ports{N: 1}),
		nil, // ignored
		WithName("catalog"),
		WithPorts(ports{N: 2}),
	)
	if b.Name != "catalog" {
		t.Fatalf("name = %q, want catalog", b.Name)
	}
	p, ok := b.Ports.(ports)
	if !ok || p.N != 2 {
		t.Fatalf("ports = %#v, want ports{N:2}", b.Ports)
	}
}
