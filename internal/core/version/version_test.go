package version

import (
	"testing"

	kit "shelfsearch/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	got := Info()
	if got.Service != "shelfsearch" || got.Version != "dev" || got.Commit != "none" || got.Date != "unknown" {
		t.Fatalf("Info() = %+v", got)
	}
}

func TestInfo_LinkerValues(t *testing.T) {
	kit.Swap(t, &version, "v1.2.3")
	kit.Swap(t, &commit, "abc123")

	got := Info()
	if got.Version != "v1.2.3" || got.Commit != "abc123" {
		t.Fatalf("Info() = %+v", got)
	}
	if s := got.String(); s != "shelfsearch v1.2.3 (abc123, unknown)" {
		t.Fatalf("String() = %q", s)
	}
}
