package strings

import "testing"

func TestIsBlank(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", " ", "\t\n "} {
		if !IsBlank(s) {
			t.Fatalf("%q should be blank", s)
		}
	}
	if IsBlank(" a ") {
		t.Fatalf("non-blank input reported blank")
	}
}

func TestJoinNonEmpty(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"", "  "}, ""},
		{[]string{"L'Étranger", "Albert Camus"}, "L'Étranger Albert Camus"},
		{[]string{" Dune ", "", "Frank Herbert", " "}, "Dune Frank Herbert"},
	}
	for _, c := range cases {
		if got := JoinNonEmpty(c.in...); got != c.want {
			t.Fatalf("JoinNonEmpty(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
