package graph

import (
	"slices"
	"testing"
)

// names extracts the Name of each package, in order.
func names(pkgs []Package) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Name
	}
	return out
}

// assertBefore fails unless a appears strictly before b in got.
func assertBefore(t *testing.T, got []string, a, b string) {
	t.Helper()
	ia := slices.Index(got, a)
	ib := slices.Index(got, b)
	if ia < 0 || ib < 0 {
		t.Fatalf("missing %q or %q in %v", a, b, got)
	}
	if ia >= ib {
		t.Errorf("%q at %d should come before %q at %d: %v", a, ia, b, ib, got)
	}
}

func TestOrderNoDependencies(t *testing.T) {
	got := Order([]Package{pkg("a"), pkg("b"), pkg("c")})
	if want := []string{"a", "b", "c"}; !slices.Equal(names(got), want) {
		t.Errorf("Order = %v, want %v", names(got), want)
	}
}

func TestOrderLinearChain(t *testing.T) {
	got := names(Order([]Package{
		pkg("c", "b"),
		pkg("b", "a"),
		pkg("a"),
	}))

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	assertBefore(t, got, "a", "b")
	assertBefore(t, got, "b", "c")
}

func TestOrderDiamond(t *testing.T) {
	got := names(Order([]Package{
		pkg("a"),
		pkg("b", "a"),
		pkg("c", "a"),
		pkg("d", "b", "c"),
	}))

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	assertBefore(t, got, "a", "b")
	assertBefore(t, got, "a", "c")
	assertBefore(t, got, "b", "d")
	assertBefore(t, got, "c", "d")

	// DFS over this input is fully deterministic.
	if want := []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrderIsPermutation(t *testing.T) {
	in := []Package{
		pkg("git", "pcre2", "gettext"),
		pkg("curl", "openssl@3"),
		pkg("pcre2"),
		pkg("openssl@3"),
		pkg("htop", "ncurses"),
	}

	got := names(Order(in))
	want := names(in)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("output is not a permutation of input: %v vs %v", got, want)
	}
}

func TestOrderDanglingDependency(t *testing.T) {
	got := names(Order([]Package{
		pkg("a"),
		pkg("b", "missing"),
	}))

	// Dangling deps are skipped, nothing is synthesized for them.
	if want := []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrderCycleFirstEncounteredWins(t *testing.T) {
	got := names(Order([]Package{
		pkg("a", "b"),
		pkg("b", "a"),
	}))

	// The visited set breaks the cycle: a is entered first, recurses into b,
	// b's back edge to a is ignored, so b lands before a.
	if want := []string{"b", "a"}; !slices.Equal(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrderEmpty(t *testing.T) {
	if got := Order(nil); len(got) != 0 {
		t.Errorf("Order(nil) = %v, want empty", got)
	}
}

func TestOrderDeterministic(t *testing.T) {
	in := []Package{
		pkg("d", "b", "c"),
		pkg("c", "a"),
		pkg("b", "a"),
		pkg("a"),
	}

	first := names(Order(in))
	for range 5 {
		if got := names(Order(in)); !slices.Equal(got, first) {
			t.Fatalf("non-deterministic ordering: %v vs %v", got, first)
		}
	}
}
