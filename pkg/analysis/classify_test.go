package analysis

import (
	"slices"
	"testing"

	"github.com/zerobrew/zb-migrate/pkg/graph"
)

func pkg(name string, deps ...string) graph.Package {
	return graph.Package{Name: name, Version: "1.0.0", Dependencies: deps}
}

func findAnalysis(t *testing.T, bucket []PackageAnalysis, name string) PackageAnalysis {
	t.Helper()
	for _, pa := range bucket {
		if pa.Name == name {
			return pa
		}
	}
	t.Fatalf("package %q not in bucket %v", name, bucket)
	return PackageAnalysis{}
}

func TestClassifyScenario(t *testing.T) {
	// openssl is denylisted; curl depends on it directly, git only through curl.
	deny := NewDenylist("openssl")
	report := Classify([]graph.Package{
		pkg("openssl"),
		pkg("curl", "openssl"),
		pkg("git", "curl"),
	}, deny)

	if report.TotalPackages != 3 {
		t.Fatalf("TotalPackages = %d, want 3", report.TotalPackages)
	}

	keep := findAnalysis(t, report.KeepInHomebrew, "openssl")
	if keep.Risk != VerdictKeep {
		t.Errorf("openssl risk = %q, want keep", keep.Risk)
	}

	curl := findAnalysis(t, report.Risky, "curl")
	if curl.Match != MatchDirect {
		t.Errorf("curl match = %q, want direct", curl.Match)
	}
	if !slices.Equal(curl.ProblematicDependencies, []string{"openssl"}) {
		t.Errorf("curl problematic deps = %v", curl.ProblematicDependencies)
	}

	git := findAnalysis(t, report.Risky, "git")
	if git.Match != MatchTransitive {
		t.Errorf("git match = %q, want transitive", git.Match)
	}
	if !slices.Equal(git.ProblematicDependencies, []string{"openssl"}) {
		t.Errorf("git problematic deps = %v, want [openssl]", git.ProblematicDependencies)
	}
}

func TestClassifyTransitiveCitesTarget(t *testing.T) {
	// p -> q -> r with only r denylisted: p is risky citing r, not q.
	deny := NewDenylist("r")
	report := Classify([]graph.Package{
		pkg("p", "q"),
		pkg("q", "r"),
		pkg("r"),
	}, deny)

	p := findAnalysis(t, report.Risky, "p")
	if !slices.Equal(p.ProblematicDependencies, []string{"r"}) {
		t.Errorf("p problematic deps = %v, want [r]", p.ProblematicDependencies)
	}
}

func TestClassifyDenylistedNamePrecedes(t *testing.T) {
	// A denylisted package is always keep-in-homebrew, even when it also
	// depends on denylisted names. No dependency walk happens.
	deny := NewDenylist("curl", "openssl")
	report := Classify([]graph.Package{
		pkg("curl", "openssl"),
		pkg("openssl"),
	}, deny)

	if len(report.Risky) != 0 {
		t.Errorf("risky = %v, want empty", report.Risky)
	}
	if len(report.KeepInHomebrew) != 2 {
		t.Errorf("keep = %v, want both packages", report.KeepInHomebrew)
	}
}

func TestClassifyEmptyDenylist(t *testing.T) {
	report := Classify([]graph.Package{
		pkg("a", "b"),
		pkg("b", "c"),
		pkg("c", "a"), // even cyclic shapes classify safe
	}, NewDenylist())

	if len(report.SafeToMigrate) != 3 {
		t.Errorf("safe = %d, want 3", len(report.SafeToMigrate))
	}
	if len(report.Risky) != 0 || len(report.KeepInHomebrew) != 0 {
		t.Errorf("unexpected non-safe verdicts: %+v", report)
	}
}

func TestClassifyPartitions(t *testing.T) {
	deny := NewDenylist("zlib")
	in := []graph.Package{
		pkg("zlib"),
		pkg("libpng", "zlib"),
		pkg("jq", "oniguruma"),
		pkg("oniguruma"),
		pkg("imagemagick", "libpng"),
	}
	report := Classify(in, deny)

	verdicts := report.Verdicts()
	if len(verdicts) != len(in) {
		t.Fatalf("verdict count = %d, want %d", len(verdicts), len(in))
	}
	for _, p := range in {
		if _, ok := verdicts[p.Name]; !ok {
			t.Errorf("package %q missing from report", p.Name)
		}
	}
	if sum := len(report.SafeToMigrate) + len(report.Risky) + len(report.KeepInHomebrew); sum != report.TotalPackages {
		t.Errorf("bucket sum %d != total %d", sum, report.TotalPackages)
	}
}

func TestClassifyCyclicDependencies(t *testing.T) {
	// The per-package visited set must terminate the walk on cycles.
	deny := NewDenylist("ncurses")
	report := Classify([]graph.Package{
		pkg("a", "b"),
		pkg("b", "a", "ncurses"),
		pkg("ncurses"),
	}, deny)

	a := findAnalysis(t, report.Risky, "a")
	if a.Match != MatchTransitive {
		t.Errorf("a match = %q, want transitive", a.Match)
	}
	b := findAnalysis(t, report.Risky, "b")
	if b.Match != MatchDirect {
		t.Errorf("b match = %q, want direct", b.Match)
	}
}

func TestClassifyDeduplicatesMatches(t *testing.T) {
	// openssl is reachable twice; it must be cited once, in discovery order.
	deny := NewDenylist("openssl", "zlib")
	report := Classify([]graph.Package{
		pkg("app", "liba", "libb"),
		pkg("liba", "openssl", "zlib"),
		pkg("libb", "openssl"),
		pkg("openssl"),
		pkg("zlib"),
	}, deny)

	app := findAnalysis(t, report.Risky, "app")
	if !slices.Equal(app.ProblematicDependencies, []string{"openssl", "zlib"}) {
		t.Errorf("app problematic deps = %v, want [openssl zlib]", app.ProblematicDependencies)
	}
}

func TestClassifyBucketsSortedByName(t *testing.T) {
	report := Classify([]graph.Package{
		pkg("zsh"),
		pkg("bat"),
		pkg("fd"),
	}, NewDenylist())

	got := make([]string, len(report.SafeToMigrate))
	for i, pa := range report.SafeToMigrate {
		got[i] = pa.Name
	}
	if !slices.IsSorted(got) {
		t.Errorf("safe bucket not sorted: %v", got)
	}
}
