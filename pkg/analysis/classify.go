package analysis

import (
	"fmt"
	"sort"

	"github.com/zerobrew/zb-migrate/pkg/graph"
)

// Verdict is the migration-risk classification of one package.
type Verdict string

const (
	// VerdictSafe marks packages with no known problematic dependencies.
	VerdictSafe Verdict = "safe"
	// VerdictRisky marks packages that depend on problematic packages.
	VerdictRisky Verdict = "risky"
	// VerdictKeep marks packages that are problematic themselves and should
	// remain in Homebrew.
	VerdictKeep Verdict = "keep-in-homebrew"
)

// Match distinguishes how a risky package reaches a problematic dependency.
type Match string

const (
	// MatchDirect means a problematic name appears in the package's own
	// dependency list.
	MatchDirect Match = "direct"
	// MatchTransitive means a problematic name is only reachable through
	// intermediate dependencies.
	MatchTransitive Match = "transitive"
)

// PackageAnalysis is the per-package classification result.
type PackageAnalysis struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Risk    Verdict `json:"risk"`
	Reason  string  `json:"reason"`
	// ProblematicDependencies lists matched denylisted dependency names in
	// first-discovered order, deduplicated. Empty for Safe and Keep verdicts.
	ProblematicDependencies []string `json:"problematic_dependencies,omitempty"`
	// Match records whether the problematic dependencies were direct or
	// transitive. Empty unless Risk is VerdictRisky.
	Match Match `json:"match,omitempty"`
}

// Classify buckets every package by migration risk against the denylist.
//
// A package whose own name is denylisted is always VerdictKeep, regardless
// of its dependencies. Otherwise its direct dependency list is checked
// first; only when that is clean does the classifier walk the transitive
// closure (bounded by a per-package visited set, so cycles terminate and
// each name is inspected at most once per package).
//
// The three buckets of the returned report are sorted by package name.
// Classification has no I/O and cannot fail.
func Classify(pkgs []graph.Package, deny Denylist) *Report {
	g := graph.Build(pkgs)

	var safe, risky, keep []PackageAnalysis
	for _, pkg := range pkgs {
		pa := classifyOne(pkg, g, deny)
		switch pa.Risk {
		case VerdictKeep:
			keep = append(keep, pa)
		case VerdictRisky:
			risky = append(risky, pa)
		default:
			safe = append(safe, pa)
		}
	}

	for _, bucket := range [][]PackageAnalysis{safe, risky, keep} {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Name < bucket[j].Name })
	}

	report, err := NewReport(len(pkgs), safe, risky, keep)
	if err != nil {
		// Unreachable: every input lands in exactly one bucket above.
		panic(err)
	}
	return report
}

func classifyOne(pkg graph.Package, g *graph.Graph, deny Denylist) PackageAnalysis {
	if deny.Contains(pkg.Name) {
		return PackageAnalysis{
			Name:    pkg.Name,
			Version: pkg.Version,
			Risk:    VerdictKeep,
			Reason:  Rationale(pkg.Name),
		}
	}

	if direct := directMatches(pkg, deny); len(direct) > 0 {
		return PackageAnalysis{
			Name:                    pkg.Name,
			Version:                 pkg.Version,
			Risk:                    VerdictRisky,
			Reason:                  riskReason(len(direct), MatchDirect),
			ProblematicDependencies: direct,
			Match:                   MatchDirect,
		}
	}

	if transitive := transitiveMatches(pkg, g, deny); len(transitive) > 0 {
		return PackageAnalysis{
			Name:                    pkg.Name,
			Version:                 pkg.Version,
			Risk:                    VerdictRisky,
			Reason:                  riskReason(len(transitive), MatchTransitive),
			ProblematicDependencies: transitive,
			Match:                   MatchTransitive,
		}
	}

	return PackageAnalysis{
		Name:    pkg.Name,
		Version: pkg.Version,
		Risk:    VerdictSafe,
		Reason:  "No known problematic dependencies",
	}
}

// directMatches returns pkg's direct dependency names that are denylisted,
// preserving dependency-list order.
func directMatches(pkg graph.Package, deny Denylist) []string {
	var found []string
	for _, dep := range pkg.Dependencies {
		if deny.Contains(dep) {
			found = append(found, dep)
		}
	}
	return found
}

// transitiveMatches walks pkg's transitive dependency closure and collects
// denylisted names in first-discovered order. The visited set is owned by
// this call and discarded afterwards; it guarantees termination on cyclic
// data and at most one inspection per name.
func transitiveMatches(pkg graph.Package, g *graph.Graph, deny Denylist) []string {
	visited := make(map[string]bool)
	return walkDeps(pkg, g, deny, visited, nil)
}

func walkDeps(pkg graph.Package, g *graph.Graph, deny Denylist, visited map[string]bool, found []string) []string {
	for _, dep := range pkg.Dependencies {
		if visited[dep] {
			continue
		}
		visited[dep] = true

		if deny.Contains(dep) {
			found = append(found, dep)
		}
		if next, ok := g.Lookup(dep); ok {
			found = walkDeps(next, g, deny, visited, found)
		}
	}
	return found
}

func riskReason(count int, match Match) string {
	if match == MatchDirect {
		return fmt.Sprintf("Depends on %d problematic package(s)", count)
	}
	return fmt.Sprintf("Has transitive dependency on %d problematic package(s)", count)
}
