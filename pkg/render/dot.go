// Package render produces visual representations of the dependency graph.
package render

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/zerobrew/zb-migrate/pkg/analysis"
	"github.com/zerobrew/zb-migrate/pkg/graph"
)

// ToDOT returns a Graphviz DOT representation of the dependency graph,
// with nodes colored by migration verdict.
//
// Node fill colors:
//   - safe: pale green
//   - risky: pale yellow
//   - keep-in-homebrew: pale red
//
// Edges point from a package to its dependencies. Dependencies that are
// not installed get no node and no edge. Output is deterministic: nodes
// and edges are emitted in name order.
func ToDOT(pkgs []graph.Package, verdicts map[string]analysis.Verdict) string {
	sorted := make([]graph.Package, len(pkgs))
	copy(sorted, pkgs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	installed := make(map[string]bool, len(sorted))
	for _, p := range sorted {
		installed[p.Name] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph packages {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\"];\n\n")

	for _, p := range sorted {
		fmt.Fprintf(&buf, "  %q [fillcolor=%q];\n", p.Name, fillColor(verdicts[p.Name]))
	}
	buf.WriteString("\n")
	for _, p := range sorted {
		deps := make([]string, 0, len(p.Dependencies))
		deps = append(deps, p.Dependencies...)
		sort.Strings(deps)
		for _, dep := range deps {
			if !installed[dep] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.Name, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fillColor(v analysis.Verdict) string {
	switch v {
	case analysis.VerdictRisky:
		return "#fff3bf"
	case analysis.VerdictKeep:
		return "#ffc9c9"
	default:
		return "#d3f9d8"
	}
}

// RenderSVG renders the dependency graph as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz
// to render it. The returned bytes are a complete SVG document suitable
// for saving to a file.
func RenderSVG(ctx context.Context, pkgs []graph.Package, verdicts map[string]analysis.Verdict) ([]byte, error) {
	dot := ToDOT(pkgs, verdicts)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
