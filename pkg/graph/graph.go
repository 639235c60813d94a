package graph

// Package represents an installed Homebrew package with its metadata.
// Instances are constructed by the enumeration layer (pkg/brew) and are
// treated as immutable inputs by ordering and analysis.
type Package struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Tap          string   `json:"tap,omitempty"` // empty for homebrew/core
	IsCask       bool     `json:"is_cask"`
	Dependencies []string `json:"dependencies"` // direct dependency names, in brew's order
	Pinned       bool     `json:"pinned"`
}

// Graph indexes packages by name for dependency lookups.
// Edges are the Dependencies field interpreted as "requires first".
type Graph struct {
	byName map[string]Package
	order  []string // input order, for deterministic iteration
}

// Build constructs a Graph from a flat package list.
// Duplicate names overwrite (last wins); callers are expected to supply
// names unique within one listing, so this is defined rather than erroneous
// behavior. Dependency names without a matching package are kept as dangling
// edges and never expanded.
func Build(pkgs []Package) *Graph {
	g := &Graph{byName: make(map[string]Package, len(pkgs))}
	for _, p := range pkgs {
		if _, seen := g.byName[p.Name]; !seen {
			g.order = append(g.order, p.Name)
		}
		g.byName[p.Name] = p
	}
	return g
}

// Lookup returns the package with the given name.
// A miss is a normal outcome for dependency names outside the input set.
func (g *Graph) Lookup(name string) (Package, bool) {
	p, ok := g.byName[name]
	return p, ok
}

// Len returns the number of distinct packages in the graph.
func (g *Graph) Len() int { return len(g.byName) }

// Names returns package names in first-seen input order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}
