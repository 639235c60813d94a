package graph

// Order returns the packages sequenced so that every resolvable dependency
// appears strictly before its dependents. The input slice is not modified.
//
// The traversal is depth-first post-order: for each package in input order,
// its dependencies are emitted (recursively) before the package itself.
// Dependency names that do not resolve to a package in the input are skipped.
// Cycles are broken by the visited set: the first package encountered on a
// cyclic path keeps its position and the back edge is ignored, so a
// malformed cycle never aborts a migration.
//
// The result is always a permutation of the input (assuming unique names),
// and is reproducible for a given input order.
func Order(pkgs []Package) []Package {
	g := Build(pkgs)
	visited := make(map[string]bool, len(pkgs))
	result := make([]Package, 0, len(pkgs))

	for _, p := range pkgs {
		result = visit(p.Name, g, visited, result)
	}
	return result
}

// visit appends name's unvisited dependency closure to result in post-order.
// The visited set and accumulator are passed explicitly so traversal state
// never leaks between calls.
func visit(name string, g *Graph, visited map[string]bool, result []Package) []Package {
	if visited[name] {
		return result
	}
	visited[name] = true

	pkg, ok := g.Lookup(name)
	if !ok {
		// Dangling dependency: satisfied outside the migrated set.
		return result
	}
	for _, dep := range pkg.Dependencies {
		result = visit(dep, g, visited, result)
	}
	return append(result, pkg)
}
