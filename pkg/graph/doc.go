// Package graph models the installed-package dependency graph that drives
// migration ordering and risk analysis.
//
// # Overview
//
// A [Package] describes one installed Homebrew formula or cask: its name,
// version, tap, direct dependency names, and pin state. A [Graph] is a
// name-indexed view over a flat package list, built once per run with [Build].
//
// Dependency names are allowed to dangle: a package may depend on a name that
// is not part of the input set (for example a dependency that is already
// provided by the target system). Lookups for such names simply miss, and
// traversals skip them.
//
// # Ordering
//
// [Order] produces a dependency-respecting install sequence via depth-first
// post-order traversal: every resolvable dependency of a package appears
// strictly before the package itself. The traversal carries its visited set
// and accumulator explicitly, so repeated calls are independent and the
// output is deterministic for a given input order.
//
// # Concurrency
//
// All operations are synchronous, in-memory, and free of I/O. A Graph is
// immutable after Build and safe for concurrent reads; traversal state is
// local to each call.
package graph
