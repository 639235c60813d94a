// Package analysis classifies installed packages by migration risk.
//
// Migration moves a package's bookkeeping from Homebrew to Zerobrew. Some
// packages are unsafe to move automatically because other software links
// against them at the system level; the [Denylist] names those packages
// together with a human-readable rationale.
//
// [Classify] buckets every package into one of three verdicts:
//
//   - [VerdictSafe]: no reachable problematic dependency
//   - [VerdictRisky]: depends (directly or transitively) on a denylisted name
//   - [VerdictKeep]: the package itself is denylisted and should stay put
//
// The denylist is an explicit input rather than a process-wide constant, so
// policy can be extended through configuration and substituted in tests.
// Classification is a pure in-memory computation with no failure modes of
// its own.
package analysis
