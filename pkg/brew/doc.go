// Package brew enumerates installed packages by shelling out to Homebrew.
//
// The [Client] wraps the brew executable behind an injectable [Runner], so
// unit tests exercise the output parsing without spawning processes. Fast
// listings ([Client.Formulae], [Client.Casks]) use one brew invocation plus
// a pinned-package lookup; detailed listings additionally resolve each
// formula's dependency list and tap, with tap lookups cached on disk
// (taps change rarely and `brew info --json=v2` is the slow path).
//
// All methods take a context and honor cancellation between invocations.
package brew
