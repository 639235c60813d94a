// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about package analysis, migration runs, and brew calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMigrationHooks(&myMigrationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Migration().OnInstallStart(ctx, runID, name)
//	// ... install package ...
//	observability.Migration().OnInstallComplete(ctx, runID, name, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Analysis Hooks
// =============================================================================

// AnalysisHooks receives events from package enumeration and classification.
type AnalysisHooks interface {
	// Enumeration events
	OnEnumerateStart(ctx context.Context, detailed bool)
	OnEnumerateComplete(ctx context.Context, packageCount int, duration time.Duration, err error)

	// Classification events
	OnClassifyComplete(ctx context.Context, safe, risky, keep int)
}

// =============================================================================
// Migration Hooks
// =============================================================================

// MigrationHooks receives events from migration runs.
type MigrationHooks interface {
	// Run events
	OnRunStart(ctx context.Context, runID string, packageCount int)
	OnRunComplete(ctx context.Context, runID string, succeeded, failed, skipped int, duration time.Duration)

	// Per-package install events
	OnInstallStart(ctx context.Context, runID, name string)
	OnInstallComplete(ctx context.Context, runID, name string, duration time.Duration, err error)
}

// =============================================================================
// Brew Hooks
// =============================================================================

// BrewHooks receives events from brew command invocations.
type BrewHooks interface {
	// OnCommand records a brew invocation.
	OnCommand(ctx context.Context, args []string, duration time.Duration, err error)

	// OnCacheHit records a tap lookup served from cache.
	OnCacheHit(ctx context.Context, name string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnEnumerateStart(context.Context, bool)                          {}
func (NoopAnalysisHooks) OnEnumerateComplete(context.Context, int, time.Duration, error)  {}
func (NoopAnalysisHooks) OnClassifyComplete(context.Context, int, int, int)               {}

// NoopMigrationHooks is a no-op implementation of MigrationHooks.
type NoopMigrationHooks struct{}

func (NoopMigrationHooks) OnRunStart(context.Context, string, int)                           {}
func (NoopMigrationHooks) OnRunComplete(context.Context, string, int, int, int, time.Duration) {
}
func (NoopMigrationHooks) OnInstallStart(context.Context, string, string)                          {}
func (NoopMigrationHooks) OnInstallComplete(context.Context, string, string, time.Duration, error) {}

// NoopBrewHooks is a no-op implementation of BrewHooks.
type NoopBrewHooks struct{}

func (NoopBrewHooks) OnCommand(context.Context, []string, time.Duration, error) {}
func (NoopBrewHooks) OnCacheHit(context.Context, string)                        {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	analysisHooks  AnalysisHooks  = NoopAnalysisHooks{}
	migrationHooks MigrationHooks = NoopMigrationHooks{}
	brewHooks      BrewHooks      = NoopBrewHooks{}
	hooksMu        sync.RWMutex
)

// SetAnalysisHooks registers custom analysis hooks.
// This should be called once at application startup before any analysis.
func SetAnalysisHooks(h AnalysisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		analysisHooks = h
	}
}

// SetMigrationHooks registers custom migration hooks.
// This should be called once at application startup before any migration.
func SetMigrationHooks(h MigrationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		migrationHooks = h
	}
}

// SetBrewHooks registers custom brew hooks.
// This should be called once at application startup before any brew calls.
func SetBrewHooks(h BrewHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		brewHooks = h
	}
}

// Analysis returns the registered analysis hooks.
func Analysis() AnalysisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return analysisHooks
}

// Migration returns the registered migration hooks.
func Migration() MigrationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return migrationHooks
}

// Brew returns the registered brew hooks.
func Brew() BrewHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return brewHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	analysisHooks = NoopAnalysisHooks{}
	migrationHooks = NoopMigrationHooks{}
	brewHooks = NoopBrewHooks{}
}
