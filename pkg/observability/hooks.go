// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of scans and fixes without
// adding hard dependencies on specific observability backends. Consumers
// register hooks at startup; libraries emit events through them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScanHooks(&myScanHooks{})
//	    observability.SetFixHooks(&myFixHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnScanStart(ctx, root)
//	// ... scan packages ...
//	observability.Scan().OnScanComplete(ctx, root, packages, findings, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from the workspace scanner.
type ScanHooks interface {
	OnScanStart(ctx context.Context, root string)
	OnPattern(ctx context.Context, pattern string, matches int, err error)
	OnPackage(ctx context.Context, manifest string, findings int, duration time.Duration, err error)
	OnScanComplete(ctx context.Context, root string, packages, findings int, duration time.Duration, err error)
}

// =============================================================================
// Fix Hooks
// =============================================================================

// FixHooks receives events from the fixer.
type FixHooks interface {
	// OnFixPackage records one package rewrite (or would-be rewrite on dry runs).
	OnFixPackage(ctx context.Context, manifest string, changes int, dryRun bool, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(context.Context, string)                                    {}
func (NoopScanHooks) OnPattern(context.Context, string, int, error)                          {}
func (NoopScanHooks) OnPackage(context.Context, string, int, time.Duration, error)           {}
func (NoopScanHooks) OnScanComplete(context.Context, string, int, int, time.Duration, error) {}

// NoopFixHooks is a no-op implementation of FixHooks.
type NoopFixHooks struct{}

func (NoopFixHooks) OnFixPackage(context.Context, string, int, bool, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks ScanHooks = NoopScanHooks{}
	fixHooks  FixHooks  = NoopFixHooks{}
	hooksMu   sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scan.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetFixHooks registers custom fix hooks.
func SetFixHooks(h FixHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fixHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Fix returns the registered fix hooks.
func Fix() FixHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fixHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	fixHooks = NoopFixHooks{}
}
