// Package observability provides hooks for instrumenting the snarl
// decomposition core without adding hard dependencies on any specific
// metrics or tracing backend.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFinderHooks(&myFinderHooks{})
//	    observability.SetManagerHooks(&myManagerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Finder().OnSnarlBegin(ctx, start)
//	// ... classify ...
//	observability.Finder().OnSnarlClassified(ctx, start, end, kind, duration)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/tgorski/snarltree/pkg/handle"
	"github.com/tgorski/snarltree/pkg/snarl"
)

// =============================================================================
// Finder Hooks
// =============================================================================

// FinderHooks receives events from a [pkg/snarl/finder] driver walk.
type FinderHooks interface {
	// OnChainBegin records a chain opening during the walk.
	OnChainBegin(ctx context.Context, start handle.Handle)

	// OnSnarlBegin records a snarl opening during the walk.
	OnSnarlBegin(ctx context.Context, start handle.Handle)

	// OnSnarlClassified records a snarl's boundary closing and its
	// resulting classification.
	OnSnarlClassified(ctx context.Context, start, end handle.Handle, kind snarl.Kind, duration time.Duration)

	// OnDriveComplete records a full driver run completing, successfully
	// or not.
	OnDriveComplete(ctx context.Context, snarlCount int, duration time.Duration, err error)
}

// =============================================================================
// Manager Hooks
// =============================================================================

// ManagerHooks receives events from a [pkg/snarl/manager.Manager]'s
// indexing passes.
type ManagerHooks interface {
	// OnFinishStart records the start of a Finish call.
	OnFinishStart(ctx context.Context, snarlCount int)

	// OnFinishComplete records a Finish call completing, successfully or
	// not.
	OnFinishComplete(ctx context.Context, snarlCount, chainCount int, duration time.Duration, err error)

	// OnSample records a DiscreteUniformSample draw.
	OnSample(ctx context.Context, ok bool)
}

// =============================================================================
// Net-graph Hooks
// =============================================================================

// NetGraphHooks receives events from [pkg/snarl/netgraph] construction.
type NetGraphHooks interface {
	// OnBuild records a net graph built over rec's children.
	OnBuild(ctx context.Context, start, end handle.Handle, childCount int, useInternalConnectivity bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFinderHooks is a no-op implementation of FinderHooks.
type NoopFinderHooks struct{}

func (NoopFinderHooks) OnChainBegin(context.Context, handle.Handle) {}
func (NoopFinderHooks) OnSnarlBegin(context.Context, handle.Handle) {}
func (NoopFinderHooks) OnSnarlClassified(context.Context, handle.Handle, handle.Handle, snarl.Kind, time.Duration) {
}
func (NoopFinderHooks) OnDriveComplete(context.Context, int, time.Duration, error) {}

// NoopManagerHooks is a no-op implementation of ManagerHooks.
type NoopManagerHooks struct{}

func (NoopManagerHooks) OnFinishStart(context.Context, int) {}
func (NoopManagerHooks) OnFinishComplete(context.Context, int, int, time.Duration, error) {}
func (NoopManagerHooks) OnSample(context.Context, bool)                                  {}

// NoopNetGraphHooks is a no-op implementation of NetGraphHooks.
type NoopNetGraphHooks struct{}

func (NoopNetGraphHooks) OnBuild(context.Context, handle.Handle, handle.Handle, int, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	finderHooks   FinderHooks   = NoopFinderHooks{}
	managerHooks  ManagerHooks  = NoopManagerHooks{}
	netGraphHooks NetGraphHooks = NoopNetGraphHooks{}
	hooksMu       sync.RWMutex
)

// SetFinderHooks registers custom finder-driver hooks.
// This should be called once at application startup before any decomposition runs.
func SetFinderHooks(h FinderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		finderHooks = h
	}
}

// SetManagerHooks registers custom manager hooks.
// This should be called once at application startup before any Finish calls.
func SetManagerHooks(h ManagerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		managerHooks = h
	}
}

// SetNetGraphHooks registers custom net-graph hooks.
func SetNetGraphHooks(h NetGraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		netGraphHooks = h
	}
}

// Finder returns the registered finder-driver hooks.
func Finder() FinderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return finderHooks
}

// Manager returns the registered manager hooks.
func Manager() ManagerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return managerHooks
}

// NetGraph returns the registered net-graph hooks.
func NetGraph() NetGraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return netGraphHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	finderHooks = NoopFinderHooks{}
	managerHooks = NoopManagerHooks{}
	netGraphHooks = NoopNetGraphHooks{}
}
