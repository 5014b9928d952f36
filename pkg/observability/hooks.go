// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about open-state changes, cascades, snapshot persistence,
// and artifact cache operations.
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
//	    observability.SetStateHooks(&myStateHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.State().OnCascadeStart(nodeID)
//	// ... close descendants ...
//	observability.State().OnCascadeComplete(nodeID, closed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// State Hooks
// =============================================================================

// StateHooks receives events from the floating-tree coordinator.
type StateHooks interface {
	// OnOpenChanged records a node's open flag changing through the
	// coordinator's state entry point.
	OnOpenChanged(nodeID string, open bool)

	// OnCascadeStart records the start of a cascading close triggered by
	// nodeID transitioning to closed.
	OnCascadeStart(nodeID string)

	// OnCascadeComplete records the end of a cascade and how many
	// descendants it forced closed.
	OnCascadeComplete(nodeID string, closed int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from snapshot store operations.
type StoreHooks interface {
	// OnSave records a snapshot write.
	OnSave(ctx context.Context, backend, id string, nodeCount int, duration time.Duration, err error)

	// OnLoad records a snapshot read.
	OnLoad(ctx context.Context, backend, id string, duration time.Duration, err error)

	// OnDelete records a snapshot removal.
	OnDelete(ctx context.Context, backend, id string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from artifact cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStateHooks is a no-op implementation of StateHooks.
type NoopStateHooks struct{}

func (NoopStateHooks) OnOpenChanged(string, bool)    {}
func (NoopStateHooks) OnCascadeStart(string)         {}
func (NoopStateHooks) OnCascadeComplete(string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnLoad(context.Context, string, string, time.Duration, error)      {}
func (NoopStoreHooks) OnDelete(context.Context, string, string, error)                   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	stateHooks StateHooks = NoopStateHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetStateHooks registers custom coordinator hooks.
// This should be called once at application startup before any state operations.
func SetStateHooks(h StateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stateHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// State returns the registered coordinator hooks.
func State() StateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stateHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stateHooks = NoopStateHooks{}
	storeHooks = NoopStoreHooks{}
	cacheHooks = NoopCacheHooks{}
}
