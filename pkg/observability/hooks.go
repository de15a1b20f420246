// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about update dispatch and outbound HTTP calls.
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
//	    observability.SetDispatchHooks(&myDispatchHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dispatch().OnFetch(ctx, mode, n, time.Since(start), err)
//
// # Prometheus
//
// [Metrics] implements both hook interfaces on top of Prometheus collectors.
// Combine it with other hooks using [MultiDispatchHooks] and [MultiHTTPHooks].
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dispatch Hooks
// =============================================================================

// DispatchHooks receives events from the update dispatcher.
type DispatchHooks interface {
	// OnUpdate records an inbound update and the kind it was classified as
	// ("inline_query", "command", "ignored").
	OnUpdate(ctx context.Context, kind string)

	// OnFetch records a completed registry fetch.
	OnFetch(ctx context.Context, mode string, count int, duration time.Duration, err error)

	// OnAnswer records a completed reply to the platform.
	OnAnswer(ctx context.Context, kind string, count int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDispatchHooks is a no-op implementation of DispatchHooks.
type NoopDispatchHooks struct{}

func (NoopDispatchHooks) OnUpdate(context.Context, string)                            {}
func (NoopDispatchHooks) OnFetch(context.Context, string, int, time.Duration, error)  {}
func (NoopDispatchHooks) OnAnswer(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Fan-out
// =============================================================================

// MultiDispatchHooks forwards every event to each of its hooks in order.
type MultiDispatchHooks []DispatchHooks

func (m MultiDispatchHooks) OnUpdate(ctx context.Context, kind string) {
	for _, h := range m {
		h.OnUpdate(ctx, kind)
	}
}

func (m MultiDispatchHooks) OnFetch(ctx context.Context, mode string, count int, d time.Duration, err error) {
	for _, h := range m {
		h.OnFetch(ctx, mode, count, d, err)
	}
}

func (m MultiDispatchHooks) OnAnswer(ctx context.Context, kind string, count int, d time.Duration, err error) {
	for _, h := range m {
		h.OnAnswer(ctx, kind, count, d, err)
	}
}

// MultiHTTPHooks forwards every event to each of its hooks in order.
type MultiHTTPHooks []HTTPHooks

func (m MultiHTTPHooks) OnRequest(ctx context.Context, method, host, path string) {
	for _, h := range m {
		h.OnRequest(ctx, method, host, path)
	}
}

func (m MultiHTTPHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	for _, h := range m {
		h.OnResponse(ctx, method, host, path, status, d)
	}
}

func (m MultiHTTPHooks) OnError(ctx context.Context, method, host, path string, err error) {
	for _, h := range m {
		h.OnError(ctx, method, host, path, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dispatchHooks DispatchHooks = NoopDispatchHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetDispatchHooks registers custom dispatch hooks.
// This should be called once at application startup before any updates are handled.
func SetDispatchHooks(h DispatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dispatchHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Dispatch returns the registered dispatch hooks.
func Dispatch() DispatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dispatchHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dispatchHooks = NoopDispatchHooks{}
	httpHooks = NoopHTTPHooks{}
}
