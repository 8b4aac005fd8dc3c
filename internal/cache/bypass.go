// Package cache carries the cache-bypass contract between the data layer and
// the delivery layer. The data layer never caches anything itself; it only
// signals, per call, that the response it produced must not be cached by
// whatever sits above it.
package cache

import (
	"context"
	"sync"
)

// Control is the "do not cache this response" directive. Every data-access
// call invokes NoStore before running its query.
type Control interface {
	NoStore(ctx context.Context)
}

// ControlFunc adapts a plain function to a Control.
type ControlFunc func(ctx context.Context)

func (f ControlFunc) NoStore(ctx context.Context) { f(ctx) }

// Marker records, for one in-flight request, that its response must bypass
// caches. The HTTP layer attaches one per request and turns a set marker
// into a Cache-Control: no-store header.
type Marker struct {
	mu      sync.Mutex
	noStore bool
}

// Marked reports whether the bypass directive fired for this request.
func (m *Marker) Marked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.noStore
}

func (m *Marker) set() {
	m.mu.Lock()
	m.noStore = true
	m.mu.Unlock()
}

type markerKey struct{}

// WithMarker attaches a fresh Marker to the context and returns both.
func WithMarker(ctx context.Context) (context.Context, *Marker) {
	m := &Marker{}
	return context.WithValue(ctx, markerKey{}, m), m
}

func markerFrom(ctx context.Context) *Marker {
	m, _ := ctx.Value(markerKey{}).(*Marker)
	return m
}

// ContextControl sets the request-scoped Marker, if one is attached.
// Calls without a marker (CLI tools, workers) are a no-op.
type ContextControl struct{}

func (ContextControl) NoStore(ctx context.Context) {
	if m := markerFrom(ctx); m != nil {
		m.set()
	}
}

// Recorder counts NoStore invocations. Tests use it to assert that a
// data-access call issued the bypass directive.
type Recorder struct {
	mu    sync.Mutex
	calls int
}

func (r *Recorder) NoStore(context.Context) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

// Calls returns how many times NoStore was invoked.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
