// Package embed models the host-runtime boundary that owns native object
// lifetimes. The real interpreter is out of scope; Runtime is the seam and
// FakeRuntime the in-memory stand-in used by tests and the conformance suite.
package embed

import (
	"fmt"
	"sync"
)

// Header is the runtime-allocated object header attached to every native
// object. Opaque outside this package.
type Header struct {
	id uint64
}

// Runtime allocates and tracks object headers. Initialize and Finalize
// bracket the lifetime of the whole runtime, not of individual objects.
type Runtime interface {
	Initialize()
	// Finalize shuts the runtime down. Outstanding headers are a leak and
	// make Finalize fail.
	Finalize() error
	AllocHeader() *Header
	FreeHeader(h *Header)
	// Live returns the number of headers allocated but not yet freed
	Live() int
}

// FakeRuntime is an in-memory Runtime that counts live allocations, so leak
// checks reduce to comparing Live() before and after.
type FakeRuntime struct {
	mu          sync.Mutex
	initialized bool
	nextID      uint64
	live        map[uint64]bool
}

// NewFakeRuntime creates a fake runtime in the uninitialized state
func NewFakeRuntime() *FakeRuntime {
	return &FakeRuntime{live: make(map[uint64]bool)}
}

// Initialize marks the runtime usable
func (rt *FakeRuntime) Initialize() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.initialized = true
}

// Finalize shuts the runtime down, failing if any header is still live
func (rt *FakeRuntime) Finalize() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.initialized {
		return fmt.Errorf("finalize: runtime not initialized")
	}
	rt.initialized = false
	if n := len(rt.live); n > 0 {
		return fmt.Errorf("finalize: %d object header(s) leaked", n)
	}
	return nil
}

// Initialized reports whether the runtime is between Initialize and Finalize
func (rt *FakeRuntime) Initialized() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.initialized
}

// AllocHeader hands out a tracked header
func (rt *FakeRuntime) AllocHeader() *Header {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.nextID++
	rt.live[rt.nextID] = true
	return &Header{id: rt.nextID}
}

// FreeHeader returns a header to the runtime. Unknown headers are ignored;
// the leak accounting only shrinks for headers it handed out.
func (rt *FakeRuntime) FreeHeader(h *Header) {
	if h == nil {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	delete(rt.live, h.id)
}

// Live returns the current number of outstanding headers
func (rt *FakeRuntime) Live() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.live)
}
