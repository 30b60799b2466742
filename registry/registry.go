/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package registry interns one *plc.PLC per family/gateway/path key
// (spec.md §4.1): every caller asking for the same key gets the same
// instance, reference-counted, so two clients pointed at the same
// controller share one connection instead of opening two.
package registry

import (
	"context"
	"sync"

	libattr "github.com/sabouaram/plc-core/attrs"
	liberr "github.com/sabouaram/plc-core/errors"
	liblay "github.com/sabouaram/plc-core/layer"
	liblog "github.com/sabouaram/plc-core/logger"
	"github.com/sabouaram/plc-core/plc"
	libsck "github.com/sabouaram/plc-core/socket"
	libtmr "github.com/sabouaram/plc-core/timer"

	"golang.org/x/sync/semaphore"
)

// entry pairs an interned PLC with the reference count the registry tracks
// on its behalf.
type entry struct {
	p   *plc.PLC
	refs int
}

// Registry is the process-wide table of interned PLCs.
type Registry struct {
	mu      sync.Mutex
	byKey   map[string]*entry
	clock   libtmr.Clock
	connSem *semaphore.Weighted
}

// New returns an empty Registry. maxConcurrentConnects sizes the pool of
// connect slots handed out by AcquireConnectSlot; 0 means unbounded
// (SPEC_FULL.md §11). The PLCs the registry creates do not take slots
// themselves: only callers of AcquireConnectSlot are bounded.
func New(clk libtmr.Clock, maxConcurrentConnects int64) *Registry {
	r := &Registry{
		byKey: make(map[string]*entry),
		clock: clk,
	}
	if r.clock == nil {
		r.clock = libtmr.SystemClock{}
	}
	if maxConcurrentConnects > 0 {
		r.connSem = semaphore.NewWeighted(maxConcurrentConnects)
	}
	return r
}

// AcquireConnectSlot blocks until a connect slot is available, or ctx is
// done. A Registry built with maxConcurrentConnects == 0 never blocks.
func (r *Registry) AcquireConnectSlot(ctx context.Context) error {
	if r.connSem == nil {
		return nil
	}
	return r.connSem.Acquire(ctx, 1)
}

// ReleaseConnectSlot returns a slot acquired by AcquireConnectSlot. Safe to
// call even when the Registry has no cap configured.
func (r *Registry) ReleaseConnectSlot() {
	if r.connSem == nil {
		return
	}
	r.connSem.Release(1)
}

// GetOrCreate returns the PLC interned for a.Key(), creating it with plc.New if
// it doesn't exist yet, and incrementing its reference count either way
// (spec.md §4.1, "get_or_create"). chain, sockFactory, log and tap are only
// consulted on the creation path.
func (r *Registry) GetOrCreate(
	a libattr.Attrs,
	chain *liblay.Chain,
	sockFactory libsck.Factory,
	log liblog.Logger,
	tap plc.FrameTap,
	modelCtx interface{},
	destructor plc.Destructor,
) (*plc.PLC, liberr.Error) {
	key := a.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.byKey[key]; ok {
		e.refs++
		return e.p, nil
	}

	p, err := plc.New(a, chain, sockFactory, r.clock, log, tap, modelCtx, destructor, r.clock.NowMs())
	if err != nil {
		return nil, err
	}

	r.byKey[key] = &entry{p: p, refs: 1}
	return p, nil
}

// Get returns the PLC interned for key, or nil if none is, without
// affecting its reference count (spec.md §9's Open Question on plc_get:
// this is the non-inverted, correct-intent rewrite - a key match returns
// the PLC, a miss returns nil, nothing in between).
func (r *Registry) Get(key string) *plc.PLC {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.byKey[key]; ok {
		return e.p
	}
	return nil
}

// Reset synchronously closes and reinitializes the PLC interned for key,
// leaving its reference count untouched (spec.md §4.1, "reset").
func (r *Registry) Reset(key string) liberr.Error {
	r.mu.Lock()
	e, ok := r.byKey[key]
	r.mu.Unlock()

	if !ok {
		return liberr.ENotFound.Error()
	}
	e.p.Reset()
	return nil
}

// Release drops one reference to the PLC interned for key. Once the count
// reaches zero the PLC is destroyed and removed from the table (spec.md
// §4.1, "destroy" - the registry owns the "once" guarantee the PLC itself
// doesn't enforce).
func (r *Registry) Release(key string) liberr.Error {
	r.mu.Lock()
	e, ok := r.byKey[key]
	if !ok {
		r.mu.Unlock()
		return liberr.ENotFound.Error()
	}

	e.refs--
	if e.refs > 0 {
		r.mu.Unlock()
		return nil
	}

	delete(r.byKey, key)
	r.mu.Unlock()

	e.p.Destroy()
	return nil
}

// Len returns the number of distinct PLCs currently interned, regardless of
// their reference count (SPEC_FULL.md §12, supplemented for test/property
// checks of §8's "fresh registry" invariant).
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

// Shutdown destroys every interned PLC regardless of reference count and
// empties the table. Intended for process teardown (spec.md §6,
// "module_teardown").
func (r *Registry) Shutdown() {
	r.mu.Lock()
	entries := make([]*entry, 0, len(r.byKey))
	for k, e := range r.byKey {
		entries = append(entries, e)
		delete(r.byKey, k)
	}
	r.mu.Unlock()

	for _, e := range entries {
		e.p.Destroy()
	}
}
