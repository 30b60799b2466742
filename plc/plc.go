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

// Package plc is the per-gateway driver itself: the cooperative,
// single-threaded-per-instance state machine that multiplexes queued
// requests onto one connection through a layer chain (spec.md §2-§5).
//
// Every exported method that touches PLC-local state takes the instance's
// own mutex. StartRequest (when the machine is idle), Reset and Destroy
// also run the dispatcher loop to a suspension point before returning;
// the loop never blocks while holding the mutex (spec.md §5).
package plc

import (
	"sync"
	"time"

	libatm "github.com/sabouaram/plc-core/atomic"
	libattr "github.com/sabouaram/plc-core/attrs"
	liberr "github.com/sabouaram/plc-core/errors"
	liblay "github.com/sabouaram/plc-core/layer"
	liblog "github.com/sabouaram/plc-core/logger"
	libreq "github.com/sabouaram/plc-core/request"
	libsck "github.com/sabouaram/plc-core/socket"
	libtmr "github.com/sabouaram/plc-core/timer"
)

// FrameTap receives a copy of every outbound/inbound frame's payload, for
// an optional diagnostics.Tap to multiplex onto a capture writer (spec
// SPEC_FULL.md §11.1). Nil by default; checked on the hot path with a
// single nil comparison.
type FrameTap interface {
	Outbound(frame []byte)
	Inbound(frame []byte)
}

// Destructor releases a PLC's model-specific context (spec.md §3,
// "model-specific context (opaque, with destructor)").
type Destructor func(ctx interface{})

// Stats is a read-only operational snapshot (SPEC_FULL.md §12); it never
// affects control flow.
type Stats struct {
	Key             string
	State           State
	QueueLen        int
	Connected       bool
	Terminating     bool
	RetryIntervalMs int64
}

// PLC is one interned connection driver, keyed by family/gateway/path.
type PLC struct {
	mu sync.Mutex

	key     string
	attrs   libattr.Attrs
	chain   *liblay.Chain
	sock    libsck.Socket
	sockNew libsck.Factory
	clock   libtmr.Clock
	timer   libtmr.Timer
	heart   libtmr.Heartbeat
	log     liblog.Logger
	tap     FrameTap

	buf          []byte
	payloadStart int
	payloadEnd   int
	rxLen        int

	queue        libreq.Queue
	currentReqID int64
	inFlight     []*libreq.Request

	currentState State

	isConnected    libatm.Value[bool]
	isTerminating  libatm.Value[bool]
	retryIntervalMs libatm.Value[int64]
	nextRetryTime   libatm.Value[int64]
	nextIdleTimeout libatm.Value[int64]

	modelCtx  interface{}
	destroy   Destructor

	refCount int
}

// New constructs a PLC per spec.md §4.1's get_or_create inner steps, minus
// the registry insertion itself (the registry package owns that). now is
// the current event-loop time in milliseconds (timer.Clock.NowMs()).
func New(a libattr.Attrs, chain *liblay.Chain, sockFactory libsck.Factory, clk libtmr.Clock, log liblog.Logger, tap FrameTap, modelCtx interface{}, destructor Destructor, now int64) (*PLC, liberr.Error) {
	if chain == nil || chain.Top() == nil {
		return nil, liberr.ENullPtr.Error()
	}
	if sockFactory == nil {
		return nil, liberr.ENullPtr.Error()
	}
	if clk == nil {
		clk = libtmr.SystemClock{}
	}
	if log == nil {
		log = liblog.Discard()
	}

	p := &PLC{
		key:     a.Key(),
		attrs:   a,
		chain:   chain,
		sockNew: sockFactory,
		clock:   clk,
		log:     log,
		tap:     tap,
		buf:     make([]byte, a.BufferSize),

		currentState: StateDispatchRequests,
		currentReqID: libreq.InvalidID,

		modelCtx: modelCtx,
		destroy:  destructor,
		refCount: 1,
	}

	p.isConnected = libatm.NewValue[bool]()
	p.isTerminating = libatm.NewValue[bool]()
	p.retryIntervalMs = libatm.NewValue[int64]()
	p.nextRetryTime = libatm.NewValue[int64]()
	p.nextIdleTimeout = libatm.NewValue[int64]()

	p.retryIntervalMs.Store(libattr.MinRetryInterval)
	p.nextIdleTimeout.Store(now + a.IdleTimeoutMs)

	p.timer = libtmr.NewTimer(clk)
	p.heart = libtmr.NewHeartbeat(time.Duration(libattr.HeartbeatInterval)*time.Millisecond, func() {
		p.onHeartbeat()
	})

	return p, nil
}

// Key returns the registry interning key family/gateway/path.
func (p *PLC) Key() string {
	return p.key
}

// Stats returns a point-in-time operational snapshot.
func (p *PLC) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Key:             p.key,
		State:           p.currentState,
		QueueLen:        p.queue.Len(),
		Connected:       p.isConnected.Load(),
		Terminating:     p.isTerminating.Load(),
		RetryIntervalMs: p.retryIntervalMs.Load(),
	}
}

// onHeartbeat is the 200ms recurring re-entry point of spec.md §4.4: only
// re-runs the machine if it's idle in dispatch, then nothing else - the
// next tick is whatever the Heartbeat implementation already re-arms.
func (p *PLC) onHeartbeat() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentState == StateDispatchRequests {
		p.run()
	}
}
