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

package plc

import (
	"time"

	libattr "github.com/sabouaram/plc-core/attrs"
	liberr "github.com/sabouaram/plc-core/errors"
	libreq "github.com/sabouaram/plc-core/request"
)

// StartRequest enqueues r and, if the machine is currently idle, kicks it
// straight into dispatch instead of waiting for the next heartbeat
// (spec.md §6, "start_request"). Returns EBusy if r is already queued.
func (p *PLC) StartRequest(r *libreq.Request) liberr.Error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTerminating.Load() {
		return liberr.ETerminating.Error()
	}

	found := false
	p.queue.Each(func(q *libreq.Request) {
		if q == r {
			found = true
		}
	})
	if found {
		return liberr.EBusy.Error()
	}

	r.ID = libreq.InvalidID
	p.queue.Push(r)

	if p.currentState == StateDispatchRequests {
		p.run()
	}

	return nil
}

// StopRequest cancels r if it is still sitting in the queue. Returns
// ENotFound if it has already been sent (spec.md §6, "stop_request").
func (p *PLC) StopRequest(r *libreq.Request) liberr.Error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.queue.Remove(r) {
		_ = p.chain.Top().AbortRequest(r)
		return nil
	}

	for _, it := range p.inFlight {
		if it == r {
			return liberr.ENotFound.Error()
		}
	}

	return liberr.ENotFound.Error()
}

// Context returns the model-specific context passed to New.
func (p *PLC) Context() interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modelCtx
}

// SetContext replaces the model-specific context, releasing the previous
// one through its destructor if one is set (spec.md §6, "set_context").
func (p *PLC) SetContext(ctx interface{}, destructor Destructor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.destroy != nil {
		p.destroy(p.modelCtx)
	}
	p.modelCtx = ctx
	p.destroy = destructor
}

// IdleTimeout returns the current idle-disconnect threshold in milliseconds.
func (p *PLC) IdleTimeout() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attrs.IdleTimeoutMs
}

// SetIdleTimeout changes the idle-disconnect threshold (spec.md §6,
// "set_idle_timeout"); out-of-range values are rejected and left untouched.
func (p *PLC) SetIdleTimeout(ms int64) liberr.Error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ms < libattr.MinIdleTimeout || ms > libattr.MaxIdleTimeout {
		return liberr.EBadGateway.Error()
	}
	p.attrs.IdleTimeoutMs = ms
	if p.isConnected.Load() {
		p.nextIdleTimeout.Store(p.clock.NowMs() + ms)
	}
	return nil
}

// BufferSize returns the current outbound/inbound buffer capacity.
func (p *PLC) BufferSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

// SetBufferSize reallocates the buffer. Refused while a frame is in flight,
// since doing so would invalidate live Window offsets (spec.md §6,
// "set_buffer_size").
func (p *PLC) SetBufferSize(n int) liberr.Error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n <= 0 {
		return liberr.ENullPtr.Error()
	}
	if p.currentState != StateDispatchRequests {
		return liberr.EBusy.Error()
	}

	p.buf = make([]byte, n)
	return nil
}

// Reset forces the PLC back to its just-created state: the socket is closed
// synchronously, the layer chain is reinitialized, and is_connected is
// cleared before the call returns, so no callback armed against the old
// connection can fire afterwards (spec.md §4.1, "reset"). Nothing already
// queued is lost; anything that was in flight is requeued at the head to be
// resent once reconnected.
func (p *PLC) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sock != nil {
		_ = p.sock.Close()
	}
	if top := p.chain.Top(); top != nil {
		_ = top.Initialize()
	}
	p.isConnected.Store(false)
	p.requeueInFlight()

	p.retryIntervalMs.Store(libattr.MinRetryInterval)
	p.nextRetryTime.Store(0)
	p.currentState = StateDispatchRequests

	p.run()
}

// Destroy tears the PLC down: it marks the instance terminating, lets the
// machine run its course to a clean disconnect, and waits up to
// DestroyGraceMs for that to finish before releasing the model context
// (spec.md §4.1, "destroy"). Safe to call once; the registry is what
// enforces the reference-counted "once" part.
func (p *PLC) Destroy() {
	p.mu.Lock()
	p.isTerminating.Store(true)
	p.run()
	p.mu.Unlock()

	deadline := time.Now().Add(libattr.DestroyGraceMs * time.Millisecond)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		done := p.currentState == StateTerminate
		p.mu.Unlock()
		if done {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	p.heart.Stop()
	p.timer.Destroy()
	if p.sock != nil {
		p.sock.Destroy()
	}
	p.chain.DestroyAll()
	ctx, destroy := p.modelCtx, p.destroy
	p.mu.Unlock()

	if destroy != nil {
		destroy(ctx)
	}
}
