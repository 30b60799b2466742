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
	libattr "github.com/sabouaram/plc-core/attrs"
	liberr "github.com/sabouaram/plc-core/errors"
	liblay "github.com/sabouaram/plc-core/layer"
	logfld "github.com/sabouaram/plc-core/logger/fields"
	libreq "github.com/sabouaram/plc-core/request"
)

// stepResult tells run whether the dispatcher can keep advancing states in
// this call or must return and wait for a socket/timer callback to re-enter
// it (spec.md §5, "never block while holding the mutex").
type stepResult uint8

const (
	stepContinue stepResult = iota
	stepSuspend
)

// run drives the state machine to its next suspension point. Callers
// (onHeartbeat, the socket/timer callbacks) always hold p.mu before calling
// it and never call it re-entrantly from inside a step.
func (p *PLC) run() {
	for p.stepOnce() == stepContinue {
	}
}

func (p *PLC) logState() {
	p.log.Debug("state", logfld.New().Add("plc_key", p.key).Add("state", p.currentState.String()))
}

func (p *PLC) stepOnce() stepResult {
	p.logState()

	switch p.currentState {
	case StateDispatchRequests:
		return p.doDispatch()
	case StateStartConnect:
		return p.doStartConnect()
	case StateBuildConnectRequest:
		return p.doBuildConnectRequest()
	case StateConnectResponseReady:
		return p.doConnectResponseReady()
	case StateReserveSpaceForRequest:
		return p.doReserveSpaceForRequest()
	case StateBuildRequest:
		return p.doBuildRequest()
	case StateResponseReady:
		return p.doResponseReady()
	case StateStartDisconnect:
		return p.doStartDisconnect()
	case StateBuildDisconnectRequest:
		return p.doBuildDisconnectRequest()
	case StateDisconnectResponseReady:
		return p.doDisconnectResponseReady()
	case StateConnectRequestSent, StateRequestSent, StateDisconnectRequestSent, StateTerminate:
		// Suspend states: a socket/timer callback already armed will
		// re-enter run() with the state advanced past these.
		return stepSuspend
	default:
		return stepSuspend
	}
}

// doDispatch is the idle state's five-step entry check (spec.md §4.2).
func (p *PLC) doDispatch() stepResult {
	now := p.clock.NowMs()
	terminating := p.isTerminating.Load()
	connected := p.isConnected.Load()

	if terminating {
		if connected {
			p.currentState = StateStartDisconnect
		} else {
			p.currentState = StateTerminate
		}
		return stepContinue
	}

	if connected && now >= p.nextIdleTimeout.Load() {
		p.currentState = StateStartDisconnect
		return stepContinue
	}

	if now < p.nextRetryTime.Load() {
		return stepSuspend
	}

	if p.queue.Empty() {
		return stepSuspend
	}

	if !connected {
		p.currentState = StateStartConnect
		return stepContinue
	}

	p.currentState = StateReserveSpaceForRequest
	return stepContinue
}

func (p *PLC) fullWindow() liblay.Window {
	return liblay.Window{Buf: p.buf, Start: 0, End: 0, Capacity: len(p.buf)}
}

// isEOk treats a plain nil the same as an explicit EOk: layer.Layer methods
// with only one success path (Connect, Disconnect, ReserveSpace, ...) return
// nil, while BuildLayer/ProcessResponse - which report a batching status
// through the same return slot - always return an explicit code.
func isEOk(err liberr.Error) bool {
	return err == nil || err.HasCode(liberr.EOk)
}

func isPending(err liberr.Error) bool {
	return err != nil && err.HasCode(liberr.EPending)
}

// doStartConnect creates the socket on first use, resets every layer, and
// arms the connection-ready callback.
func (p *PLC) doStartConnect() stepResult {
	if p.sock == nil {
		s, err := p.sockNew()
		if err != nil {
			p.enterError()
			return stepContinue
		}
		p.sock = s
	}

	if ierr := p.chain.Top().Initialize(); ierr != nil && !ierr.HasCode(liberr.EOk) {
		p.enterError()
		return stepContinue
	}

	p.currentState = StateBuildConnectRequest
	p.sock.CallbackWhenConnectionReady(p.onConnectionReady, nil, p.attrs.Host, p.attrs.Port)
	return stepSuspend
}

func (p *PLC) onConnectionReady(_ interface{}, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.enterError()
		return
	}
	p.run()
}

// doBuildConnectRequest drives the (possibly multi-leg) handshake: each pass
// asks the outermost layer to build its next handshake frame, and a layer
// that is already fully connected reports EOk with nothing left to send.
func (p *PLC) doBuildConnectRequest() stepResult {
	w, cerr := p.chain.Top().Connect(p.fullWindow())
	if isEOk(cerr) {
		p.isConnected.Store(true)
		p.nextIdleTimeout.Store(p.clock.NowMs() + p.attrs.IdleTimeoutMs)
		p.retryIntervalMs.Store(libattr.MinRetryInterval)
		p.currentState = StateDispatchRequests
		return stepContinue
	}
	if !isPending(cerr) {
		p.enterError()
		return stepContinue
	}

	built, berr := p.chain.Top().BuildLayer(w, libreq.InvalidID)
	if !isEOk(berr) && !isPending(berr) {
		p.enterError()
		return stepContinue
	}

	frame := built.Buf[built.Start:built.End]
	if p.tap != nil {
		p.tap.Outbound(frame)
	}

	p.currentState = StateConnectRequestSent
	p.sock.CallbackWhenWriteDone(p.onConnectWriteDone, nil, frame)
	return stepSuspend
}

func (p *PLC) onConnectWriteDone(_ interface{}, _ int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.enterError()
		return
	}
	p.sock.CallbackWhenReadDone(p.onConnectReadDone, nil, p.buf)
}

func (p *PLC) onConnectReadDone(_ interface{}, n int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.enterError()
		return
	}
	if p.tap != nil {
		p.tap.Inbound(p.buf[:n])
	}

	p.rxLen = n
	p.currentState = StateConnectResponseReady
	p.run()
}

func (p *PLC) doConnectResponseReady() stepResult {
	w := liblay.Window{Buf: p.buf, Start: 0, End: p.rxLen, Capacity: len(p.buf)}
	_, _, perr := p.chain.Top().ProcessResponse(w)

	switch {
	case perr != nil && perr.HasCode(liberr.EPartial):
		p.currentState = StateConnectRequestSent
		p.sock.CallbackWhenReadDone(p.onConnectReadDone, nil, p.buf)
		return stepSuspend
	case isEOk(perr) || (perr != nil && perr.HasCode(liberr.ERetry)):
		p.currentState = StateBuildConnectRequest
		return stepContinue
	default:
		p.enterError()
		return stepContinue
	}
}

// doReserveSpaceForRequest mints the request id that will tag the first
// request packed into the next outbound frame.
func (p *PLC) doReserveSpaceForRequest() stepResult {
	reserved, reqID, rerr := p.chain.Top().ReserveSpace(p.fullWindow())
	if !isEOk(rerr) {
		p.enterError()
		return stepContinue
	}

	p.currentReqID = reqID
	p.payloadStart = reserved.Start
	p.payloadEnd = reserved.End
	p.currentState = StateBuildRequest
	return stepContinue
}

// doBuildRequest is the batching core (spec.md §4.2 steps a-d): it keeps
// packing queued requests into the same frame as long as build_layer
// reports EPending, stopping at EOk or when the queue runs dry.
func (p *PLC) doBuildRequest() stepResult {
	// curStart is the payload start of the request currently being built -
	// distinct from p.payloadStart, which stays pinned to the first
	// reservation in this frame so the final slice below covers the whole
	// batch.
	curStart := p.payloadStart

	for {
		req := p.queue.Front()
		if req == nil {
			if len(p.inFlight) == 0 {
				p.currentState = StateDispatchRequests
				return stepContinue
			}
			break
		}

		preBuildEnd := p.payloadEnd
		newEnd, berr := req.Build(req.Ctx, p.buf, curStart, p.payloadEnd)
		if berr != nil {
			if len(p.inFlight) == 0 {
				// Nothing batched yet this frame: the request doesn't fit
				// even alone, which is fatal (spec.md §4.2 step b,
				// first_try).
				p.queue.PopFront()
				p.enterProtocolError()
				return stepContinue
			}
			// Later requests already share this frame: stop batching and
			// send what's built so far, leaving req queued for the next
			// frame instead of tearing the connection down.
			p.payloadEnd = preBuildEnd
			break
		}
		p.payloadEnd = newEnd

		built, lerr := p.chain.Top().BuildLayer(
			liblay.Window{Buf: p.buf, Start: curStart, End: p.payloadEnd, Capacity: len(p.buf)},
			p.currentReqID,
		)
		if lerr != nil && lerr.HasCode(liberr.EOutOfBounds) {
			// Frame is full; this request stays at the queue head for the
			// next frame.
			break
		}
		if !isEOk(lerr) && !isPending(lerr) {
			p.queue.PopFront()
			p.enterProtocolError()
			return stepContinue
		}

		req = p.queue.PopFront()
		req.ID = p.currentReqID
		p.inFlight = append(p.inFlight, req)
		p.payloadEnd = built.End

		if isEOk(lerr) {
			break
		}

		next := p.queue.Front()
		if next == nil {
			break
		}

		reserved, reqID, rerr := p.chain.Top().ReserveSpace(
			liblay.Window{Buf: p.buf, Start: p.payloadEnd, End: p.payloadEnd, Capacity: len(p.buf)},
		)
		if !isEOk(rerr) {
			break
		}
		p.currentReqID = reqID
		curStart = reserved.Start
		p.payloadEnd = reserved.End
	}

	// The frame itself starts at buffer offset 0, not p.payloadStart: every
	// reservation in this batch ultimately counted backwards from 0 to place
	// its header, since doReserveSpaceForRequest always reserves the first
	// request's header against a fresh full window.
	frame := p.buf[0:p.payloadEnd]
	if p.tap != nil {
		p.tap.Outbound(frame)
	}

	p.currentState = StateRequestSent
	p.sock.CallbackWhenWriteDone(p.onRequestWriteDone, nil, frame)
	return stepSuspend
}

func (p *PLC) onRequestWriteDone(_ interface{}, _ int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.enterError()
		return
	}
	p.sock.CallbackWhenReadDone(p.onRequestReadDone, nil, p.buf)
}

func (p *PLC) onRequestReadDone(_ interface{}, n int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.enterError()
		return
	}
	if p.tap != nil {
		p.tap.Inbound(p.buf[:n])
	}

	p.rxLen = n
	p.currentState = StateResponseReady
	p.run()
}

// doResponseReady demuxes every sub-frame out of the read, matching each
// request id against the head of the in-flight list and discarding replies
// that don't match (spec.md §4.2, "response_ready").
func (p *PLC) doResponseReady() stepResult {
	rxEnd := p.rxLen
	w := liblay.Window{Buf: p.buf, Start: 0, End: rxEnd, Capacity: len(p.buf)}

	for {
		out, reqID, perr := p.chain.Top().ProcessResponse(w)
		if perr != nil && perr.HasCode(liberr.EPartial) {
			p.currentState = StateRequestSent
			p.sock.CallbackWhenReadDone(p.onRequestReadDone, nil, p.buf)
			return stepSuspend
		}
		if perr != nil && !(perr.HasCode(liberr.EOk) || perr.HasCode(liberr.EPending)) {
			p.enterProtocolError()
			return stepContinue
		}

		if req := p.popInFlight(reqID); req != nil {
			if cerr := req.OnReply(req.Ctx, out.Buf, out.Start, out.End); cerr != nil {
				p.enterProtocolError()
				return stepContinue
			}
		}

		if isEOk(perr) {
			break
		}
		// out bounds the sub-frame just consumed; the next one starts where
		// this one ended, still within the same read.
		w = liblay.Window{Buf: p.buf, Start: out.End, End: rxEnd, Capacity: len(p.buf)}
	}

	p.nextIdleTimeout.Store(p.clock.NowMs() + p.attrs.IdleTimeoutMs)
	p.currentState = StateDispatchRequests
	return stepContinue
}

// popInFlight discards every in-flight request ahead of the one matching id
// - a stale or mismatched reply never blocks the ones queued behind it.
func (p *PLC) popInFlight(id int64) *libreq.Request {
	for len(p.inFlight) > 0 {
		r := p.inFlight[0]
		p.inFlight = p.inFlight[1:]
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (p *PLC) doStartDisconnect() stepResult {
	p.currentState = StateBuildDisconnectRequest
	return stepContinue
}

func (p *PLC) doBuildDisconnectRequest() stepResult {
	w, derr := p.chain.Top().Disconnect(p.fullWindow())
	if isEOk(derr) {
		p.finishDisconnect()
		return stepContinue
	}
	if !isPending(derr) {
		p.finishDisconnect()
		return stepContinue
	}

	built, berr := p.chain.Top().BuildLayer(w, libreq.InvalidID)
	if !isEOk(berr) && !isPending(berr) {
		p.finishDisconnect()
		return stepContinue
	}

	frame := built.Buf[built.Start:built.End]
	if p.tap != nil {
		p.tap.Outbound(frame)
	}

	p.currentState = StateDisconnectRequestSent
	p.sock.CallbackWhenWriteDone(p.onDisconnectWriteDone, nil, frame)
	return stepSuspend
}

func (p *PLC) onDisconnectWriteDone(_ interface{}, _ int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.finishDisconnect()
		return
	}
	p.sock.CallbackWhenReadDone(p.onDisconnectReadDone, nil, p.buf)
}

func (p *PLC) onDisconnectReadDone(_ interface{}, n int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.finishDisconnect()
		return
	}

	p.rxLen = n
	p.currentState = StateDisconnectResponseReady
	p.run()
}

func (p *PLC) doDisconnectResponseReady() stepResult {
	w := liblay.Window{Buf: p.buf, Start: 0, End: p.rxLen, Capacity: len(p.buf)}
	_, _, perr := p.chain.Top().ProcessResponse(w)

	if perr != nil && perr.HasCode(liberr.EPartial) {
		p.currentState = StateDisconnectRequestSent
		p.sock.CallbackWhenReadDone(p.onDisconnectReadDone, nil, p.buf)
		return stepSuspend
	}
	if perr != nil && perr.HasCode(liberr.ERetry) {
		p.currentState = StateBuildDisconnectRequest
		return stepContinue
	}

	p.finishDisconnect()
	return stepContinue
}

// finishDisconnect tears down the socket and returns to dispatch (or
// terminate, if a Destroy is waiting on this).
func (p *PLC) finishDisconnect() {
	if p.sock != nil {
		_ = p.sock.Close()
	}
	p.isConnected.Store(false)
	p.requeueInFlight()

	if p.isTerminating.Load() {
		p.currentState = StateTerminate
	} else {
		p.currentState = StateDispatchRequests
	}
}

// requeueInFlight puts every request that was sent but never answered back
// at the head of the queue, in their original order, so a disconnect never
// silently drops client work.
func (p *PLC) requeueInFlight() {
	if len(p.inFlight) == 0 {
		return
	}
	p.queue.Requeue(p.inFlight)
	p.inFlight = nil
}

// enterError is the single error path every track funnels through: it
// doubles the backoff (capped), schedules the next retry, drops the
// connection, and returns to dispatch (or terminate).
func (p *PLC) enterError() {
	p.log.Warning("connect or send error, backing off", logfld.New().Add("plc_key", p.key).Add("state", p.currentState.String()))

	next := p.retryIntervalMs.Load() * 2
	if next > libattr.MaxRetryInterval {
		next = libattr.MaxRetryInterval
	}
	p.retryIntervalMs.Store(next)
	nextAt := p.clock.NowMs() + next
	p.nextRetryTime.Store(nextAt)
	p.timer.WakeAt(nextAt, p.onRetryWake, nil)

	p.finishDisconnect()
}

// onRetryWake lets a PLC resume retrying the instant its backoff elapses
// rather than waiting up to one heartbeat period (spec.md §4.4, §7).
func (p *PLC) onRetryWake(_ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentState == StateDispatchRequests {
		p.run()
	}
}

func (p *PLC) enterProtocolError() {
	p.log.Error("protocol error", logfld.New().Add("plc_key", p.key).Add("state", p.currentState.String()))
	p.enterError()
}
