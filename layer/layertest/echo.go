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

// Package layertest is a single-layer test double that echoes whatever it
// is handed, used to exercise the round-trip property of spec.md §8: "the
// bytes emitted by reserve_space + build_request + build_layer equal the
// bytes consumed by process_response in reverse order."
package layertest

import (
	liblay "github.com/sabouaram/plc-core/layer"
	liberr "github.com/sabouaram/plc-core/errors"
	libreq "github.com/sabouaram/plc-core/request"
)

// headerSize is the framing this layer adds: a 4-byte LE request id, a
// 4-byte LE payload length, then the payload itself. The length field is
// what lets process_response find where one batched sub-frame ends and the
// next one's header begins.
const headerSize = 8

// EchoLayer is a single-node chain: it reserves a fixed-size header,
// stamps the request id into it on build, and strips it back off on
// process_response. BatchLimit controls how many requests it allows into
// one frame before declaring the frame complete; zero means "only one".
type EchoLayer struct {
	BatchLimit int

	nextID    int64
	batched   int
	connected bool
}

// New returns a one-slot chain holding a fresh EchoLayer in slot 0.
func New() *liblay.Chain {
	c := liblay.NewChain(1)
	_ = c.Set(0, &EchoLayer{})
	return c
}

func (e *EchoLayer) Initialize() liberr.Error {
	e.connected = false
	e.batched = 0
	return nil
}

// Connect completes in a single leg: no handshake bytes, immediately
// connected. Family layers with a real handshake (session registration,
// forward-open, ...) return EPending/ERetry instead; this double exists to
// exercise the request/response path, not the handshake one.
func (e *EchoLayer) Connect(w liblay.Window) (liblay.Window, liberr.Error) {
	e.connected = true
	return w, nil
}

func (e *EchoLayer) Disconnect(w liblay.Window) (liblay.Window, liberr.Error) {
	e.connected = false
	return w, nil
}

// IsConnected reports whether Connect has run more recently than
// Disconnect or Initialize.
func (e *EchoLayer) IsConnected() bool {
	return e.connected
}

func (e *EchoLayer) ReserveSpace(w liblay.Window) (liblay.Window, int64, liberr.Error) {
	if w.Capacity-w.Start < headerSize {
		return w, libreq.InvalidID, liberr.ETooSmall.Error()
	}
	id := e.nextID
	e.nextID++
	w.Start += headerSize
	w.End = w.Start
	return w, id, nil
}

func (e *EchoLayer) AcceptRequests(q *libreq.Queue) liberr.Error {
	return nil
}

func (e *EchoLayer) AbortRequest(r *libreq.Request) liberr.Error {
	return nil
}

// BuildLayer writes the header (request id, payload length) just before
// w.Start and reports EPending while BatchLimit allows more requests into
// the same frame, EOk once the batch is full.
func (e *EchoLayer) BuildLayer(w liblay.Window, reqID int64) (liblay.Window, liberr.Error) {
	hdrAt := w.Start - headerSize
	if hdrAt < 0 {
		return w, liberr.EOutOfBounds.Error()
	}
	cur := liblay.Cursor{Buf: w.Buf, Offset: hdrAt, Capacity: w.Capacity}
	if err := cur.PutU32LE(uint32(reqID)); err != nil {
		return w, err
	}
	if err := cur.PutU32LE(uint32(w.End - w.Start)); err != nil {
		return w, err
	}

	e.batched++
	if e.batched > e.BatchLimit {
		e.batched = 0
		return w, liberr.EOk.Error()
	}
	return w, liberr.EPending.Error()
}

// ProcessResponse reads the request id and payload length off the front of
// w, narrows the returned window to exactly that sub-frame's payload, and
// reports EPending when bytes belonging to another sub-frame remain beyond
// it - EOk once this one runs up to w.End.
func (e *EchoLayer) ProcessResponse(w liblay.Window) (liblay.Window, int64, liberr.Error) {
	if w.Len() < headerSize {
		return w, libreq.InvalidID, liberr.EPartial.Error()
	}
	cur := liblay.Cursor{Buf: w.Buf, Offset: w.Start, Capacity: w.Capacity}
	id, err := cur.GetU32LE()
	if err != nil {
		return w, libreq.InvalidID, err
	}
	length, err := cur.GetU32LE()
	if err != nil {
		return w, libreq.InvalidID, err
	}

	payloadEnd := cur.Offset + int(length)
	if payloadEnd > w.End {
		return w, libreq.InvalidID, liberr.EPartial.Error()
	}

	out := liblay.Window{Buf: w.Buf, Start: cur.Offset, End: payloadEnd, Capacity: w.Capacity}
	if payloadEnd == w.End {
		return out, int64(id), liberr.EOk.Error()
	}
	return out, int64(id), liberr.EPending.Error()
}

func (e *EchoLayer) DestroyLayer() {}

