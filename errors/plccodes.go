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

package errors

// The codes below are the closed set surfaced by the layer capability
// contract and the collaborator API (spec §6). Layer implementations may
// only ever return one of these; the core itself adds a few
// core-internal-only codes (ESpuriousWakeup, ETerminating, EProtocol) that
// never cross the layer boundary.
const (
	// EOk means the operation completed; no error.
	EOk CodeError = iota + MinAvailable

	// EPending means bytes were produced/consumed but the operation isn't
	// complete (more batching allowed, handshake not finished, ...).
	EPending

	// EPartial means the caller must supply more bytes before progress
	// can continue (a short read).
	EPartial

	// ERetry means the layer must redo a handshake step (e.g. session
	// registration before forward-open).
	ERetry

	// ENullPtr is returned for a nil PLC/request/buffer where one was required.
	ENullPtr

	// ENoMem is returned when an allocation failed.
	ENoMem

	// EBadGateway is returned when gateway host/port parsing fails.
	EBadGateway

	// EOutOfBounds is returned when a cursor would move outside [0, capacity].
	EOutOfBounds

	// ETooSmall is returned when the buffer window cannot hold a single request.
	ETooSmall

	// EBusy is returned by StartRequest when the request is already queued.
	EBusy

	// ENotFound is returned by StopRequest when the request isn't queued.
	ENotFound

	// ESpuriousWakeup is core-internal: a state was re-entered while its
	// expected I/O was still pending. Benign, never surfaced to a client.
	ESpuriousWakeup

	// ETerminating is core-internal: the PLC is tearing down.
	ETerminating

	// EProtocol is core-internal: a layer returned something other than
	// the codes its operation permits, or a process_response callback
	// itself returned an error.
	EProtocol
)

func init() {
	RegisterIdFctMessage(EOk, func(CodeError) string { return "ok" })
	RegisterIdFctMessage(EPending, func(CodeError) string { return "pending" })
	RegisterIdFctMessage(EPartial, func(CodeError) string { return "partial, need more bytes" })
	RegisterIdFctMessage(ERetry, func(CodeError) string { return "retry handshake step" })
	RegisterIdFctMessage(ENullPtr, func(CodeError) string { return "null pointer" })
	RegisterIdFctMessage(ENoMem, func(CodeError) string { return "allocation failed" })
	RegisterIdFctMessage(EBadGateway, func(CodeError) string { return "invalid gateway" })
	RegisterIdFctMessage(EOutOfBounds, func(CodeError) string { return "cursor out of bounds" })
	RegisterIdFctMessage(ETooSmall, func(CodeError) string { return "buffer too small for request" })
	RegisterIdFctMessage(EBusy, func(CodeError) string { return "request already queued" })
	RegisterIdFctMessage(ENotFound, func(CodeError) string { return "request not found" })
	RegisterIdFctMessage(ESpuriousWakeup, func(CodeError) string { return "spurious wakeup" })
	RegisterIdFctMessage(ETerminating, func(CodeError) string { return "plc is terminating" })
	RegisterIdFctMessage(EProtocol, func(CodeError) string { return "protocol error" })
}
