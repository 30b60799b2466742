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

// Package layer is the protocol codec capability contract every
// family-specific implementation (EtherNet/IP, PCCC/DF1, Modbus, ...)
// plugs into. The core treats a Layer as opaque: it only ever calls the
// nine operations below, always against the outermost layer of the chain,
// and trusts each implementation to delegate down to the next layer after
// doing its own work (spec.md §4.3).
//
// The source expressed this as a context pointer plus a vtable of function
// pointers; REDESIGN FLAGS in spec.md §9 call for a Go interface instead -
// that's what Layer is.
package layer

import (
	liberr "github.com/sabouaram/plc-core/errors"
	libreq "github.com/sabouaram/plc-core/request"
)

// Layer is the per-stratum capability set of spec.md §4.3. The framing
// methods (Connect, Disconnect, ReserveSpace, BuildLayer, ProcessResponse)
// take and return a Window; implementations narrow Start/End as they
// consume their own framing and delegate to the next layer in the chain.
type Layer interface {
	// Initialize resets per-connection state, recursing down the chain.
	Initialize() liberr.Error

	// Connect emits the next connect-handshake frame into w. Returns
	// EOk once this layer (and everything under it) reports connected,
	// EPending when bytes were produced and must be sent first.
	Connect(w Window) (Window, liberr.Error)

	// Disconnect is symmetric to Connect for the teardown handshake.
	Disconnect(w Window) (Window, liberr.Error)

	// ReserveSpace shrinks w past this layer's headers/trailers and, at
	// the innermost layer, mints a fresh request id.
	ReserveSpace(w Window) (Window, int64, liberr.Error)

	// AcceptRequests is the optional batching hook: claim requests from
	// q to pack into the frame under construction.
	AcceptRequests(q *libreq.Queue) liberr.Error

	// AbortRequest forgets a request this layer may have enqueued for
	// batching.
	AbortRequest(r *libreq.Request) liberr.Error

	// BuildLayer fills in this layer's headers/trailers once inner
	// content is known. EOk means the frame is complete and must be
	// sent now; EPending means another request may still be packed in.
	BuildLayer(w Window, reqID int64) (Window, liberr.Error)

	// ProcessResponse strips this layer's framing from received bytes.
	// EPartial asks for more bytes; ERetry asks the connect/disconnect
	// track to redo a handshake step; EPending means more sub-frames
	// remain demuxed in this read.
	ProcessResponse(w Window) (Window, int64, liberr.Error)

	// DestroyLayer releases this layer's resources, recursing down the
	// chain. Never fails.
	DestroyLayer()
}

// Chain is the ordered, immutable-after-construction list of Layers rooted
// at the topmost (outermost) one, built once by a family-specific
// constructor (spec.md §3, "Layer order is established at construction
// time"). The core only ever calls through Top(); Chain exists so
// set_number_of_layers/set_layer (spec.md §6) have somewhere to write.
type Chain struct {
	layers []Layer
}

// NewChain preallocates room for n layers, mirroring
// set_number_of_layers(plc, n).
func NewChain(n int) *Chain {
	return &Chain{layers: make([]Layer, n)}
}

// Set installs l at index i, mirroring set_layer(plc, i, ...).
func (c *Chain) Set(i int, l Layer) liberr.Error {
	if i < 0 || i >= len(c.layers) {
		return liberr.EOutOfBounds.Error()
	}
	c.layers[i] = l
	return nil
}

// Len returns the number of slots in the chain.
func (c *Chain) Len() int {
	return len(c.layers)
}

// Top returns the outermost layer - the one the dispatcher drives - or nil
// for an empty chain.
func (c *Chain) Top() Layer {
	if len(c.layers) == 0 {
		return nil
	}
	return c.layers[0]
}

// At returns the layer at index i, or nil if out of range.
func (c *Chain) At(i int) Layer {
	if i < 0 || i >= len(c.layers) {
		return nil
	}
	return c.layers[i]
}

// DestroyAll releases every installed layer, innermost first, so a layer's
// own DestroyLayer never has to worry about outer layers touching it
// afterwards.
func (c *Chain) DestroyAll() {
	for i := len(c.layers) - 1; i >= 0; i-- {
		if c.layers[i] != nil {
			c.layers[i].DestroyLayer()
		}
	}
}
